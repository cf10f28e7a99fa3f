package resp

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidEnding marks a line that is not terminated by CRLF.
	ErrInvalidEnding = errors.New("invalid line ending")

	// ErrInvalidLength marks a bulk string or array header whose declared
	// length is not a valid decimal or is below -1.
	ErrInvalidLength = errors.New("invalid declared length")

	// ErrInvalidBoolean marks a boolean line that is neither #t nor #f.
	ErrInvalidBoolean = errors.New("invalid boolean value")

	// ErrNotSerializable is returned when encoding a frame that has no wire
	// form, such as the exit marker.
	ErrNotSerializable = errors.New("frame is not serializable")
)

// UnsupportedTypeError reports a lead byte outside the frame grammar.
type UnsupportedTypeError struct {
	Lead byte
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported frame type %q", e.Lead)
}

// OversizeError reports a declared bulk length or array count above the
// configured maximum. It is raised before any payload byte is read.
type OversizeError struct {
	Length int64
	Max    int64
}

func (e *OversizeError) Error() string {
	return fmt.Sprintf("declared length too large: %d (max %d)", e.Length, e.Max)
}
