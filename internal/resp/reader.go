package resp

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// Default limits applied when no explicit ones are configured. The bulk cap
// matches the stock redis proto-max-bulk-len.
const (
	DefaultMaxBulkLength  = 512 * 1024 * 1024
	DefaultMaxArrayLength = 1024 * 1024
)

// Decoder reads frames from a byte stream. Reads are strictly sequential:
// one frame completes before the next begins.
type Decoder struct {
	rd       *bufio.Reader
	maxBulk  int64
	maxArray int64
}

// NewDecoder wraps rd with the default limits.
func NewDecoder(rd io.Reader) *Decoder {
	return NewDecoderLimit(rd, DefaultMaxBulkLength, DefaultMaxArrayLength)
}

// NewDecoderLimit wraps rd, rejecting bulk strings longer than maxBulk bytes
// and arrays declaring more than maxArray elements. Non-positive limits fall
// back to the defaults.
func NewDecoderLimit(rd io.Reader, maxBulk, maxArray int64) *Decoder {
	if maxBulk <= 0 {
		maxBulk = DefaultMaxBulkLength
	}
	if maxArray <= 0 {
		maxArray = DefaultMaxArrayLength
	}
	return &Decoder{rd: bufio.NewReader(rd), maxBulk: maxBulk, maxArray: maxArray}
}

// Buffered returns the number of bytes readable without touching the
// underlying stream. The connection loop uses it to delay flushes while a
// pipeline is still in flight.
func (d *Decoder) Buffered() int {
	return d.rd.Buffered()
}

// Read decodes the next frame. A malformed line, oversize payload or
// truncated stream aborts only the current frame; the error is surfaced to
// the caller as-is.
func (d *Decoder) Read() (Value, error) {
	lead, err := d.rd.ReadByte()
	if err != nil {
		return Value{}, err
	}

	switch lead {
	case TypeSimpleString, TypeError:
		line, err := d.readLine()
		if err != nil {
			return Value{}, err
		}
		return Value{Type: lead, String: line}, nil

	case TypeInteger:
		n, err := d.readInteger()
		if err != nil {
			return Value{}, err
		}
		return Value{Type: TypeInteger, Integer: n}, nil

	case TypeBulkString:
		return d.readBulkString()

	case TypeArray:
		return d.readArray()

	case TypeNull:
		line, err := d.readLine()
		if err != nil {
			return Value{}, err
		}
		if len(line) != 0 {
			return Value{}, fmt.Errorf("%w: unexpected null payload", ErrInvalidEnding)
		}
		return Value{Type: TypeNull}, nil

	case TypeBoolean:
		line, err := d.readLine()
		if err != nil {
			return Value{}, err
		}
		if len(line) != 1 || (line[0] != 't' && line[0] != 'f') {
			return Value{}, fmt.Errorf("%w: %q", ErrInvalidBoolean, line)
		}
		return Value{Type: TypeBoolean, Bool: line[0] == 't'}, nil
	}

	return Value{}, &UnsupportedTypeError{Lead: lead}
}

// readLine reads up to and including LF and strips the mandatory CRLF.
func (d *Decoder) readLine() ([]byte, error) {
	line, err := d.rd.ReadBytes('\n')
	if err != nil {
		return nil, err
	}
	if len(line) < 2 || line[len(line)-2] != '\r' {
		return nil, ErrInvalidEnding
	}
	return line[:len(line)-2], nil
}

func (d *Decoder) readInteger() (int64, error) {
	line, err := d.readLine()
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(string(line), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLength, line)
	}
	return n, nil
}

func (d *Decoder) readBulkString() (Value, error) {
	length, err := d.readInteger()
	if err != nil {
		return Value{}, err
	}

	if length == -1 {
		return Value{Type: TypeBulkString, IsNull: true}, nil
	}
	if length < -1 {
		return Value{}, fmt.Errorf("%w: %d", ErrInvalidLength, length)
	}
	if length > d.maxBulk {
		return Value{}, &OversizeError{Length: length, Max: d.maxBulk}
	}

	// Payload bytes are raw: embedded CR or LF is data, only the trailing
	// two bytes must be CRLF.
	buf := make([]byte, length)
	if _, err := io.ReadFull(d.rd, buf); err != nil {
		return Value{}, err
	}

	var crlf [2]byte
	if _, err := io.ReadFull(d.rd, crlf[:]); err != nil {
		return Value{}, err
	}
	if crlf[0] != '\r' || crlf[1] != '\n' {
		return Value{}, ErrInvalidEnding
	}

	return Value{Type: TypeBulkString, String: buf}, nil
}

func (d *Decoder) readArray() (Value, error) {
	count, err := d.readInteger()
	if err != nil {
		return Value{}, err
	}

	if count == -1 {
		return Value{Type: TypeArray, IsNull: true}, nil
	}
	if count < -1 {
		return Value{}, fmt.Errorf("%w: %d", ErrInvalidLength, count)
	}
	if count > d.maxArray {
		return Value{}, &OversizeError{Length: count, Max: d.maxArray}
	}

	// A declared count must be matched exactly by sub-frames; any failure
	// below aborts the whole array.
	items := make([]Value, 0, count)
	for i := int64(0); i < count; i++ {
		item, err := d.Read()
		if err != nil {
			return Value{}, err
		}
		items = append(items, item)
	}

	return Value{Type: TypeArray, Array: items}, nil
}
