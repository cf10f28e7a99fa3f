package resp

import (
	"bufio"
	"io"
	"strconv"
)

// Encoder serializes frames into an output stream. Each frame type has
// exactly one canonical wire form, the inverse of what Decoder accepts.
type Encoder struct {
	writer *bufio.Writer
}

// NewEncoder initializes an Encoder with a buffered writer.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{writer: bufio.NewWriter(w)}
}

// Write serializes a frame into the buffer. Call Flush to push buffered
// frames to the underlying stream.
func (e *Encoder) Write(v Value) error {
	switch v.Type {
	case TypeInteger:
		return e.writeHeader(TypeInteger, v.Integer)

	case TypeSimpleString:
		return e.writeRaw(TypeSimpleString, v.String)

	case TypeError:
		return e.writeRaw(TypeError, v.String)

	case TypeNull:
		_, err := e.writer.WriteString("_\r\n")
		return err

	case TypeBoolean:
		line := "#f\r\n"
		if v.Bool {
			line = "#t\r\n"
		}
		_, err := e.writer.WriteString(line)
		return err

	case TypeBulkString:
		if v.IsNull {
			_, err := e.writer.WriteString("$-1\r\n")
			return err
		}
		if err := e.writeHeader(TypeBulkString, int64(len(v.String))); err != nil {
			return err
		}
		if _, err := e.writer.Write(v.String); err != nil {
			return err
		}
		_, err := e.writer.WriteString("\r\n")
		return err

	case TypeArray:
		if v.IsNull {
			_, err := e.writer.WriteString("*-1\r\n")
			return err
		}
		if err := e.writeHeader(TypeArray, int64(len(v.Array))); err != nil {
			return err
		}
		for _, el := range v.Array {
			if err := e.Write(el); err != nil {
				return err
			}
		}
		return nil
	}

	return ErrNotSerializable
}

// Flush sends all buffered frames to the underlying stream.
func (e *Encoder) Flush() error {
	return e.writer.Flush()
}

// writeHeader writes the type prefix, numeric value and CRLF.
func (e *Encoder) writeHeader(prefix byte, n int64) error {
	if err := e.writer.WriteByte(prefix); err != nil {
		return err
	}
	b := e.writer.AvailableBuffer()
	b = strconv.AppendInt(b, n, 10)
	if _, err := e.writer.Write(b); err != nil {
		return err
	}
	_, err := e.writer.WriteString("\r\n")
	return err
}

// writeRaw writes the type prefix, raw bytes and CRLF (SimpleString, Error).
func (e *Encoder) writeRaw(prefix byte, b []byte) error {
	if err := e.writer.WriteByte(prefix); err != nil {
		return err
	}
	if _, err := e.writer.Write(b); err != nil {
		return err
	}
	_, err := e.writer.WriteString("\r\n")
	return err
}
