package resp_test

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/eternalApril/starlight/internal/resp"
)

func TestReadInteger(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr error
	}{
		{
			name:  "Valid positive",
			input: ":1000\r\n",
			want:  1000,
		},
		{
			name:  "Valid positive with +",
			input: ":+1230\r\n",
			want:  1230,
		},
		{
			name:  "Valid negative",
			input: ":-15\r\n",
			want:  -15,
		},
		{
			name:  "Valid zero",
			input: ":0\r\n",
			want:  0,
		},
		{
			name:    "Invalid ending",
			input:   ":1000\n",
			wantErr: resp.ErrInvalidEnding,
		},
		{
			name:    "Not a decimal",
			input:   ":12ab\r\n",
			wantErr: resp.ErrInvalidLength,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := resp.NewDecoder(strings.NewReader(tt.input))

			val, err := d.Read()

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Read() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Read() unexpected error %v", err)
			}

			if val.Type != resp.TypeInteger {
				t.Errorf("Read() type = %q, want %q", val.Type, resp.TypeInteger)
			}
			if val.Integer != tt.want {
				t.Errorf("Read() integer = %v, want %v", val.Integer, tt.want)
			}
		})
	}
}

func TestReadBulkString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     string
		wantNull bool
		wantErr  error
	}{
		{
			name:  "Simple payload",
			input: "$5\r\nhello\r\n",
			want:  "hello",
		},
		{
			name:  "Empty payload is not null",
			input: "$0\r\n\r\n",
			want:  "",
		},
		{
			name:     "Null bulk string",
			input:    "$-1\r\n",
			wantNull: true,
		},
		{
			name:  "Embedded CRLF is data",
			input: "$10\r\nab\r\ncd\r\nef\r\n",
			want:  "ab\r\ncd\r\nef",
		},
		{
			name:    "Length below -1",
			input:   "$-2\r\n",
			wantErr: resp.ErrInvalidLength,
		},
		{
			name:    "Missing terminator",
			input:   "$5\r\nhelloxx",
			wantErr: resp.ErrInvalidEnding,
		},
		{
			name:    "Truncated payload",
			input:   "$5\r\nhel",
			wantErr: io.ErrUnexpectedEOF,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := resp.NewDecoder(strings.NewReader(tt.input))

			val, err := d.Read()

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Read() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Read() unexpected error %v", err)
			}

			if val.IsNull != tt.wantNull {
				t.Errorf("Read() isNull = %v, want %v", val.IsNull, tt.wantNull)
			}
			if !tt.wantNull && string(val.String) != tt.want {
				t.Errorf("Read() payload = %q, want %q", val.String, tt.want)
			}
		})
	}
}

func TestReadBulkStringOversize(t *testing.T) {
	// The limit must trip on the declared length, before any payload read.
	d := resp.NewDecoderLimit(strings.NewReader("$100\r\n"), 10, 0)

	_, err := d.Read()

	var oversize *resp.OversizeError
	if !errors.As(err, &oversize) {
		t.Fatalf("Read() error = %v, want OversizeError", err)
	}
	if oversize.Length != 100 || oversize.Max != 10 {
		t.Errorf("OversizeError = %+v, want length 100 max 10", oversize)
	}
}

func TestReadArrayOversize(t *testing.T) {
	d := resp.NewDecoderLimit(strings.NewReader("*9\r\n"), 0, 4)

	_, err := d.Read()

	var oversize *resp.OversizeError
	if !errors.As(err, &oversize) {
		t.Fatalf("Read() error = %v, want OversizeError", err)
	}
	if oversize.Length != 9 || oversize.Max != 4 {
		t.Errorf("OversizeError = %+v, want length 9 max 4", oversize)
	}
}

func TestReadArray(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     resp.Value
		wantNull bool
		wantErr  error
	}{
		{
			name:  "Command array",
			input: "*3\r\n$3\r\nSET\r\n$1\r\nk\r\n$1\r\nv\r\n",
			want:  resp.MakeCommand("SET", "k", "v"),
		},
		{
			name:  "Empty array is not null",
			input: "*0\r\n",
			want:  resp.MakeArray([]resp.Value{}),
		},
		{
			name:     "Null array",
			input:    "*-1\r\n",
			want:     resp.MakeNilArray(),
			wantNull: true,
		},
		{
			name: "Nested array",
			input: "*2\r\n:1\r\n*1\r\n+inner\r\n",
			want: resp.MakeArray([]resp.Value{
				resp.MakeInteger(1),
				resp.MakeArray([]resp.Value{resp.MakeSimpleString("inner")}),
			}),
		},
		{
			name:    "Declared count not satisfied",
			input:   "*2\r\n$1\r\na\r\n",
			wantErr: io.EOF,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := resp.NewDecoder(strings.NewReader(tt.input))

			val, err := d.Read()

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Read() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Read() unexpected error %v", err)
			}

			if val.IsNull != tt.wantNull {
				t.Errorf("Read() isNull = %v, want %v", val.IsNull, tt.wantNull)
			}
			if !val.Equal(tt.want) {
				t.Errorf("Read() = %+v, want %+v", val, tt.want)
			}
		})
	}
}

func TestReadNullAndBoolean(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    resp.Value
		wantErr error
	}{
		{"Null", "_\r\n", resp.MakeNull(), nil},
		{"True", "#t\r\n", resp.MakeBoolean(true), nil},
		{"False", "#f\r\n", resp.MakeBoolean(false), nil},
		{"Bad boolean", "#x\r\n", resp.Value{}, resp.ErrInvalidBoolean},
		{"Null with payload", "_oops\r\n", resp.Value{}, resp.ErrInvalidEnding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := resp.NewDecoder(strings.NewReader(tt.input))

			val, err := d.Read()

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Read() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Read() unexpected error %v", err)
			}
			if !val.Equal(tt.want) {
				t.Errorf("Read() = %+v, want %+v", val, tt.want)
			}
		})
	}
}

func TestReadUnsupportedType(t *testing.T) {
	d := resp.NewDecoder(strings.NewReader("?whatever\r\n"))

	_, err := d.Read()

	var unsupported *resp.UnsupportedTypeError
	if !errors.As(err, &unsupported) {
		t.Fatalf("Read() error = %v, want UnsupportedTypeError", err)
	}
	if unsupported.Lead != '?' {
		t.Errorf("UnsupportedTypeError lead = %q, want '?'", unsupported.Lead)
	}
}

func TestRoundTrip(t *testing.T) {
	frames := []resp.Value{
		resp.MakeSimpleString("OK"),
		resp.MakeError("ERR something went wrong"),
		resp.MakeInteger(-42),
		resp.MakeBulkString("hello"),
		resp.MakeBulkString(""),
		resp.MakeBulkBytes([]byte{0, '\r', '\n', 0xff}),
		resp.MakeNilBulkString(),
		resp.MakeNull(),
		resp.MakeBoolean(true),
		resp.MakeBoolean(false),
		resp.MakeNilArray(),
		resp.MakeArray([]resp.Value{}),
		resp.MakeArray([]resp.Value{
			resp.MakeInteger(1),
			resp.MakeNilBulkString(),
			resp.MakeArray([]resp.Value{resp.MakeBoolean(true), resp.MakeNull()}),
		}),
		resp.MakeCommand("GETRANGE", "k", "0", "-1"),
	}

	for _, frame := range frames {
		var buf bytes.Buffer
		enc := resp.NewEncoder(&buf)
		if err := enc.Write(frame); err != nil {
			t.Fatalf("Write(%+v) failed: %v", frame, err)
		}
		if err := enc.Flush(); err != nil {
			t.Fatalf("Flush() failed: %v", err)
		}

		got, err := resp.NewDecoder(&buf).Read()
		if err != nil {
			t.Fatalf("Read() of %q failed: %v", buf.String(), err)
		}
		if !got.Equal(frame) {
			t.Errorf("round trip mismatch: wrote %+v, read %+v", frame, got)
		}
	}
}
