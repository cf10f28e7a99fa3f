package storage

// InlineMax is the largest payload stored inline inside an Object. Longer
// strings go to a heap-backed buffer. The choice is made once at
// construction and never revisited.
const InlineMax = 54

// inlineString is a fixed-capacity buffer with an explicit length. Holding
// it by value keeps short strings out of the heap entirely.
type inlineString struct {
	length uint8
	buf    [InlineMax]byte
}

func newInlineString(b []byte) inlineString {
	var s inlineString
	n := len(b)
	if n > InlineMax {
		n = InlineMax
	}
	s.length = uint8(n)
	copy(s.buf[:n], b)
	return s
}

// Bytes returns the used portion of the buffer. The slice aliases the
// receiver, so callers that keep it must copy.
func (s *inlineString) Bytes() []byte {
	return s.buf[:s.length]
}

func (s *inlineString) Len() int {
	return int(s.length)
}
