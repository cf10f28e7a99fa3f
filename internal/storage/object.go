package storage

import (
	"strconv"

	"github.com/eternalApril/starlight/internal/resp"
)

// Encoding identifies the active value variant of an Object.
type Encoding uint8

const (
	EncodingInt Encoding = iota + 1
	EncodingInline
	EncodingRaw
	EncodingHashTable
	EncodingLinkedList
	EncodingIntSet

	// Reserved variants, no operation produces them yet.
	EncodingZipList
	EncodingSkipList
)

// Object is a stored value: an 8-byte metadata header plus a tagged union.
// The header's type tag always matches the active variant; constructors are
// the only way to build one, so the invariant holds by construction.
type Object struct {
	header   Header
	encoding Encoding

	num    int64
	inline inlineString
	raw    []byte
	hash   map[string]string
	intSet map[int64]struct{}
	// list nodes are heap-owned children without back-references, so
	// dropping the parent releases them iteratively via the GC rather
	// than by recursive destruction.
	list []*Object
}

// NewString builds a String object. Payloads of up to InlineMax bytes are
// stored inline, longer ones in a heap buffer. The buffer is copied, the
// object owns its bytes.
func NewString(buf []byte) Object {
	o := Object{header: NewHeader(TypeString)}
	if len(buf) <= InlineMax {
		o.encoding = EncodingInline
		o.inline = newInlineString(buf)
		return o
	}
	o.encoding = EncodingRaw
	o.raw = append([]byte(nil), buf...)
	return o
}

// NewInt builds a String object with the shared integer encoding.
func NewInt(n int64) Object {
	return Object{
		header:   NewHeader(TypeString),
		encoding: EncodingInt,
		num:      n,
	}
}

// NewHash builds an empty Hash object.
func NewHash() Object {
	return Object{
		header:   NewHeader(TypeHash),
		encoding: EncodingHashTable,
		hash:     make(map[string]string),
	}
}

// NewList builds an empty List object.
func NewList() Object {
	return Object{
		header:   NewHeader(TypeList),
		encoding: EncodingLinkedList,
	}
}

// NewIntSet builds an empty Set object with the integer-set encoding.
func NewIntSet() Object {
	return Object{
		header:   NewHeader(TypeSet),
		encoding: EncodingIntSet,
		intSet:   make(map[int64]struct{}),
	}
}

func (o *Object) Header() Header {
	return o.header
}

func (o *Object) Type() DataType {
	return o.header.Type()
}

func (o *Object) Encoding() Encoding {
	return o.encoding
}

// StringBytes returns the byte content of a String object. Integer-encoded
// values render as decimal text. The result must not be mutated.
func (o *Object) StringBytes() []byte {
	switch o.encoding {
	case EncodingInt:
		return strconv.AppendInt(nil, o.num, 10)
	case EncodingInline:
		return o.inline.Bytes()
	case EncodingRaw:
		return o.raw
	}
	return nil
}

// Frame converts the object to its wire reply. String objects become bulk
// strings; the remaining types answer a protocol-level error until their
// command surfaces are designed.
func (o *Object) Frame() resp.Value {
	if o.header.Type() == TypeString {
		return resp.MakeBulkBytes(o.StringBytes())
	}
	return resp.MakeError("ERR type " + o.header.Type().String() + " not implemented")
}

// Clone returns an independent deep copy.
func (o *Object) Clone() Object {
	clone := *o
	if o.raw != nil {
		clone.raw = append([]byte(nil), o.raw...)
	}
	if o.hash != nil {
		clone.hash = make(map[string]string, len(o.hash))
		for k, v := range o.hash {
			clone.hash[k] = v
		}
	}
	if o.intSet != nil {
		clone.intSet = make(map[int64]struct{}, len(o.intSet))
		for k := range o.intSet {
			clone.intSet[k] = struct{}{}
		}
	}
	if o.list != nil {
		clone.list = make([]*Object, len(o.list))
		for i, child := range o.list {
			c := child.Clone()
			clone.list[i] = &c
		}
	}
	return clone
}
