package storage

// DataType is the logical type tag of a stored object.
type DataType byte

const (
	TypeString DataType = iota + 1
	TypeList
	TypeHash
	TypeSet
	TypeZSet
)

func (t DataType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeList:
		return "list"
	case TypeHash:
		return "hash"
	case TypeSet:
		return "set"
	case TypeZSet:
		return "zset"
	}
	return "unknown"
}

// Header packs object metadata into 8 bytes:
//
//	bits  0..7   type tag
//	bits  8..31  recency counter (24 bits)
//	bits 32..63  reference count (32 bits)
//
// The recency and reference counters are present in the layout but not yet
// maintained by any operation; they are reserved for an eviction policy.
type Header uint64

const (
	headerTypeMask = 0xff
	headerLRUShift = 8
	headerLRUMask  = 0xffffff
	headerRefShift = 32
)

// NewHeader builds a header with the given type tag and zeroed counters.
func NewHeader(t DataType) Header {
	return Header(t)
}

func (h Header) Type() DataType {
	return DataType(h & headerTypeMask)
}

// LRU returns the 24-bit recency counter.
func (h Header) LRU() uint32 {
	return uint32(h>>headerLRUShift) & headerLRUMask
}

// RefCount returns the 32-bit reference count.
func (h Header) RefCount() uint32 {
	return uint32(h >> headerRefShift)
}

// WithLRU returns a copy of the header with the recency counter replaced.
// Values wider than 24 bits are truncated.
func (h Header) WithLRU(lru uint32) Header {
	h &^= Header(headerLRUMask) << headerLRUShift
	return h | Header(lru&headerLRUMask)<<headerLRUShift
}

// WithRefCount returns a copy of the header with the reference count replaced.
func (h Header) WithRefCount(rc uint32) Header {
	h &^= Header(0xffffffff) << headerRefShift
	return h | Header(rc)<<headerRefShift
}
