package resp

// Wire type prefixes. Every frame starts with one of these bytes followed by
// a CRLF-terminated line.
const (
	TypeSimpleString = '+'
	TypeError        = '-'
	TypeInteger      = ':'
	TypeBulkString   = '$'
	TypeArray        = '*'
	TypeNull         = '_'
	TypeBoolean      = '#'

	// TypeExit never appears on the wire. Handlers return it to ask the
	// connection loop to close the peer after the current reply.
	TypeExit = 0
)

// Value is a single RESP frame. Which fields are meaningful depends on Type.
type Value struct {
	String  []byte // SimpleString, Error, BulkString
	Array   []Value
	Integer int64
	Type    byte
	Bool    bool
	IsNull  bool // nil BulkString ($-1) and nil Array (*-1)
}

// Equal reports deep equality of two frames, including the null/empty
// distinction for bulk strings and arrays.
func (v Value) Equal(other Value) bool {
	if v.Type != other.Type || v.IsNull != other.IsNull {
		return false
	}
	switch v.Type {
	case TypeInteger:
		return v.Integer == other.Integer
	case TypeBoolean:
		return v.Bool == other.Bool
	case TypeSimpleString, TypeError:
		return string(v.String) == string(other.String)
	case TypeBulkString:
		return v.IsNull || string(v.String) == string(other.String)
	case TypeArray:
		if v.IsNull {
			return true
		}
		if len(v.Array) != len(other.Array) {
			return false
		}
		for i := range v.Array {
			if !v.Array[i].Equal(other.Array[i]) {
				return false
			}
		}
		return true
	}
	return true
}
