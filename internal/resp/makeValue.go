package resp

import "fmt"

// MakeSimpleString construct SimpleString Value from string
func MakeSimpleString(s string) Value {
	return Value{
		Type:   TypeSimpleString,
		String: []byte(s),
	}
}

// MakeError construct Error Value from string
func MakeError(s string) Value {
	return Value{
		Type:   TypeError,
		String: []byte(s),
	}
}

// MakeErrorWrongNumberOfArguments construct Error Value that command had wrong number of arguments for command
func MakeErrorWrongNumberOfArguments(cmd string) Value {
	return MakeError(fmt.Sprintf("ERR wrong number of arguments for '%s' command", cmd))
}

// MakeBulkString construct BulkString Value from string
func MakeBulkString(s string) Value {
	return Value{
		Type:   TypeBulkString,
		String: []byte(s),
	}
}

// MakeBulkBytes construct BulkString Value from raw bytes
func MakeBulkBytes(b []byte) Value {
	return Value{
		Type:   TypeBulkString,
		String: b,
	}
}

// MakeNilBulkString construct nil BulkString Value
func MakeNilBulkString() Value {
	return Value{
		Type:   TypeBulkString,
		IsNull: true,
	}
}

// MakeInteger construct Integer Value from int64
func MakeInteger(n int64) Value {
	return Value{
		Type:    TypeInteger,
		Integer: n,
	}
}

// MakeBoolean construct Boolean Value from bool
func MakeBoolean(b bool) Value {
	return Value{
		Type: TypeBoolean,
		Bool: b,
	}
}

// MakeNull construct the RESP3 null Value
func MakeNull() Value {
	return Value{Type: TypeNull}
}

// MakeArray creates a standard RESP array containing the provided elements
func MakeArray(values []Value) Value {
	return Value{
		Type:  TypeArray,
		Array: values,
	}
}

// MakeNilArray construct nil Array Value
func MakeNilArray() Value {
	return Value{
		Type:   TypeArray,
		IsNull: true,
	}
}

// MakeExit constructs the in-process close marker. It has no wire form; the
// connection loop closes the peer instead of serializing it.
func MakeExit() Value {
	return Value{Type: TypeExit}
}

// MakeCommand builds a client request array: the command name followed by
// its arguments, all as bulk strings.
func MakeCommand(name string, args ...string) Value {
	elements := make([]Value, 1+len(args))
	elements[0] = MakeBulkString(name)
	for i, arg := range args {
		elements[i+1] = MakeBulkString(arg)
	}
	return MakeArray(elements)
}
