package server

import (
	"errors"
	"fmt"
)

// Command-level errors are always recoverable: the dispatcher renders them
// as protocol error replies and the connection keeps serving.
var (
	// ErrSyntax marks a malformed option list or an unrecognized token.
	ErrSyntax = errors.New("ERR syntax error")

	// ErrNotInteger marks an argument that should convert to an integer.
	ErrNotInteger = errors.New("ERR value is not an integer or out of range")

	// ErrNotBoolean marks an argument that should convert to a boolean.
	ErrNotBoolean = errors.New("ERR value is not a boolean")

	// ErrNotString marks an argument that is neither a simple nor a bulk string.
	ErrNotString = errors.New("ERR value is not a string")

	// ErrWrongType marks an operation against a stored value of another type.
	ErrWrongType = errors.New("WRONGTYPE Operation against a key holding the wrong kind of value")

	// ErrInvalidRequest marks a request that is not a non-empty array with a
	// string command name.
	ErrInvalidRequest = errors.New("ERR invalid request format")
)

// ArityError reports a wrong argument count. It is checked up front, before
// any per-argument conversion, so a short request always fails with this
// error even when the supplied tokens are individually malformed.
type ArityError struct {
	Cmd string
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("ERR wrong number of arguments for '%s' command", e.Cmd)
}

// UnknownCommandError reports a registry miss, naming the command.
type UnknownCommandError struct {
	Cmd string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("ERR unknown command '%s'", e.Cmd)
}

// ValueTooLongError reports a payload above the configured maximum.
type ValueTooLongError struct {
	Length int
	Max    int
}

func (e *ValueTooLongError) Error() string {
	return fmt.Sprintf("ERR value too long: %d bytes (max %d)", e.Length, e.Max)
}
