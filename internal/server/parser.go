package server

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/eternalApril/starlight/internal/resp"
)

// Parser is a forward-only cursor over a request's arguments. The command
// name is consumed on construction; handlers pull the remaining elements as
// typed values.
type Parser struct {
	cmd    string
	parts  []resp.Value
	cursor int
}

// NewParser validates the request shape and consumes the command name. The
// request must be a non-null, non-empty array whose first element is a
// simple or bulk string.
func NewParser(request resp.Value) (*Parser, error) {
	if request.Type != resp.TypeArray || request.IsNull || len(request.Array) == 0 {
		return nil, ErrInvalidRequest
	}

	name, err := frameToString(request.Array[0])
	if err != nil {
		return nil, ErrInvalidRequest
	}

	return &Parser{
		cmd:   strings.ToUpper(name),
		parts: request.Array[1:],
	}, nil
}

// Command returns the upper-cased command name.
func (p *Parser) Command() string {
	return p.cmd
}

// Remaining returns the number of unconsumed arguments.
func (p *Parser) Remaining() int {
	return len(p.parts) - p.cursor
}

// More reports whether any argument is left.
func (p *Parser) More() bool {
	return p.cursor < len(p.parts)
}

// Arity fails with a count error unless at least min arguments remain.
// Handlers call it before any typed read so count errors precede type errors.
func (p *Parser) Arity(min int) error {
	if p.Remaining() < min {
		return &ArityError{Cmd: p.cmd}
	}
	return nil
}

// Exact fails with a count error unless exactly n arguments remain.
func (p *Parser) Exact(n int) error {
	if p.Remaining() != n {
		return &ArityError{Cmd: p.cmd}
	}
	return nil
}

func (p *Parser) next() (resp.Value, error) {
	if !p.More() {
		return resp.Value{}, &ArityError{Cmd: p.cmd}
	}
	part := p.parts[p.cursor]
	p.cursor++
	return part, nil
}

// NextString consumes the next argument as a string: a simple string
// verbatim or a bulk string's payload.
func (p *Parser) NextString() (string, error) {
	part, err := p.next()
	if err != nil {
		return "", err
	}
	return frameToString(part)
}

// NextBytes consumes the next argument as a raw bulk string payload.
func (p *Parser) NextBytes() ([]byte, error) {
	part, err := p.next()
	if err != nil {
		return nil, err
	}
	if part.Type != resp.TypeBulkString || part.IsNull {
		return nil, ErrNotString
	}
	return part.String, nil
}

// NextInt consumes the next argument as an integer: a wire integer directly
// or a bulk/simple string parsed as decimal.
func (p *Parser) NextInt() (int64, error) {
	part, err := p.next()
	if err != nil {
		return 0, err
	}
	switch part.Type {
	case resp.TypeInteger:
		return part.Integer, nil
	case resp.TypeBulkString, resp.TypeSimpleString:
		if part.IsNull {
			return 0, ErrNotInteger
		}
		n, err := strconv.ParseInt(string(part.String), 10, 64)
		if err != nil {
			return 0, ErrNotInteger
		}
		return n, nil
	}
	return 0, ErrNotInteger
}

// NextBool consumes the next argument as a boolean: wire integer 0/1 or a
// case-insensitive TRUE/FALSE string.
func (p *Parser) NextBool() (bool, error) {
	part, err := p.next()
	if err != nil {
		return false, err
	}
	switch part.Type {
	case resp.TypeInteger:
		switch part.Integer {
		case 0:
			return false, nil
		case 1:
			return true, nil
		}
	case resp.TypeBoolean:
		return part.Bool, nil
	case resp.TypeBulkString, resp.TypeSimpleString:
		switch strings.ToUpper(string(part.String)) {
		case "TRUE":
			return true, nil
		case "FALSE":
			return false, nil
		}
	}
	return false, ErrNotBoolean
}

func frameToString(v resp.Value) (string, error) {
	switch v.Type {
	case resp.TypeSimpleString:
		return string(v.String), nil
	case resp.TypeBulkString:
		if v.IsNull {
			return "", ErrNotString
		}
		return string(v.String), nil
	}
	return "", ErrNotString
}

// OptionKind distinguishes bare flags from named-pair options.
type OptionKind uint8

const (
	// OptionFlag is a bare token that sets a field and consumes nothing else.
	OptionFlag OptionKind = iota
	// OptionValue is a token followed by exactly one value.
	OptionValue
)

// Option is one row of a command's trailing-option table.
type Option struct {
	Name    string   // canonical upper-case token
	Aliases []string // additional recognized tokens, upper-case
	Kind    OptionKind
	// Set applies the option. For OptionValue it consumes exactly the one
	// following value from the parser.
	Set func(p *Parser) error
}

func (o *Option) matches(token string) bool {
	if token == o.Name {
		return true
	}
	for _, alias := range o.Aliases {
		if token == alias {
			return true
		}
	}
	return false
}

// Options consumes all remaining arguments as trailing options described by
// the table: read a token, upper-case it, dispatch on the alias set. An
// unrecognized token or a named pair missing its value is a syntax error.
func (p *Parser) Options(table []Option) error {
	for p.More() {
		token, err := p.NextString()
		if err != nil {
			return err
		}
		token = strings.ToUpper(token)

		var matched *Option
		for i := range table {
			if table[i].matches(token) {
				matched = &table[i]
				break
			}
		}
		if matched == nil {
			return fmt.Errorf("%w near '%s'", ErrSyntax, token)
		}

		if matched.Kind == OptionValue && !p.More() {
			return fmt.Errorf("%w: option %s requires a value", ErrSyntax, matched.Name)
		}
		if err := matched.Set(p); err != nil {
			return err
		}
	}
	return nil
}
