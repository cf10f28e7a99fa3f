package server

import (
	"fmt"
	"time"

	"github.com/eternalApril/starlight/internal/resp"
	"github.com/eternalApril/starlight/internal/storage"
)

func stringCommands() []Registration {
	return []Registration{
		{Name: "GET", Handler: HandlerFunc(get)},
		{Name: "SET", Handler: HandlerFunc(set)},
		{Name: "GETSET", Handler: HandlerFunc(getset)},
		{Name: "GETRANGE", Handler: HandlerFunc(getrange)},
	}
}

func get(ctx *Context, args *Parser) (resp.Value, error) {
	if err := args.Exact(1); err != nil {
		return resp.Value{}, err
	}
	key, err := args.NextString()
	if err != nil {
		return resp.Value{}, err
	}

	reply := resp.MakeNilBulkString()
	ctx.DB.GetWith(key, func(o *storage.Object) {
		reply = o.Frame()
	})
	return reply, nil
}

// setState accumulates the outcome of SET's trailing option table.
type setState struct {
	opts    storage.SetOptions
	ttlSet  bool
	condSet bool
}

// ttlOption builds a named-pair option that records an expiration source.
// unit scales the value; absolute marks a unix-timestamp variant.
func (s *setState) ttlOption(name string, unit time.Duration, absolute bool) Option {
	return Option{
		Name: name,
		Kind: OptionValue,
		Set: func(p *Parser) error {
			if s.ttlSet {
				return fmt.Errorf("%w: TTL already specified", ErrSyntax)
			}
			n, err := p.NextInt()
			if err != nil {
				return err
			}
			s.ttlSet = true
			s.opts.HasTTL = true
			if absolute {
				s.opts.TTL = time.Until(time.Unix(0, n*int64(unit)))
			} else {
				s.opts.TTL = time.Duration(n) * unit
			}
			if s.opts.TTL < 0 {
				s.opts.TTL = 0
			}
			return nil
		},
	}
}

func (s *setState) optionTable() []Option {
	return []Option{
		s.ttlOption("EX", time.Second, false),
		s.ttlOption("PX", time.Millisecond, false),
		s.ttlOption("EXAT", time.Second, true),
		s.ttlOption("PXAT", time.Millisecond, true),
		{
			Name: "KEEPTTL",
			Kind: OptionFlag,
			Set: func(*Parser) error {
				if s.ttlSet {
					return fmt.Errorf("%w: TTL already specified", ErrSyntax)
				}
				s.ttlSet = true
				s.opts.KeepTTL = true
				return nil
			},
		},
		{
			Name: "NX",
			Kind: OptionFlag,
			Set: func(*Parser) error {
				if s.condSet {
					return fmt.Errorf("%w: NX cannot be used with XX", ErrSyntax)
				}
				s.condSet = true
				s.opts.NX = true
				return nil
			},
		},
		{
			Name: "XX",
			Kind: OptionFlag,
			Set: func(*Parser) error {
				if s.condSet {
					return fmt.Errorf("%w: XX cannot be used with NX", ErrSyntax)
				}
				s.condSet = true
				s.opts.XX = true
				return nil
			},
		},
	}
}

func set(ctx *Context, args *Parser) (resp.Value, error) {
	if err := args.Arity(2); err != nil {
		return resp.Value{}, err
	}
	key, err := args.NextString()
	if err != nil {
		return resp.Value{}, err
	}
	value, err := args.NextBytes()
	if err != nil {
		return resp.Value{}, err
	}
	if max := ctx.Cfg.Protocol.MaxBulkLength; max > 0 && int64(len(value)) > max {
		return resp.Value{}, &ValueTooLongError{Length: len(value), Max: int(max)}
	}

	state := &setState{}
	if err := args.Options(state.optionTable()); err != nil {
		return resp.Value{}, err
	}

	if !ctx.DB.Set(key, storage.NewString(value), state.opts) {
		// NX or XX declined the write
		return resp.MakeNilBulkString(), nil
	}
	return resp.MakeBoolean(true), nil
}

func getset(ctx *Context, args *Parser) (resp.Value, error) {
	if err := args.Exact(2); err != nil {
		return resp.Value{}, err
	}
	key, err := args.NextString()
	if err != nil {
		return resp.Value{}, err
	}
	value, err := args.NextBytes()
	if err != nil {
		return resp.Value{}, err
	}

	reply := resp.MakeNilBulkString()
	if old, ok := ctx.DB.Get(key); ok {
		reply = old.Frame()
	}
	ctx.DB.Set(key, storage.NewString(value), storage.SetOptions{})
	return reply, nil
}

func getrange(ctx *Context, args *Parser) (resp.Value, error) {
	if err := args.Exact(3); err != nil {
		return resp.Value{}, err
	}
	key, err := args.NextString()
	if err != nil {
		return resp.Value{}, err
	}
	start, err := args.NextInt()
	if err != nil {
		return resp.Value{}, err
	}
	end, err := args.NextInt()
	if err != nil {
		return resp.Value{}, err
	}

	reply := resp.MakeNilBulkString()
	var typeErr error
	ctx.DB.GetWith(key, func(o *storage.Object) {
		if o.Type() != storage.TypeString {
			typeErr = ErrWrongType
			return
		}
		bytes := o.StringBytes()
		if from, to, ok := byteRange(len(bytes), start, end); ok {
			reply = resp.MakeBulkBytes(bytes[from:to])
		}
	})
	if typeErr != nil {
		return resp.Value{}, typeErr
	}
	return reply, nil
}

// byteRange resolves GETRANGE offsets to a half-open slice range. Negative
// offsets count from the end; both ends clamp into the payload; the end
// character is included.
func byteRange(length int, start, end int64) (int, int, bool) {
	if length == 0 || start >= int64(length) || (start < 0 && end < 0 && start > end) {
		return 0, 0, false
	}

	toPos := func(i int64) int64 {
		if i < 0 {
			return int64(length) + i
		}
		return i
	}
	clamp := func(i int64) int {
		if i < 0 {
			return 0
		}
		if i > int64(length)-1 {
			return length - 1
		}
		return int(i)
	}

	from := clamp(toPos(start))
	to := clamp(toPos(end))
	if from > to {
		return 0, 0, false
	}
	return from, to + 1, true
}
