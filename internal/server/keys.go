package server

import (
	"time"

	"github.com/eternalApril/starlight/internal/resp"
	"github.com/eternalApril/starlight/internal/storage"
)

func keyCommands() []Registration {
	return []Registration{
		{Name: "DEL", Handler: HandlerFunc(del)},
		{Name: "TTL", Handler: HandlerFunc(ttl)},
		{Name: "PTTL", Handler: HandlerFunc(pttl)},
		{Name: "PERSIST", Handler: HandlerFunc(persist)},
	}
}

func del(ctx *Context, args *Parser) (resp.Value, error) {
	if err := args.Arity(1); err != nil {
		return resp.Value{}, err
	}

	var deleted int64
	for args.More() {
		key, err := args.NextString()
		if err != nil {
			return resp.Value{}, err
		}
		if ctx.DB.Delete(key) {
			deleted++
		}
	}
	return resp.MakeInteger(deleted), nil
}

func ttl(ctx *Context, args *Parser) (resp.Value, error) {
	return expiryReply(ctx, args, func(d time.Duration) int64 {
		// round to the nearest second so a fresh EX 1 reads back as 1
		return int64((d + 500*time.Millisecond) / time.Second)
	})
}

func pttl(ctx *Context, args *Parser) (resp.Value, error) {
	return expiryReply(ctx, args, func(d time.Duration) int64 {
		return d.Milliseconds()
	})
}

func expiryReply(ctx *Context, args *Parser, scale func(time.Duration) int64) (resp.Value, error) {
	if err := args.Exact(1); err != nil {
		return resp.Value{}, err
	}
	key, err := args.NextString()
	if err != nil {
		return resp.Value{}, err
	}

	remaining, status := ctx.DB.Expiry(key)
	if status != storage.ExpActive {
		return resp.MakeInteger(int64(status)), nil
	}
	return resp.MakeInteger(scale(remaining)), nil
}

func persist(ctx *Context, args *Parser) (resp.Value, error) {
	if err := args.Exact(1); err != nil {
		return resp.Value{}, err
	}
	key, err := args.NextString()
	if err != nil {
		return resp.Value{}, err
	}

	if ctx.DB.Persist(key) {
		return resp.MakeInteger(1), nil
	}
	return resp.MakeInteger(0), nil
}
