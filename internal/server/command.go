package server

import (
	"github.com/eternalApril/starlight/internal/config"
	"github.com/eternalApril/starlight/internal/resp"
	"github.com/eternalApril/starlight/internal/storage"
	"go.uber.org/zap"
)

// Context is the shared execution context handed to every handler.
type Context struct {
	DB     *storage.Database
	Cfg    *config.Config
	Logger *zap.Logger
}

// Handler executes one command. Business errors are returned, not written:
// the dispatcher is the sole place that renders them into wire error frames.
type Handler interface {
	Execute(ctx *Context, args *Parser) (resp.Value, error)
}

type HandlerFunc func(ctx *Context, args *Parser) (resp.Value, error)

func (f HandlerFunc) Execute(ctx *Context, args *Parser) (resp.Value, error) {
	return f(ctx, args)
}

// commands collects the registration pairs of every command module. The
// engine drains this list into its registry once, before serving requests.
func commands() []Registration {
	var regs []Registration
	regs = append(regs, connectionCommands()...)
	regs = append(regs, stringCommands()...)
	regs = append(regs, keyCommands()...)
	regs = append(regs, serverCommands()...)
	return regs
}
