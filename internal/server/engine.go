package server

import (
	"sync"
	"time"

	"github.com/eternalApril/starlight/internal/config"
	"github.com/eternalApril/starlight/internal/resp"
	"github.com/eternalApril/starlight/internal/storage"
	"go.uber.org/zap"
)

// Engine coordinates command execution: it owns the registry, the database
// and the background expiry sweep.
type Engine struct {
	registry *Registry
	db       *storage.Database
	cfg      *config.Config
	logger   *zap.Logger
	stopGC   chan struct{}
	stopOnce sync.Once
}

// NewEngine builds the registry from the command modules and, if enabled in
// the config, starts the background cleanup of outdated keys. The registry
// is complete before NewEngine returns, so no connection can observe a
// partially built table.
func NewEngine(db *storage.Database, cfg *config.Config, logger *zap.Logger) *Engine {
	engine := &Engine{
		registry: NewRegistry(),
		db:       db,
		cfg:      cfg,
		logger:   logger,
		stopGC:   make(chan struct{}),
	}

	engine.registry.EnqueueAll(commands())
	engine.registry.Build()

	if cfg.GC.Enabled {
		go engine.startGCLoop()
	}

	return engine
}

// startGCLoop triggers the active expiration mechanism
func (e *Engine) startGCLoop() {
	ticker := time.NewTicker(e.cfg.GC.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			stats := e.db.DeleteExpired(e.cfg.GC.SamplesPerCheck)

			if stats > 0 {
				e.logger.Debug("GC delete expired", zap.Float64("expired_ratio", stats))
			}
		case <-e.stopGC:
			e.logger.Info("GC stopped")
			return
		}
	}
}

// Execute resolves the request to a handler and runs it. Command-level
// failures (unknown command, bad arguments, wrong stored type) come back as
// protocol error replies; they never terminate the connection.
func (e *Engine) Execute(request resp.Value) resp.Value {
	parser, err := NewParser(request)
	if err != nil {
		return resp.MakeError(err.Error())
	}

	if e.logger.Core().Enabled(zap.DebugLevel) {
		e.logger.Debug("executing command",
			zap.String("cmd", parser.Command()),
			zap.Int("args_count", parser.Remaining()),
		)
	}

	handler, ok := e.registry.Lookup(parser.Command())
	if !ok {
		return resp.MakeError((&UnknownCommandError{Cmd: parser.Command()}).Error())
	}

	ctx := &Context{
		DB:     e.db,
		Cfg:    e.cfg,
		Logger: e.logger,
	}

	result, err := handler.Execute(ctx, parser)
	if err != nil {
		return resp.MakeError(err.Error())
	}
	return result
}

// Shutdown stops the engine's background services. Safe to call twice.
func (e *Engine) Shutdown() {
	e.stopOnce.Do(func() {
		if e.cfg.GC.Enabled {
			close(e.stopGC)
		}
	})
}
