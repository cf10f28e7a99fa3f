package server

import (
	"strings"
	"sync"
)

// Registration is a pure (name, handler) pair contributed by a command
// module. Collecting the pairs explicitly, instead of registering through
// init side effects, removes hidden initialization-order dependencies.
type Registration struct {
	Name    string
	Handler Handler
}

// Registry is the name→handler table. Pairs accumulate in a pending queue
// and are drained exactly once by Build; afterwards the table is immutable
// and shared without locks. A lookup arriving before the drain waits on a
// one-time readiness barrier.
type Registry struct {
	mu      sync.Mutex
	pending []Registration
	table   map[string]Handler

	buildOnce sync.Once
	ready     chan struct{}
}

func NewRegistry() *Registry {
	return &Registry{ready: make(chan struct{})}
}

// Enqueue appends a pending registration. Enqueues after Build are ignored,
// the live table never changes.
func (r *Registry) Enqueue(name string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending = append(r.pending, Registration{Name: name, Handler: h})
}

// EnqueueAll appends a batch of pending registrations.
func (r *Registry) EnqueueAll(regs []Registration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending = append(r.pending, regs...)
}

// Build drains the pending queue into the live table, upper-casing names.
// Duplicates silently overwrite, last drained wins. Only the first call
// builds; the readiness barrier opens once it completes.
func (r *Registry) Build() {
	r.buildOnce.Do(func() {
		r.mu.Lock()
		pending := r.pending
		r.pending = nil
		r.mu.Unlock()

		table := make(map[string]Handler, len(pending))
		for _, reg := range pending {
			table[strings.ToUpper(reg.Name)] = reg.Handler
		}
		r.table = table
		close(r.ready)
	})
}

// Lookup resolves an upper-cased command name, blocking until Build has run.
func (r *Registry) Lookup(name string) (Handler, bool) {
	<-r.ready
	h, ok := r.table[name]
	return h, ok
}

// Names returns the registered command names. Blocks until Build has run.
func (r *Registry) Names() []string {
	<-r.ready
	names := make([]string, 0, len(r.table))
	for name := range r.table {
		names = append(names, name)
	}
	return names
}
