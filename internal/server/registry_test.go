package server

import (
	"testing"
	"time"

	"github.com/eternalApril/starlight/internal/resp"
)

func namedHandler(reply string) Handler {
	return HandlerFunc(func(*Context, *Parser) (resp.Value, error) {
		return resp.MakeSimpleString(reply), nil
	})
}

func TestRegistryBuildAndLookup(t *testing.T) {
	r := NewRegistry()
	r.Enqueue("ping", namedHandler("one"))
	r.EnqueueAll([]Registration{
		{Name: "Get", Handler: namedHandler("two")},
	})
	r.Build()

	if _, ok := r.Lookup("PING"); !ok {
		t.Error("lower-case enqueue not found under upper-cased name")
	}
	if _, ok := r.Lookup("GET"); !ok {
		t.Error("mixed-case enqueue not found under upper-cased name")
	}
	if _, ok := r.Lookup("MISSING"); ok {
		t.Error("Lookup reported a hit for an unregistered name")
	}
	if got := len(r.Names()); got != 2 {
		t.Errorf("Names() length = %d, want 2", got)
	}
}

func TestRegistryDuplicateLastWins(t *testing.T) {
	r := NewRegistry()
	r.Enqueue("CMD", namedHandler("first"))
	r.Enqueue("cmd", namedHandler("second"))
	r.Build()

	h, ok := r.Lookup("CMD")
	if !ok {
		t.Fatal("Lookup missed a registered name")
	}
	reply, _ := h.Execute(nil, nil)
	if string(reply.String) != "second" {
		t.Errorf("duplicate resolution = %q, want second (last drained wins)", reply.String)
	}
}

func TestRegistryReadinessBarrier(t *testing.T) {
	r := NewRegistry()
	r.Enqueue("PING", namedHandler("pong"))

	found := make(chan bool)
	go func() {
		_, ok := r.Lookup("PING")
		found <- ok
	}()

	// the lookup must block while the registry is still pending
	select {
	case <-found:
		t.Fatal("Lookup returned before Build")
	case <-time.After(20 * time.Millisecond):
	}

	r.Build()

	select {
	case ok := <-found:
		if !ok {
			t.Error("Lookup missed the registration after Build")
		}
	case <-time.After(time.Second):
		t.Fatal("Lookup still blocked after Build")
	}
}

func TestRegistryRebuildIsNoop(t *testing.T) {
	r := NewRegistry()
	r.Enqueue("A", namedHandler("a"))
	r.Build()

	r.Enqueue("B", namedHandler("b"))
	r.Build()

	if _, ok := r.Lookup("B"); ok {
		t.Error("registration enqueued after Build leaked into the live table")
	}
}
