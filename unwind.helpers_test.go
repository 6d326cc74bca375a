package unwind

import (
	"context"
	"sync"
	"testing"
)

// recordingSink collects diagnostics in memory.
type recordingSink struct {
	mu    sync.Mutex
	diags []*Diagnostic
}

func (s *recordingSink) Emit(_ context.Context, d *Diagnostic) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.diags = append(s.diags, d)
	return nil
}

func (s *recordingSink) All() []*Diagnostic {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*Diagnostic(nil), s.diags...)
}

// exitRecorder replaces os.Exit and records the requested statuses.
type exitRecorder struct {
	codes []int
}

func (e *exitRecorder) exit(code int) {
	e.codes = append(e.codes, code)
}

// runTest runs entry with an in-memory sink and a recording exit function.
func runTest(t *testing.T, entry Entry, opts ...Option) (int, *recordingSink, *exitRecorder) {
	t.Helper()
	sink := &recordingSink{}
	exits := &exitRecorder{}
	all := append([]Option{WithSink(sink), WithExit(exits.exit)}, opts...)
	status := Run(context.Background(), entry, all...)
	return status, sink, exits
}

// panicValue calls f and returns the value it panicked with, if any.
func panicValue(f func()) (v any) {
	defer func() {
		v = recover()
	}()
	f()
	return nil
}

// nest installs n nested landing pads around leaf. Each handler appends the
// depth it observed the panic at.
func nest(th *Thread, n int, order *[]int, leaf func()) {
	if n == 0 {
		leaf()
		return
	}
	th.Register(func() {
		nest(th, n-1, order, leaf)
	}, func(Payload) {
		*order = append(*order, th.Depth())
	})
}
