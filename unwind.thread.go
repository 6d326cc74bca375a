package unwind

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/itsatony/go-unwind/internal"
)

// State is the unwind state of a Thread.
type State = internal.State

// Thread states.
const (
	// StateRunning is normal execution.
	StateRunning = internal.StateRunning
	// StatePanicking is transferring to the next pad or the root.
	StatePanicking = internal.StatePanicking
	// StateHandling is running one pad's handler. It always returns to
	// StatePanicking.
	StateHandling = internal.StateHandling
	// StateRootCaught is terminal: the root consumed the panic.
	StateRootCaught = internal.StateRootCaught
	// StateAborted is terminal: a panic was raised while unwinding.
	StateAborted = internal.StateAborted
)

// Thread is the unwind state of one goroutine: its current resumption
// point, the active payload and the unwinding flag. A Thread is created by
// Run or Go and must only be used from the goroutine running its entry.
type Thread struct {
	ctx        context.Context
	stack      *internal.ContextStack
	state      *internal.PanicState[Payload]
	config     *threadConfig
	logger     *zap.Logger
	root       *internal.ResumptionPoint
	raiseStack []byte
}

func newThread(ctx context.Context, opts ...Option) *Thread {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := applyOptions(opts)
	t := &Thread{
		stack:  internal.NewContextStack(),
		state:  internal.NewPanicState[Payload](),
		config: cfg,
		logger: cfg.logger,
	}
	t.ctx = WithThread(ctx, t)
	t.logger.Debug(LogMsgThreadCreated)
	return t
}

// Context returns the thread's context. FromContext recovers the thread.
func (t *Thread) Context() context.Context {
	return t.ctx
}

// State returns the current unwind state.
func (t *Thread) State() State {
	return t.state.State()
}

// Unwinding reports whether a panic is in flight on this thread.
func (t *Thread) Unwinding() bool {
	return t.state.Unwinding()
}

// Depth returns how many landing pads are installed. It is 0 directly
// under the root and -1 outside Run.
func (t *Thread) Depth() int {
	return t.stack.Depth()
}

// Payload returns the active payload. ok is false unless unwinding.
func (t *Thread) Payload() (Payload, bool) {
	return t.state.CurrentPayload()
}

// Handled returns how many handlers have observed the active panic.
func (t *Thread) Handled() int {
	return t.state.Observed()
}

// fire runs hooks for a point. Hook errors are logged only.
func (t *Thread) fire(data *HookData) {
	if t.config.hooks == nil {
		return
	}
	for _, err := range t.config.hooks.Run(t.ctx, data.Point, data) {
		t.logger.Warn(LogMsgHookFailed, zap.String(LogFieldHook, string(data.Point)), zap.Error(err))
	}
}

// emit sends a diagnostic to the sink. Sink errors are logged only.
func (t *Thread) emit(d *Diagnostic) {
	if t.config.sink == nil {
		return
	}
	d.Time = time.Now()
	if err := t.config.sink.Emit(t.ctx, d); err != nil {
		t.logger.Warn(LogMsgSinkFailed, zap.String(LogFieldOrigin, d.Origin), zap.Error(err))
	}
}

type threadKey struct{}

// WithThread returns a context carrying t.
func WithThread(ctx context.Context, t *Thread) context.Context {
	return context.WithValue(ctx, threadKey{}, t)
}

// FromContext returns the thread carried by ctx.
func FromContext(ctx context.Context) (*Thread, bool) {
	if ctx == nil {
		return nil, false
	}
	t, ok := ctx.Value(threadKey{}).(*Thread)
	return t, ok && t != nil
}
