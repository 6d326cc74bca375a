package unwind

import (
	"fmt"
	"runtime/debug"

	"go.uber.org/zap"

	"github.com/itsatony/go-unwind/internal"
)

// Raise starts a panic carrying p and transfers control to the innermost
// landing pad, or to the root if none is installed. It never returns.
//
// Raising while a panic is already in flight, for example from a handler
// or from a deferred call in a skipped frame, aborts the process.
func (t *Thread) Raise(p Payload) {
	if p == nil {
		panic(NewMisuseError(ErrMsgNilPayload))
	}
	t.requireRoot()

	if t.state.Unwinding() {
		panic(t.abort(p))
	}

	t.begin(p, LogMsgRaise)
	panic(internal.NewTransfer(internal.TransferPanic, t.stack.Current()))
}

// RaiseStatus raises Status(code).
func (t *Thread) RaiseStatus(code int) {
	t.Raise(Status(code))
}

// RaiseMessage raises Message(text).
func (t *Thread) RaiseMessage(text string) {
	t.Raise(Message(text))
}

// Raisef raises a message built with fmt.Sprintf.
func (t *Thread) Raisef(format string, args ...any) {
	t.Raise(Message(fmt.Sprintf(format, args...)))
}

// RaiseOpaque raises Opaque(value).
func (t *Thread) RaiseOpaque(value any) {
	t.Raise(Opaque(value))
}

// begin stores p and enters the panicking state.
func (t *Thread) begin(p Payload, msg string) {
	t.state.SetPayload(p)
	t.state.BeginUnwind()
	if t.config.captureStack {
		t.raiseStack = debug.Stack()
	}

	t.logger.Debug(msg,
		zap.Stringer(LogFieldKind, p.Kind()),
		zap.String(LogFieldPayload, FormatPayload(p)),
		zap.Int(LogFieldDepth, t.stack.Depth()))
	t.fire(NewHookData(HookRaise, t.stack.Depth()).WithPayload(p))
}

// abort handles a panic raised while unwinding. It emits the diagnostic and
// calls the exit function; if that returns, the caller panics with the
// returned value so it reaches the root without running any handler.
func (t *Thread) abort(second Payload) *internal.Abort {
	handlers := t.state.Observed()
	active, _ := t.state.Abort()
	status := t.config.exitCodes.Abort

	t.logger.Error(LogMsgAbort,
		zap.String(LogFieldPayload, FormatPayload(active)),
		zap.String(LogFieldSecond, FormatPayload(second)),
		zap.Int(LogFieldStatus, status))
	t.emit(&Diagnostic{
		Origin:   OriginAbort,
		Payload:  active,
		Second:   second,
		Status:   status,
		Handlers: handlers,
	})
	t.fire(NewHookData(HookAbort, t.stack.Depth()).
		WithPayload(active).
		WithSecond(second).
		WithStatus(status).
		WithHandlers(handlers))

	t.config.exit(status)
	return &internal.Abort{Status: status, Owner: t.stack}
}

// requireRoot panics with a misuse error unless a root is installed and the
// thread has not terminated.
func (t *Thread) requireRoot() {
	if t.State().Terminal() {
		panic(NewMisuseError(ErrMsgThreadClosed))
	}
	if t.stack.Current() == nil {
		panic(NewMisuseError(ErrMsgNoRoot))
	}
}
