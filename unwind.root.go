package unwind

import (
	"context"
	"os"

	"go.uber.org/zap"

	"github.com/itsatony/go-unwind/internal"
)

// Entry is the application logic run under a root handler. Its return
// value is the exit status on normal completion.
type Entry func(t *Thread) int

// Run creates a Thread for the calling goroutine, installs the root
// resumption point and calls entry.
//
// If entry returns, Run returns its status. If a panic reaches the root,
// the payload is consumed, a diagnostic goes to the sink and Run returns
// the derived status: the code of a Status payload, or the configured
// sentinel for Message and Opaque payloads. After a fatal double panic
// whose exit function returned, Run returns the abort status.
func Run(ctx context.Context, entry Entry, opts ...Option) int {
	if entry == nil {
		panic(NewMisuseError(ErrMsgNilEntry))
	}
	return newThread(ctx, opts...).run(entry)
}

// Main runs entry under a root handler and exits the process with its status.
func Main(ctx context.Context, entry Entry, opts ...Option) {
	os.Exit(Run(ctx, entry, opts...))
}

// Go runs entry on a new goroutine with its own Thread and root handler.
// The returned channel receives the exit status and is then closed. If
// entry ends its goroutine with runtime.Goexit, the channel receives the
// configured abort status instead.
func Go(ctx context.Context, entry Entry, opts ...Option) <-chan int {
	if entry == nil {
		panic(NewMisuseError(ErrMsgNilEntry))
	}
	t := newThread(ctx, opts...)
	done := make(chan int, 1)
	go func() {
		returned := false
		defer func() {
			if !returned {
				t.logger.Warn(LogMsgGoexit, zap.Int(LogFieldStatus, t.config.exitCodes.Abort))
				done <- t.config.exitCodes.Abort
			}
			close(done)
		}()
		status := t.run(entry)
		returned = true
		done <- status
	}()
	return done
}

func (t *Thread) run(entry Entry) (status int) {
	t.root = t.stack.Capture()
	prev := t.stack.InstallAsCurrent(t.root)
	t.logger.Debug(LogMsgRootInstalled, zap.Stringer(LogFieldPoint, t.root))

	completed := false
	defer func() {
		if completed {
			return
		}
		r := recover()
		if r == nil {
			// runtime.Goexit
			return
		}
		if t.foreignUnwind(r) {
			t.stack.Restore(prev)
			t.logger.Debug(LogMsgTransferPassed, zap.Stringer(LogFieldPoint, t.root))
			panic(r)
		}
		status = t.catch(r)
		t.stack.Restore(prev)
	}()

	status = entry(t)
	completed = true
	t.stack.Restore(prev)
	t.logger.Debug(LogMsgEntryReturned, zap.Int(LogFieldStatus, status))
	return status
}

// foreignUnwind reports whether r is a transfer or abort of another thread
// running further out on the same goroutine. Such values keep unwinding.
func (t *Thread) foreignUnwind(r any) bool {
	switch v := r.(type) {
	case *internal.Transfer:
		return !v.Target.OwnedBy(t.stack)
	case *internal.Abort:
		return v.Owner != t.stack
	default:
		return false
	}
}

// catch handles whatever reached the root and returns the exit status.
func (t *Thread) catch(r any) int {
	if t.State() == StateAborted {
		if a, ok := r.(*internal.Abort); ok {
			return a.Status
		}
		return t.config.exitCodes.Abort
	}

	if tr, ok := r.(*internal.Transfer); ok && t.state.Unwinding() {
		if tr.Target != t.root {
			t.logger.Debug(LogMsgTransferPassed,
				zap.Stringer(LogFieldPoint, t.root),
				zap.Stringer(LogFieldTarget, tr.Target))
		}
		return t.rootCaught(tr.Code)
	}

	if t.state.Unwinding() {
		return t.abort(Opaque(r)).Status
	}
	t.begin(Opaque(r), LogMsgForeignPanic)
	return t.rootCaught(internal.TransferPanic)
}

// rootCaught consumes the active payload and reports it.
func (t *Thread) rootCaught(code internal.TransferCode) int {
	handlers := t.state.Observed()
	payload, _ := t.state.Consume()
	status := t.exitStatus(payload)

	t.logger.Error(LogMsgRootCaught,
		zap.Stringer(LogFieldCode, code),
		zap.String(LogFieldPayload, FormatPayload(payload)),
		zap.Int(LogFieldHandlers, handlers),
		zap.Int(LogFieldStatus, status))
	t.emit(&Diagnostic{
		Origin:   OriginRoot,
		Payload:  payload,
		Transfer: code.String(),
		Status:   status,
		Handlers: handlers,
		Stack:    t.raiseStack,
	})
	t.fire(NewHookData(HookRootCaught, t.root.Depth()).
		WithPayload(payload).
		WithTransfer(code.String()).
		WithStatus(status).
		WithHandlers(handlers))

	t.raiseStack = nil
	return status
}

// exitStatus maps a payload to the root's exit status.
func (t *Thread) exitStatus(p Payload) int {
	switch v := p.(type) {
	case StatusPayload:
		return v.Code
	case MessagePayload:
		return t.config.exitCodes.Message
	default:
		return t.config.exitCodes.Opaque
	}
}
