package unwind

import (
	"go.uber.org/zap"

	"github.com/itsatony/go-unwind/internal"
)

// landingPad is one activation of a guarded region.
type landingPad struct {
	thread   *Thread
	saved    *internal.ResumptionPoint
	previous *internal.ResumptionPoint
	status   internal.TransferCode
}

// Register runs guarded with a landing pad installed.
//
// If guarded returns, the previous resumption point is restored and
// Register returns; handler never runs. Returning early from guarded is the
// same as falling off its end.
//
// If a panic is raised anywhere in guarded's dynamic extent, control
// comes straight back here, handler runs with the active payload, and the
// panic is relayed to the resumption point that was current before this
// pad. A handler observes a panic but cannot stop it, so in that case
// Register does not return. Raising from inside handler aborts the process.
//
// Frames skipped by the transfer run their deferred calls. Those calls must
// not raise: a panic while unwinding is fatal.
func (t *Thread) Register(guarded func(), handler func(Payload)) {
	if guarded == nil {
		panic(NewMisuseError(ErrMsgNilGuarded))
	}
	t.requireRoot()

	pad := t.enterPad()
	pad.status = pad.guard(guarded)
	if pad.status == internal.TransferNone {
		pad.exit()
		return
	}

	pad.handle(handler)
	pad.relay()
}

// enterPad captures a new resumption point and installs it as current.
func (t *Thread) enterPad() *landingPad {
	pad := &landingPad{
		thread: t,
		saved:  t.stack.Capture(),
	}
	pad.previous = t.stack.InstallAsCurrent(pad.saved)

	t.logger.Debug(LogMsgPadEnter,
		zap.Stringer(LogFieldPoint, pad.saved),
		zap.Int(LogFieldDepth, pad.saved.Depth()))
	t.fire(NewHookData(HookEnter, pad.saved.Depth()))
	return pad
}

// guard runs body and reports how control came back: TransferNone on
// normal completion, otherwise the code of the transfer addressed to this pad.
func (p *landingPad) guard(body func()) (code internal.TransferCode) {
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
		code = p.receive(r)
	}()

	body()
	completed = true
	return internal.TransferNone
}

// receive classifies a recovered value. It returns only for transfers this
// pad must handle and re-panics everything else.
func (p *landingPad) receive(r any) internal.TransferCode {
	t := p.thread

	switch v := r.(type) {
	case *internal.Abort:
		panic(v)
	case *internal.Transfer:
		if v.Target == p.saved {
			return v.Code
		}
		t.logger.Debug(LogMsgTransferPassed,
			zap.Stringer(LogFieldPoint, p.saved),
			zap.Stringer(LogFieldTarget, v.Target))
		panic(v)
	}

	if t.State() == StateAborted {
		panic(r)
	}
	if t.state.Unwinding() {
		panic(t.abort(Opaque(r)))
	}

	// A Go panic started inside this pad's guarded body, and this pad is
	// the innermost one, so it lands here as a direct panic.
	t.begin(Opaque(r), LogMsgForeignPanic)
	return internal.TransferPanic
}

// exit restores the previous resumption point after normal completion.
func (p *landingPad) exit() {
	t := p.thread
	t.stack.Restore(p.previous)

	t.logger.Debug(LogMsgPadExit, zap.Int(LogFieldDepth, p.saved.Depth()))
	t.fire(NewHookData(HookExit, p.saved.Depth()))
}

// handle runs the handler with the active payload.
func (p *landingPad) handle(handler func(Payload)) {
	t := p.thread
	t.state.EnterHandler()
	payload, _ := t.state.CurrentPayload()

	t.logger.Debug(LogMsgPadLand,
		zap.Int(LogFieldDepth, p.saved.Depth()),
		zap.Stringer(LogFieldCode, p.status),
		zap.String(LogFieldPayload, FormatPayload(payload)))
	t.fire(NewHookData(HookLand, p.saved.Depth()).
		WithPayload(payload).
		WithTransfer(p.status.String()).
		WithHandlers(t.state.Observed()))

	if handler != nil {
		handler(payload)
	}
}

// relay restores the previous resumption point and transfers there.
func (p *landingPad) relay() {
	t := p.thread
	t.state.Relay()
	t.stack.Restore(p.previous)

	payload, _ := t.state.CurrentPayload()
	t.logger.Debug(LogMsgPadRelay,
		zap.Int(LogFieldDepth, p.saved.Depth()),
		zap.Stringer(LogFieldTarget, p.previous))
	t.fire(NewHookData(HookRelay, p.saved.Depth()).
		WithPayload(payload).
		WithHandlers(t.state.Observed()))

	panic(internal.NewTransfer(internal.TransferRelay, p.previous))
}

// IsUnwindPanic reports whether v, a value returned by recover, belongs to
// this runtime. Code that recovers panics for its own purposes must
// re-panic such values unchanged.
func IsUnwindPanic(v any) bool {
	switch v.(type) {
	case *internal.Transfer, *internal.Abort:
		return true
	default:
		return false
	}
}
