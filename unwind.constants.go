package unwind

// Exit status defaults
const (
	// ExitCodeSuccess is returned by the entry point on normal completion
	// when it reports nothing else.
	ExitCodeSuccess = 0

	// DefaultExitCodeMessage is the root status for an uncaught Message panic.
	DefaultExitCodeMessage = 101

	// DefaultExitCodeOpaque is the root status for an uncaught Opaque panic.
	DefaultExitCodeOpaque = 101

	// DefaultExitCodeAbort is the status of a panic raised while unwinding.
	DefaultExitCodeAbort = 134
)

// Payload kind names
const (
	KindNameStatus  = "status"
	KindNameMessage = "message"
	KindNameOpaque  = "opaque"
	KindNameUnknown = "unknown"
)

// Diagnostic text formats
const (
	FmtPayloadStatus  = "status = %d"
	FmtPayloadMessage = "message = %s"
	FmtPayloadOpaque  = "payload = <unknown>"
	FmtRootCaught     = "(root) panic detected: %s"
	FmtAbort          = "panicked while panicking, ABORT! (active %s, raised %s)"
	FmtNewline        = "\n"
)

// Diagnostic origins
const (
	OriginRoot  = "root"
	OriginAbort = "abort"
)

// Diagnostic output formats
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Log messages
const (
	LogMsgThreadCreated  = "unwind thread created"
	LogMsgRootInstalled  = "root resumption point installed"
	LogMsgPadEnter       = "landing pad installed"
	LogMsgPadExit        = "landing pad exited normally"
	LogMsgRaise          = "panic raised"
	LogMsgForeignPanic   = "foreign panic adopted"
	LogMsgPadLand        = "landing pad received transfer"
	LogMsgPadRelay       = "landing pad relaying panic"
	LogMsgRootCaught     = "panic reached root"
	LogMsgAbort          = "panicked while panicking, aborting"
	LogMsgEntryReturned  = "entry returned normally"
	LogMsgSinkFailed     = "diagnostic sink failed"
	LogMsgHookFailed     = "hook failed"
	LogMsgTransferPassed = "transfer addressed to another point passed through"
	LogMsgGoexit         = "thread goroutine exited without returning"
)

// Log field names
const (
	LogFieldDepth    = "depth"
	LogFieldPoint    = "point"
	LogFieldTarget   = "target"
	LogFieldCode     = "code"
	LogFieldKind     = "kind"
	LogFieldPayload  = "payload"
	LogFieldStatus   = "status"
	LogFieldHandlers = "handlers"
	LogFieldHook     = "hook"
	LogFieldOrigin   = "origin"
	LogFieldStack    = "stack"
	LogFieldSecond   = "second_payload"
)
