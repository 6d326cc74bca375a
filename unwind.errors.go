package unwind

import (
	"errors"
	"strconv"

	"github.com/itsatony/go-cuserr"
)

// Error message constants
const (
	// Propagation errors
	ErrMsgUncaughtPanic = "uncaught panic reached root"
	ErrMsgDoublePanic   = "panicked while panicking"

	// Misuse errors
	ErrMsgNoRoot       = "no root handler installed on thread"
	ErrMsgNilGuarded   = "guarded body cannot be nil"
	ErrMsgNilEntry     = "entry point cannot be nil"
	ErrMsgNilPayload   = "panic payload cannot be nil"
	ErrMsgThreadClosed = "thread already terminated"

	// Configuration errors
	ErrMsgConfigRead      = "failed to read config file"
	ErrMsgConfigParse     = "failed to parse config"
	ErrMsgConfigFormat    = "invalid diagnostics format"
	ErrMsgConfigLogLevel  = "invalid log level"
	ErrMsgConfigExitCodes = "exit code out of range"

	// Sink errors
	ErrMsgSinkWrite                = "failed to write diagnostic"
	ErrMsgPostgresEmptyConnString  = "postgres connection string cannot be empty"
	ErrMsgPostgresConnectionFailed = "postgres connection failed"
	ErrMsgPostgresMigrationFailed  = "postgres migration failed"
	ErrMsgPostgresQueryFailed      = "postgres query failed"
	ErrMsgPostgresClosed           = "postgres sink is closed"
)

// Error code constants for categorization
const (
	ErrCodeUncaught = "UNWIND_UNCAUGHT"
	ErrCodeAbort    = "UNWIND_ABORT"
	ErrCodeMisuse   = "UNWIND_MISUSE"
	ErrCodeConfig   = "UNWIND_CONFIG"
	ErrCodeSink     = "UNWIND_SINK"
)

// Metadata keys
const (
	MetaKeyKind     = "kind"
	MetaKeyPayload  = "payload"
	MetaKeyStatus   = "status"
	MetaKeyHandlers = "handlers"
	MetaKeySecond   = "second_payload"
	MetaKeyPath     = "path"
	MetaKeyValue    = "value"
	MetaKeyOrigin   = "origin"
)

// NewUncaughtPanicError describes a panic consumed by the root.
func NewUncaughtPanicError(p Payload, status, handlers int) error {
	return cuserr.WrapStdError(errors.New(FormatPayload(p)), ErrCodeUncaught, ErrMsgUncaughtPanic).
		WithMetadata(MetaKeyOrigin, OriginRoot).
		WithMetadata(MetaKeyKind, payloadKindName(p)).
		WithMetadata(MetaKeyPayload, FormatPayload(p)).
		WithMetadata(MetaKeyStatus, strconv.Itoa(status)).
		WithMetadata(MetaKeyHandlers, strconv.Itoa(handlers))
}

// NewDoublePanicError describes a raise issued while already unwinding.
func NewDoublePanicError(active, second Payload, status int) error {
	return cuserr.NewValidationError(ErrCodeAbort, ErrMsgDoublePanic).
		WithMetadata(MetaKeyOrigin, OriginAbort).
		WithMetadata(MetaKeyKind, payloadKindName(active)).
		WithMetadata(MetaKeyPayload, FormatPayload(active)).
		WithMetadata(MetaKeySecond, FormatPayload(second)).
		WithMetadata(MetaKeyStatus, strconv.Itoa(status))
}

// NewMisuseError reports a programming error in the use of a Thread.
func NewMisuseError(msg string) error {
	return cuserr.NewValidationError(ErrCodeMisuse, msg)
}

// NewConfigError creates a configuration error.
func NewConfigError(msg string, cause error) error {
	if cause != nil {
		return cuserr.WrapStdError(cause, ErrCodeConfig, msg)
	}
	return cuserr.NewValidationError(ErrCodeConfig, msg)
}

// NewConfigValueError creates a configuration error naming the bad value.
func NewConfigValueError(msg, path, value string) error {
	return cuserr.NewValidationError(ErrCodeConfig, msg).
		WithMetadata(MetaKeyPath, path).
		WithMetadata(MetaKeyValue, value)
}

// NewSinkError creates a diagnostic sink error.
func NewSinkError(msg string, cause error) error {
	if cause != nil {
		return cuserr.WrapStdError(cause, ErrCodeSink, msg)
	}
	return cuserr.NewValidationError(ErrCodeSink, msg)
}

func payloadKindName(p Payload) string {
	if p == nil {
		return KindNameUnknown
	}
	return p.Kind().String()
}
