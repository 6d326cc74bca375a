package unwind

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Diagnostic describes a panic that reached the root, or a fatal abort.
type Diagnostic struct {
	// Origin is OriginRoot or OriginAbort.
	Origin string

	// Payload is the panic payload consumed by the root, or the payload
	// that was active when the abort happened.
	Payload Payload

	// Second is the payload of the raise that caused an abort.
	Second Payload

	// Transfer is how the root was reached: "panic" when no pad was
	// installed, "relay" when the last pad handed it on.
	Transfer string

	// Status is the exit status the thread terminates with.
	Status int

	// Handlers is the number of handlers that observed the panic.
	Handlers int

	// Stack is the goroutine stack at the raise site, when captured.
	Stack []byte

	// Time is when the diagnostic was produced.
	Time time.Time
}

// Text returns the one-line human-readable diagnostic.
func (d *Diagnostic) Text() string {
	if d.Origin == OriginAbort {
		return fmt.Sprintf(FmtAbort, FormatPayload(d.Payload), FormatPayload(d.Second))
	}
	return fmt.Sprintf(FmtRootCaught, FormatPayload(d.Payload))
}

// Err converts the diagnostic into an error carrying its details as metadata.
func (d *Diagnostic) Err() error {
	if d.Origin == OriginAbort {
		return NewDoublePanicError(d.Payload, d.Second, d.Status)
	}
	return NewUncaughtPanicError(d.Payload, d.Status, d.Handlers)
}

// Sink receives diagnostics. It is the only output channel of the runtime.
// A failing sink is logged and never changes the exit status.
type Sink interface {
	Emit(ctx context.Context, d *Diagnostic) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, d *Diagnostic) error

// Emit calls f.
func (f SinkFunc) Emit(ctx context.Context, d *Diagnostic) error {
	return f(ctx, d)
}

// MultiSink fans a diagnostic out to every sink and joins their errors.
type MultiSink []Sink

// Emit writes d to all sinks.
func (m MultiSink) Emit(ctx context.Context, d *Diagnostic) error {
	var errs []error
	for _, s := range m {
		if s == nil {
			continue
		}
		if err := s.Emit(ctx, d); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// diagnosticJSON is the JSON shape written by WriterSink.
type diagnosticJSON struct {
	Origin   string `json:"origin"`
	Kind     string `json:"kind"`
	Payload  string `json:"payload"`
	Second   string `json:"second_payload,omitempty"`
	Transfer string `json:"transfer,omitempty"`
	Status   int    `json:"status"`
	Handlers int    `json:"handlers"`
	Stack    string `json:"stack,omitempty"`
	Time     string `json:"time"`
}

// WriterSink writes diagnostics to an io.Writer as text lines or JSON lines.
type WriterSink struct {
	mu     sync.Mutex
	w      io.Writer
	format string
}

// NewWriterSink creates a sink writing to w. Unknown formats fall back to text.
func NewWriterSink(w io.Writer, format string) *WriterSink {
	if format != FormatJSON {
		format = FormatText
	}
	return &WriterSink{w: w, format: format}
}

// Emit writes one diagnostic.
func (s *WriterSink) Emit(_ context.Context, d *Diagnostic) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	if s.format == FormatJSON {
		out := diagnosticJSON{
			Origin:   d.Origin,
			Kind:     payloadKindName(d.Payload),
			Payload:  FormatPayload(d.Payload),
			Second:   FormatPayload(d.Second),
			Transfer: d.Transfer,
			Status:   d.Status,
			Handlers: d.Handlers,
			Stack:    string(d.Stack),
			Time:     d.Time.UTC().Format(time.RFC3339Nano),
		}
		err = json.NewEncoder(s.w).Encode(out)
	} else {
		_, err = fmt.Fprint(s.w, d.Text()+FmtNewline)
		if err == nil && len(d.Stack) > 0 {
			_, err = s.w.Write(d.Stack)
		}
	}
	if err != nil {
		return NewSinkError(ErrMsgSinkWrite, err)
	}
	return nil
}

// ZapSink logs diagnostics as structured error entries.
type ZapSink struct {
	logger *zap.Logger
}

// NewZapSink creates a sink logging to logger. A nil logger discards.
func NewZapSink(logger *zap.Logger) *ZapSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapSink{logger: logger}
}

// Emit logs one diagnostic at error level.
func (s *ZapSink) Emit(_ context.Context, d *Diagnostic) error {
	fields := []zap.Field{
		zap.String(LogFieldOrigin, d.Origin),
		zap.String(LogFieldKind, payloadKindName(d.Payload)),
		zap.String(LogFieldPayload, FormatPayload(d.Payload)),
		zap.Int(LogFieldStatus, d.Status),
		zap.Int(LogFieldHandlers, d.Handlers),
		zap.Error(d.Err()),
	}
	if d.Second != nil {
		fields = append(fields, zap.String(LogFieldSecond, FormatPayload(d.Second)))
	}
	if len(d.Stack) > 0 {
		fields = append(fields, zap.ByteString(LogFieldStack, d.Stack))
	}
	s.logger.Error(d.Text(), fields...)
	return nil
}
