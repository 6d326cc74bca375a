package unwind

import (
	"fmt"
)

// Kind identifies the variant of a Payload.
type Kind int

// Payload kinds.
const (
	KindStatus Kind = iota
	KindMessage
	KindOpaque
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindStatus:
		return KindNameStatus
	case KindMessage:
		return KindNameMessage
	case KindOpaque:
		return KindNameOpaque
	default:
		return KindNameUnknown
	}
}

// Payload is the value carried by a panic from the raise site to every
// handler and finally the root. The set of variants is closed:
// StatusPayload, MessagePayload and OpaquePayload.
type Payload interface {
	Kind() Kind
	fmt.Stringer
	payload()
}

// StatusPayload carries a machine-checkable status code. The root exits
// with Code.
type StatusPayload struct {
	Code int
}

// MessagePayload carries a human-readable diagnostic.
type MessagePayload struct {
	Text string
}

// OpaquePayload carries a caller-defined value the runtime never inspects.
type OpaquePayload struct {
	Value any
}

// Status creates a status payload.
func Status(code int) StatusPayload { return StatusPayload{Code: code} }

// Message creates a message payload.
func Message(text string) MessagePayload { return MessagePayload{Text: text} }

// Opaque creates an opaque payload.
func Opaque(value any) OpaquePayload { return OpaquePayload{Value: value} }

func (StatusPayload) Kind() Kind  { return KindStatus }
func (MessagePayload) Kind() Kind { return KindMessage }
func (OpaquePayload) Kind() Kind  { return KindOpaque }

func (StatusPayload) payload()  {}
func (MessagePayload) payload() {}
func (OpaquePayload) payload()  {}

// String formats the status numerically.
func (p StatusPayload) String() string {
	return fmt.Sprintf(FmtPayloadStatus, p.Code)
}

// String includes the message text.
func (p MessagePayload) String() string {
	return fmt.Sprintf(FmtPayloadMessage, p.Text)
}

// String never looks inside the value.
func (p OpaquePayload) String() string {
	return FmtPayloadOpaque
}

// FormatPayload returns the diagnostic text for p, or the empty string for nil.
func FormatPayload(p Payload) string {
	if p == nil {
		return ""
	}
	return p.String()
}
