package internal

import "fmt"

// TransferCode tags why control arrived at a resumption point.
type TransferCode int

// Transfer codes. 1 is unused so a zero-valued status never reads as a
// panic and the values line up with the jump codes of the C runtime.
const (
	TransferNone  TransferCode = 0
	TransferPanic TransferCode = 2
	TransferRelay TransferCode = 3
)

// String returns the transfer code name.
func (c TransferCode) String() string {
	switch c {
	case TransferNone:
		return TransferNameNone
	case TransferPanic:
		return TransferNamePanic
	case TransferRelay:
		return TransferNameRelay
	default:
		return TransferNameUnknown
	}
}

// Transfer is the value carried by a Go panic performing a non-local
// transfer to Target.
type Transfer struct {
	Code   TransferCode
	Target *ResumptionPoint
}

// NewTransfer creates a transfer to target.
func NewTransfer(code TransferCode, target *ResumptionPoint) *Transfer {
	return &Transfer{Code: code, Target: target}
}

// String implements fmt.Stringer so an escaped transfer is readable in a
// Go crash report.
func (t *Transfer) String() string {
	return fmt.Sprintf(TransferFormat, t.Code, t.Target)
}

// Abort is carried by a Go panic after a fatal double panic when the exit
// function returned. Pads pass it through untouched; the root of the
// owning thread returns Status.
type Abort struct {
	Status int
	Owner  *ContextStack
}

// String implements fmt.Stringer.
func (a *Abort) String() string {
	return fmt.Sprintf(AbortFormat, a.Status)
}
