package internal

// State names
const (
	StateNameRunning    = "running"
	StateNamePanicking  = "panicking"
	StateNameHandling   = "handling"
	StateNameRootCaught = "root_caught"
	StateNameAborted    = "aborted"
	StateNameUnknown    = "unknown"
)

// Transfer code names
const (
	TransferNameNone    = "none"
	TransferNamePanic   = "panic"
	TransferNameRelay   = "relay"
	TransferNameUnknown = "unknown"
)

// Format strings
const (
	PointNameNone  = "<none>"
	PointFormat    = "point#%d@%d"
	TransferFormat = "unwind transfer (%s) to %s"
	AbortFormat    = "unwind abort (status %d)"
)
