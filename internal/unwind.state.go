package internal

// State is the per-thread unwind state.
type State int

// Thread states. Running is the only state with unwinding == false.
const (
	StateRunning State = iota
	StatePanicking
	StateHandling
	StateRootCaught
	StateAborted
)

var stateNames = map[State]string{
	StateRunning:    StateNameRunning,
	StatePanicking:  StateNamePanicking,
	StateHandling:   StateNameHandling,
	StateRootCaught: StateNameRootCaught,
	StateAborted:    StateNameAborted,
}

// String returns the state name.
func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return StateNameUnknown
}

// Terminal reports whether no further transfers can happen.
func (s State) Terminal() bool {
	return s == StateRootCaught || s == StateAborted
}

// PanicState holds the active payload of one thread and its unwind state.
// It is not safe for concurrent use.
type PanicState[P any] struct {
	payload  P
	has      bool
	state    State
	observed int
}

// NewPanicState creates a state in StateRunning.
func NewPanicState[P any]() *PanicState[P] {
	return &PanicState[P]{state: StateRunning}
}

// SetPayload stores the payload of the panic about to be raised.
func (s *PanicState[P]) SetPayload(p P) {
	s.payload = p
	s.has = true
}

// CurrentPayload returns the active payload. ok is false unless unwinding.
func (s *PanicState[P]) CurrentPayload() (p P, ok bool) {
	if !s.Unwinding() || !s.has {
		return p, false
	}
	return s.payload, true
}

// Unwinding reports whether a raise has started and has not reached the root.
func (s *PanicState[P]) Unwinding() bool {
	return s.state == StatePanicking || s.state == StateHandling
}

// State returns the current state.
func (s *PanicState[P]) State() State {
	return s.state
}

// Observed returns how many handlers observed the active panic.
func (s *PanicState[P]) Observed() int {
	return s.observed
}

// BeginUnwind moves Running to Panicking. It reports false if the thread
// was not running, which callers treat as a double panic.
func (s *PanicState[P]) BeginUnwind() bool {
	if s.state != StateRunning {
		return false
	}
	s.state = StatePanicking
	s.observed = 0
	return true
}

// EnterHandler moves Panicking to Handling.
func (s *PanicState[P]) EnterHandler() {
	if s.state == StatePanicking {
		s.state = StateHandling
		s.observed++
	}
}

// Relay moves Handling back to Panicking.
func (s *PanicState[P]) Relay() {
	if s.state == StateHandling {
		s.state = StatePanicking
	}
}

// Consume moves the thread to StateRootCaught and clears the payload,
// returning it. ok is false if no panic was active.
func (s *PanicState[P]) Consume() (p P, ok bool) {
	p, ok = s.CurrentPayload()
	var zero P
	s.payload = zero
	s.has = false
	s.state = StateRootCaught
	return p, ok
}

// Abort moves the thread to StateAborted. The active payload is kept for
// diagnostics.
func (s *PanicState[P]) Abort() (p P, ok bool) {
	p, ok = s.payload, s.has
	s.state = StateAborted
	return p, ok
}
