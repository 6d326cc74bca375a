package internal

import "fmt"

// ResumptionPoint is a place control returns to on the next transfer.
// Points are compared by identity.
type ResumptionPoint struct {
	id    uint64
	depth int
	owner *ContextStack
}

// ID returns the point's sequence number within its stack.
func (p *ResumptionPoint) ID() uint64 {
	if p == nil {
		return 0
	}
	return p.id
}

// Depth returns the nesting depth of the point. The root point is depth 0.
func (p *ResumptionPoint) Depth() int {
	if p == nil {
		return -1
	}
	return p.depth
}

// OwnedBy reports whether p was captured by s.
func (p *ResumptionPoint) OwnedBy(s *ContextStack) bool {
	return p != nil && s != nil && p.owner == s
}

// String returns a short description for logs.
func (p *ResumptionPoint) String() string {
	if p == nil {
		return PointNameNone
	}
	return fmt.Sprintf(PointFormat, p.id, p.depth)
}

// ContextStack records the current resumption point of one thread.
// Pads form an implicit stack through their saved previous points; the
// ContextStack only holds the top. It is not safe for concurrent use.
type ContextStack struct {
	current *ResumptionPoint
	nextID  uint64
}

// NewContextStack creates an empty stack with no current point.
func NewContextStack() *ContextStack {
	return &ContextStack{}
}

// Capture creates a new point one level below the current one.
// The point is not installed.
func (s *ContextStack) Capture() *ResumptionPoint {
	s.nextID++
	return &ResumptionPoint{
		id:    s.nextID,
		depth: s.current.Depth() + 1,
		owner: s,
	}
}

// InstallAsCurrent makes p the current point and returns the previous one.
func (s *ContextStack) InstallAsCurrent(p *ResumptionPoint) *ResumptionPoint {
	prev := s.current
	s.current = p
	return prev
}

// Restore reinstates a point previously returned by InstallAsCurrent.
func (s *ContextStack) Restore(prev *ResumptionPoint) {
	s.current = prev
}

// Current returns the point control jumps to on the next transfer.
func (s *ContextStack) Current() *ResumptionPoint {
	return s.current
}

// Depth returns the depth of the current point, or -1 if none is installed.
func (s *ContextStack) Depth() int {
	return s.current.Depth()
}
