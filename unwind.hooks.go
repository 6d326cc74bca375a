package unwind

import (
	"context"
	"sync"
)

// HookPoint identifies when a hook is called during propagation.
type HookPoint string

// Hook points for landing pad and propagation events.
const (
	// HookEnter is called after a landing pad is installed.
	HookEnter HookPoint = "enter"

	// HookExit is called after a guarded body completes without raising.
	HookExit HookPoint = "exit"

	// HookRaise is called when a panic starts, before control transfers.
	HookRaise HookPoint = "raise"

	// HookLand is called when a landing pad receives a transfer, before
	// its handler runs.
	HookLand HookPoint = "land"

	// HookRelay is called after a handler finishes, before the pad re-raises.
	HookRelay HookPoint = "relay"

	// HookRootCaught is called when a panic reaches the root.
	HookRootCaught HookPoint = "root_caught"

	// HookAbort is called when a panic is raised while already unwinding.
	HookAbort HookPoint = "abort"
)

// Hook is a function called at specific points during propagation.
// Hooks observe only: a returned error is logged and never changes where
// control goes. A hook must not raise.
type Hook func(ctx context.Context, point HookPoint, data *HookData) error

// HookData carries context information to hooks.
type HookData struct {
	// Point is the hook point being run.
	Point HookPoint

	// Depth is the depth of the resumption point involved. The root is 0.
	Depth int

	// Payload is the active panic payload (nil for enter/exit).
	Payload Payload

	// Second is the payload of the raise that caused an abort.
	Second Payload

	// Transfer names the transfer code for land events ("panic" or "relay").
	Transfer string

	// Status is the exit status for root_caught and abort.
	Status int

	// Handlers is the number of handlers that observed the panic so far.
	Handlers int

	// Metadata allows hooks to pass data to each other.
	Metadata map[string]any
}

// NewHookData creates a new HookData for the given point and depth.
func NewHookData(point HookPoint, depth int) *HookData {
	return &HookData{
		Point:    point,
		Depth:    depth,
		Metadata: make(map[string]any),
	}
}

// WithPayload sets the active payload.
func (d *HookData) WithPayload(p Payload) *HookData {
	d.Payload = p
	return d
}

// WithSecond sets the payload of the raise that caused an abort.
func (d *HookData) WithSecond(p Payload) *HookData {
	d.Second = p
	return d
}

// WithTransfer sets the transfer code name.
func (d *HookData) WithTransfer(code string) *HookData {
	d.Transfer = code
	return d
}

// WithStatus sets the exit status.
func (d *HookData) WithStatus(status int) *HookData {
	d.Status = status
	return d
}

// WithHandlers sets the observed handler count.
func (d *HookData) WithHandlers(n int) *HookData {
	d.Handlers = n
	return d
}

// SetMetadata sets a metadata value.
func (d *HookData) SetMetadata(key string, value any) {
	if d.Metadata == nil {
		d.Metadata = make(map[string]any)
	}
	d.Metadata[key] = value
}

// GetMetadata gets a metadata value.
func (d *HookData) GetMetadata(key string) (any, bool) {
	if d.Metadata == nil {
		return nil, false
	}
	v, ok := d.Metadata[key]
	return v, ok
}

// HookRegistry manages hook registration and execution.
// A registry may be shared by threads on different goroutines.
type HookRegistry struct {
	mu    sync.RWMutex
	hooks map[HookPoint][]Hook
}

// NewHookRegistry creates a new hook registry.
func NewHookRegistry() *HookRegistry {
	return &HookRegistry{
		hooks: make(map[HookPoint][]Hook),
	}
}

// Register adds a hook for the specified point.
func (r *HookRegistry) Register(point HookPoint, hook Hook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks[point] = append(r.hooks[point], hook)
}

// RegisterMultiple adds a hook for multiple points.
func (r *HookRegistry) RegisterMultiple(hook Hook, points ...HookPoint) {
	for _, point := range points {
		r.Register(point, hook)
	}
}

// Clear removes all hooks for a specific point.
func (r *HookRegistry) Clear(point HookPoint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.hooks, point)
}

// ClearAll removes all hooks.
func (r *HookRegistry) ClearAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks = make(map[HookPoint][]Hook)
}

// Count returns the number of hooks registered for a point.
func (r *HookRegistry) Count(point HookPoint) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.hooks[point])
}

// HasHooks reports whether any hook is registered for a point.
func (r *HookRegistry) HasHooks(point HookPoint) bool {
	return r.Count(point) > 0
}

// Run executes every hook for the point in registration order and returns
// the errors they produced.
func (r *HookRegistry) Run(ctx context.Context, point HookPoint, data *HookData) []error {
	r.mu.RLock()
	hooks := r.hooks[point]
	r.mu.RUnlock()

	if len(hooks) == 0 {
		return nil
	}

	var errs []error
	for _, hook := range hooks {
		if err := hook(ctx, point, data); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
