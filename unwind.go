// Package unwind provides structured panic propagation with observer
// landing pads.
//
// A guarded region pairs a body with a handler. When a panic is raised
// anywhere below the region, control transfers directly to the nearest
// landing pad, its handler observes the payload, and the pad relays the
// panic outward. Every enclosing handler sees the panic, innermost first,
// and none can stop it. The root handler installed at entry turns the panic
// into a diagnostic and an exit status.
//
// # Basic Usage
//
//	status := unwind.Run(ctx, func(t *unwind.Thread) int {
//	    t.Register(func() {
//	        work(t)
//	    }, func(p unwind.Payload) {
//	        log.Printf("work failed: %s", p)
//	    })
//	    return 0
//	})
//	os.Exit(status)
//
// Inside work, any of these starts a panic:
//
//	t.RaiseStatus(3)                 // root exits with 3
//	t.RaiseMessage("disk full")      // root exits with 101
//	t.RaiseOpaque(myValue)           // root exits with 101
//
// # Double Panics
//
// Raising while a panic is in flight, whether from a handler, a hook or a
// deferred call in a skipped frame, is fatal: a diagnostic is emitted and
// the process exits with status 134. Go panics that are not raised through
// a Thread are adopted as Opaque payloads and follow the same rules.
//
// # Threads
//
// A Thread holds the state of one goroutine. Run creates it for the
// calling goroutine and Go starts a new goroutine with its own. Threads
// never share state; a panic never crosses goroutines.
package unwind
