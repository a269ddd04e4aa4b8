package physics

import "log"

// StabilityEvent is the structured record emitted when validateState finds
// an unstable step. It is logged, never returned as an error: numerical
// anomalies are funneled through the stability check, not per-operation
// error returns.
type StabilityEvent struct {
	Step   int64
	Reason string
}

// logStabilityEvent reports a stability violation through the standard
// logger. The integrator always recovers locally (respawns the lattice);
// this call exists purely as an observability hook.
func logStabilityEvent(ev StabilityEvent) {
	log.Printf("physics: stability violation at step %d: %s (auto-reset)", ev.Step, ev.Reason)
}

// fatalAllocation reports an unrecoverable capacity request. A negative
// particle count can only come from a programming error upstream (never
// from user input, which is always clamped), so it is treated as fatal
// rather than surfaced as an error value.
func fatalAllocation(context string, n int) {
	if n < 0 {
		log.Fatalf("physics: allocation failure in %s: negative capacity %d", context, n)
	}
}
