package ranging

// OutputPin is a digital output line. machine.Pin satisfies it.
type OutputPin interface {
	High()
	Low()
}

// Counter is a free-running hardware counter (RTT or equivalent) ticking at
// the rate given by the TimerConfig it was built from.
type Counter interface {
	// Restart resets the counter to zero and keeps it running.
	Restart()
	// Ticks returns the number of ticks since the last Restart.
	Ticks() uint32
}

// Alarm is a one-shot countdown timer. fire is called from interrupt (or
// timer goroutine) context and must not block.
type Alarm interface {
	Arm(ticks uint32, fire func())
	Cancel()
}
