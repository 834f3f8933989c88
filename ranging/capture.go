package ranging

import "sync/atomic"

type eventKind uint8

const (
	eventTrigger eventKind = iota + 1
	eventFired
	eventEchoStart
	eventEchoStop
	eventTimeout
	eventRecorded
)

// event is posted from interrupt context to the main loop.
type event struct {
	kind    eventKind
	session uint32
	ticks   uint32
}

// EchoCapture measures the width of the echo pulse on a free-running counter.
// OnEdge runs in interrupt context; it only snapshots the counter and posts
// events.
type EchoCapture struct {
	counter  Counter
	post     func(event)
	session  atomic.Uint32 // zero while disarmed
	started  atomic.Bool
	start    atomic.Uint32
	spurious atomic.Uint32
}

// Arm accepts edges for session.
func (c *EchoCapture) Arm(session uint32) {
	c.started.Store(false)
	c.session.Store(session)
}

func (c *EchoCapture) Disarm() {
	c.session.Store(0)
	c.started.Store(false)
}

// OnEdge handles an echo line change; high is the new line level.
//
//go:noinline
func (c *EchoCapture) OnEdge(high bool) {
	s := c.session.Load()
	if s == 0 {
		c.spurious.Add(1)
		return
	}
	if high {
		if c.started.Load() {
			return
		}
		c.counter.Restart()
		c.start.Store(c.counter.Ticks())
		c.started.Store(true)
		c.post(event{kind: eventEchoStart, session: s, ticks: c.start.Load()})
		return
	}
	if !c.started.Load() {
		// line was already high when armed
		c.spurious.Add(1)
		return
	}
	ticks := c.counter.Ticks() - c.start.Load()
	if c.session.CompareAndSwap(s, 0) {
		c.started.Store(false)
	}
	c.post(event{kind: eventEchoStop, session: s, ticks: ticks})
}

// Spurious returns the number of edges seen outside of a measurement.
func (c *EchoCapture) Spurious() uint32 {
	return c.spurious.Load()
}
