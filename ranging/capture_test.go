package ranging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hookCounter runs onTicks on every read, to interleave work with an edge
// handler.
type hookCounter struct {
	fakeCounter
	onTicks func()
}

func (c *hookCounter) Ticks() uint32 {
	if c.onTicks != nil {
		c.onTicks()
	}
	return c.fakeCounter.Ticks()
}

func newCapture(counter Counter) (*EchoCapture, *[]event) {
	var events []event
	c := &EchoCapture{
		counter: counter,
		post:    func(e event) { events = append(events, e) },
	}
	return c, &events
}

func TestCaptureWidth(t *testing.T) {
	counter := &fakeCounter{}
	c, events := newCapture(counter)

	c.Arm(1)
	c.OnEdge(true)
	counter.ticks.Store(42)
	c.OnEdge(false)

	require.Len(t, *events, 2)
	assert.Equal(t, event{kind: eventEchoStart, session: 1}, (*events)[0])
	assert.Equal(t, event{kind: eventEchoStop, session: 1, ticks: 42}, (*events)[1])
	assert.Equal(t, int32(1), counter.restarts.Load())

	// disarmed after the stop
	c.OnEdge(true)
	assert.Len(t, *events, 2)
	assert.Equal(t, uint32(1), c.Spurious())
}

func TestCaptureStopKeepsNewerSession(t *testing.T) {
	counter := &hookCounter{}
	c, events := newCapture(counter)

	c.Arm(1)
	c.OnEdge(true)

	// the next session is armed while the falling edge of the first one is
	// still being handled
	counter.onTicks = func() {
		counter.onTicks = nil
		c.Disarm()
		c.Arm(2)
	}
	c.OnEdge(false)

	require.Len(t, *events, 2)
	assert.Equal(t, uint32(1), (*events)[1].session)

	c.OnEdge(true)
	require.Len(t, *events, 3)
	assert.Equal(t, event{kind: eventEchoStart, session: 2}, (*events)[2])
}
