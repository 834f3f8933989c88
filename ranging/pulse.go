package ranging

import (
	"sync/atomic"
	"time"
)

// MinTriggerWidth is the shortest trigger pulse the HC-SR04 accepts.
const MinTriggerWidth = 10 * time.Microsecond

// PulseGenerator starts a ranging cycle by pulsing the trigger line.
type PulseGenerator struct {
	pin   OutputPin
	width time.Duration
	wait  func(time.Duration)
	count atomic.Uint32
}

// NewPulseGenerator creates a generator holding pin high for width.
// wait must busy-wait; sleeping schedulers are far too coarse for 10us.
func NewPulseGenerator(pin OutputPin, width time.Duration, wait func(time.Duration)) (*PulseGenerator, error) {
	if width < MinTriggerWidth {
		return nil, ErrPulseWidth
	}
	return &PulseGenerator{
		pin:   pin,
		width: width,
		wait:  wait,
	}, nil
}

func (p *PulseGenerator) Configure() {
	p.pin.Low()
}

// Emit drives the trigger line high for the configured width, then low.
func (p *PulseGenerator) Emit() {
	p.pin.High()
	p.wait(p.width)
	p.pin.Low()
	p.count.Add(1)
}

// Count returns the number of pulses emitted so far.
func (p *PulseGenerator) Count() uint32 {
	return p.count.Load()
}

func (p *PulseGenerator) Width() time.Duration {
	return p.width
}
