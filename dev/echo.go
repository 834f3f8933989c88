//go:build tinygo

package dev

import (
	"machine"

	"github.com/itohio/sonar/ranging"
)

// ConfigureTrigger sets up the trigger output, idle low.
func ConfigureTrigger(p machine.Pin) {
	p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	p.Low()
}

// EchoLine forwards both edges of the echo input to a handler running in
// interrupt context.
type EchoLine struct {
	pin     machine.Pin
	handler func(high bool)
}

func NewEchoLine(pin machine.Pin, handler func(high bool)) *EchoLine {
	return &EchoLine{
		pin:     pin,
		handler: handler,
	}
}

func (e *EchoLine) Configure(mode machine.PinMode) error {
	if mode != machine.PinInput && mode != machine.PinInputPulldown && mode != machine.PinInputPullup {
		return ranging.ErrInvalidPinMode
	}
	e.pin.Configure(machine.PinConfig{Mode: mode})
	return e.pin.SetInterrupt(machine.PinToggle, e.handle)
}

//go:noinline
func (e *EchoLine) handle(pin machine.Pin) {
	e.handler(pin.Get())
}

// Level reads the echo line directly.
func (e *EchoLine) Level() bool {
	return e.pin.Get()
}
