package host

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

const edgePoll = 100 * time.Millisecond

// Pins looks up the echo and trigger lines by their periph names, e.g. the
// BCM number on a Raspberry Pi. The host drivers must be initialized first.
func Pins(echo, trigger string) (gpio.PinIO, gpio.PinIO, error) {
	e := gpioreg.ByName(echo)
	if e == nil {
		return nil, nil, fmt.Errorf("no GPIO echo pin named: %s", echo)
	}
	t := gpioreg.ByName(trigger)
	if t == nil {
		return nil, nil, fmt.Errorf("no GPIO trigger pin named: %s", trigger)
	}
	return e, t, nil
}

// TriggerLine drives the HC-SR04 trigger input.
type TriggerLine struct {
	pin gpio.PinOut
	log *slog.Logger
}

// NewTriggerLine takes the pin and drives it low.
func NewTriggerLine(pin gpio.PinOut, log *slog.Logger) (*TriggerLine, error) {
	if err := pin.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("trigger %s: %w", pin.Name(), err)
	}
	return &TriggerLine{pin: pin, log: log}, nil
}

func (t *TriggerLine) High() { t.set(gpio.High) }
func (t *TriggerLine) Low()  { t.set(gpio.Low) }

func (t *TriggerLine) set(l gpio.Level) {
	if err := t.pin.Out(l); err != nil {
		t.log.Error("trigger", "pin", t.pin.Name(), "level", l, "err", err)
	}
}

// EchoWatcher forwards both edges of the echo line to a handler.
type EchoWatcher struct {
	pin     gpio.PinIn
	handler func(high bool)
	poll    time.Duration
}

func NewEchoWatcher(pin gpio.PinIn, handler func(high bool)) (*EchoWatcher, error) {
	if err := pin.In(gpio.PullDown, gpio.BothEdges); err != nil {
		return nil, fmt.Errorf("echo %s: %w", pin.Name(), err)
	}
	return &EchoWatcher{
		pin:     pin,
		handler: handler,
		poll:    edgePoll,
	}, nil
}

// Run waits for edges until ctx is done.
func (e *EchoWatcher) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !e.pin.WaitForEdge(e.poll) {
			continue
		}
		e.handler(e.pin.Read() == gpio.High)
	}
}
