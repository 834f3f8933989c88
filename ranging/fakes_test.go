package ranging

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/itohio/sonar/config"
)

type pinEvent struct {
	high bool
	wait time.Duration
}

type fakePin struct {
	mu     sync.Mutex
	events []pinEvent
	pulses atomic.Int32
}

func (p *fakePin) High() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, pinEvent{high: true})
	p.pulses.Add(1)
}

func (p *fakePin) Low() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, pinEvent{high: false})
}

func (p *fakePin) wait(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, pinEvent{wait: d})
}

func (p *fakePin) Events() []pinEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]pinEvent(nil), p.events...)
}

type fakeCounter struct {
	ticks    atomic.Uint32
	restarts atomic.Int32
	cfg      TimerConfig
}

func (c *fakeCounter) Restart() {
	c.ticks.Store(0)
	c.restarts.Add(1)
}

func (c *fakeCounter) Ticks() uint32 {
	return c.ticks.Load()
}

func (c *fakeCounter) Configure(cfg TimerConfig) {
	c.cfg = cfg
}

type fakeAlarm struct {
	mu    sync.Mutex
	armed bool
	ticks uint32
	fire  func()
}

func (a *fakeAlarm) Arm(ticks uint32, fire func()) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.armed = true
	a.ticks = ticks
	a.fire = fire
}

func (a *fakeAlarm) Cancel() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.armed = false
}

func (a *fakeAlarm) Armed() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.armed
}

// Expire simulates the countdown reaching zero.
func (a *fakeAlarm) Expire() {
	a.mu.Lock()
	fire := a.fire
	armed := a.armed
	a.armed = false
	a.mu.Unlock()
	if armed && fire != nil {
		fire()
	}
}

// 8500 Hz exactly, so 50 ticks are 100 cm.
var testTimer = TimerConfig{SourceHz: 8500, TickHz: 8500, Prescale: 1}

type rig struct {
	pin     *fakePin
	counter *fakeCounter
	alarm   *fakeAlarm
	ranger  *Ranger
}

func newRig(cal config.Calibration) (*rig, error) {
	r := &rig{
		pin:     &fakePin{},
		counter: &fakeCounter{},
		alarm:   &fakeAlarm{},
	}
	pulse, err := NewPulseGenerator(r.pin, MinTriggerWidth, r.pin.wait)
	if err != nil {
		return nil, err
	}
	r.ranger, err = NewRanger(pulse, r.counter, r.alarm, testTimer, cal)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// echo simulates an echo pulse that is ticks long.
func (r *rig) echo(ticks uint32) {
	r.ranger.HandleEcho(true)
	r.counter.ticks.Store(ticks)
	r.ranger.HandleEcho(false)
}
