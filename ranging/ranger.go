package ranging

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/itohio/sonar/config"
)

const (
	Idle         State = iota // No session, accepts a trigger
	Triggered                 // Trigger pulse is being emitted
	AwaitingEcho              // Waiting for the echo rising edge
	Measuring                 // Echo is high, counter running
	Resolved                  // Reading recorded, returning to Idle

	eventQueueSize = 8
)

type State uint8

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Triggered:
		return "triggered"
	case AwaitingEcho:
		return "awaiting echo"
	case Measuring:
		return "measuring"
	case Resolved:
		return "resolved"
	}
	return "unknown"
}

// Session is the transient record of one trigger to reading cycle.
type Session struct {
	ID           uint32
	State        State
	StartTicks   uint32
	ElapsedTicks uint32
	TimedOut     bool
}

// Stats counts session outcomes since the ranger was created.
type Stats struct {
	Triggers   uint32
	Valid      uint32
	Timeouts   uint32
	OutOfRange uint32
	Rejected   uint32
	Spurious   uint32
	Dropped    uint32
}

// Clocked is implemented by counters and alarms whose tick rate follows the
// TimerConfig.
type Clocked interface {
	Configure(TimerConfig)
}

// next is the only place state transitions are defined.
func next(s State, e eventKind) (State, bool) {
	switch {
	case s == Idle && e == eventTrigger:
		return Triggered, true
	case s == Triggered && e == eventFired:
		return AwaitingEcho, true
	case s == AwaitingEcho && e == eventEchoStart:
		return Measuring, true
	case s == Measuring && e == eventEchoStop:
		return Resolved, true
	case s == AwaitingEcho && e == eventEchoStop:
		// start event was dropped from a full queue, the stop still carries the width
		return Resolved, true
	case (s == AwaitingEcho || s == Measuring) && e == eventTimeout:
		return Resolved, true
	case s == Resolved && e == eventRecorded:
		return Idle, true
	}
	return s, false
}

// Ranger runs HC-SR04 ranging sessions.
//
// HandleEcho and the alarm expiry run in interrupt context and only post
// events. Trigger, Poll and Run belong to the main loop, which is the only
// writer of the session, history and statistics.
type Ranger struct {
	cal     config.Calibration
	timer   TimerConfig
	window  uint32
	pulse   *PulseGenerator
	counter Counter
	alarm   Alarm
	capture EchoCapture
	timeout TimeoutMonitor
	calc    Calculator
	history *History

	events  chan event
	dropped atomic.Uint32
	state   atomic.Int32

	session Session
	nextID  uint32
	last    Reading
	stats   Stats

	callback func(Reading)
}

// NewRanger creates a ranger. Counter and alarm are (re)configured for timer
// if they implement Clocked.
func NewRanger(pulse *PulseGenerator, counter Counter, alarm Alarm, timer TimerConfig, cal config.Calibration) (*Ranger, error) {
	if counter == nil {
		return nil, ErrNoCounter
	}
	if alarm == nil {
		return nil, ErrNoAlarm
	}
	if timer.Hz() <= 0 {
		return nil, ErrInvalidClock
	}
	history, err := NewHistory(cal.HistorySize)
	if err != nil {
		return nil, err
	}

	r := &Ranger{
		cal:     cal,
		pulse:   pulse,
		counter: counter,
		alarm:   alarm,
		calc:    NewCalculator(cal),
		history: history,
		events:  make(chan event, eventQueueSize),
	}
	r.capture.counter = counter
	r.capture.post = r.post
	r.timeout.alarm = alarm
	r.timeout.post = r.post
	r.setTimer(timer)
	r.setState(Idle)

	pulse.Configure()
	return r, nil
}

func (r *Ranger) setTimer(timer TimerConfig) {
	if c, ok := r.counter.(Clocked); ok {
		c.Configure(timer)
	}
	if a, ok := r.alarm.(Clocked); ok {
		a.Configure(timer)
	}
	r.timer = timer
	r.window = WindowTicks(timer, r.cal)
}

// SetCallback registers f to be called from the main loop with every reading.
func (r *Ranger) SetCallback(f func(Reading)) {
	r.callback = f
}

// SetSpeedOfSound recalibrates the calculator, tick rate and timeout window.
func (r *Ranger) SetSpeedOfSound(cmPerSecond float64) error {
	if r.State() != Idle {
		return ErrBusy
	}
	cal := r.cal
	cal.SpeedOfSound = cmPerSecond
	timer, err := NewTimerConfig(r.timer.SourceHz, cal)
	if err != nil {
		return err
	}
	r.cal = cal
	r.calc.SetSpeedOfSound(cmPerSecond)
	r.setTimer(timer)
	return nil
}

// HandleEcho is the echo line interrupt handler.
//
//go:noinline
func (r *Ranger) HandleEcho(high bool) {
	r.capture.OnEdge(high)
}

func (r *Ranger) post(e event) {
	select {
	case r.events <- e:
	default:
		r.dropped.Add(1)
	}
}

// Request asks the main loop to start a session. It only posts an event and
// may be called from interrupt context, e.g. a button handler.
//
//go:noinline
func (r *Ranger) Request() {
	r.post(event{kind: eventTrigger})
}

// Trigger starts a session. A trigger while a session is in flight is
// rejected with ErrBusy and no pulse is emitted.
func (r *Ranger) Trigger() error {
	if _, ok := next(r.State(), eventTrigger); !ok {
		r.stats.Rejected++
		return ErrBusy
	}
	r.nextID++
	if r.nextID == 0 {
		r.nextID = 1
	}
	r.session = Session{ID: r.nextID}
	r.advance(eventTrigger)
	r.stats.Triggers++

	r.capture.Arm(r.session.ID)
	r.pulse.Emit()
	r.timeout.Arm(r.session.ID, r.window)
	r.advance(eventFired)
	return nil
}

// Poll processes every pending event without blocking and reports whether a
// reading was recorded.
func (r *Ranger) Poll() bool {
	var batch [eventQueueSize]event
	n := r.drain(batch[:], 0)
	return r.process(batch[:n])
}

// Run processes events as they arrive until ctx is done.
func (r *Ranger) Run(ctx context.Context) error {
	var batch [eventQueueSize]event
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case e := <-r.events:
			batch[0] = e
			n := r.drain(batch[:], 1)
			r.process(batch[:n])
		}
	}
}

func (r *Ranger) drain(batch []event, n int) int {
	for n < len(batch) {
		select {
		case e := <-r.events:
			batch[n] = e
			n++
		default:
			return n
		}
	}
	return n
}

// process settles the session in flight, then handles trigger requests. A
// request posted while a session was in flight is rejected even if that
// session resolves in the same batch.
func (r *Ranger) process(batch []event) bool {
	busy := r.State() != Idle
	resolved := r.settle(batch)
	for _, e := range batch {
		if e.kind != eventTrigger {
			continue
		}
		if busy {
			r.stats.Rejected++
			continue
		}
		// rejected requests are only counted
		_ = r.Trigger()
	}
	return resolved
}

// settle applies echo and timeout events of the session in flight; events of
// earlier sessions are dropped.
func (r *Ranger) settle(batch []event) bool {
	state := r.State()
	if state != AwaitingEcho && state != Measuring {
		return false
	}
	id := r.session.ID

	// A pending timeout wins over an echo stop in the same window: the
	// counter may already be garbage.
	if r.timeout.Expired(id) {
		r.session.TimedOut = true
		r.advance(eventTimeout)
		r.resolve(r.calc.Timeout(r.session.ElapsedTicks))
		return true
	}

	for _, e := range batch {
		if e.session != id {
			continue
		}
		switch e.kind {
		case eventEchoStart:
			r.advance(eventEchoStart)
			r.session.StartTicks = e.ticks
		case eventEchoStop:
			r.advance(eventEchoStop)
			r.session.ElapsedTicks = e.ticks
			r.resolve(r.calc.Compute(e.ticks, r.timer.Hz()))
			return true
		case eventTimeout:
			r.session.TimedOut = true
			r.advance(eventTimeout)
			r.resolve(r.calc.Timeout(r.session.ElapsedTicks))
			return true
		}
	}
	return false
}

func (r *Ranger) resolve(reading Reading) {
	r.capture.Disarm()
	r.timeout.Cancel()

	switch {
	case reading.Valid:
		r.history.Push(reading.Cm)
		r.stats.Valid++
	case errors.Is(reading.Err, ErrTimeout):
		r.stats.Timeouts++
	default:
		r.stats.OutOfRange++
	}
	r.last = reading
	if r.callback != nil {
		r.callback(reading)
	}

	r.advance(eventRecorded)
	r.session = Session{}
}

func (r *Ranger) advance(e eventKind) {
	s, ok := next(r.State(), e)
	if !ok {
		return
	}
	r.setState(s)
	r.session.State = s
}

func (r *Ranger) setState(s State) {
	r.state.Store(int32(s))
}

// State returns the current state. Safe to call from any context.
func (r *Ranger) State() State {
	return State(r.state.Load())
}

// Session returns the session in flight, zero when idle.
func (r *Ranger) Session() Session {
	s := r.session
	s.State = r.State()
	return s
}

// Last returns the most recent reading.
func (r *Ranger) Last() Reading {
	return r.last
}

func (r *Ranger) History() *History {
	return r.history
}

func (r *Ranger) Timer() TimerConfig {
	return r.timer
}

// Window returns the echo timeout in ticks.
func (r *Ranger) Window() uint32 {
	return r.window
}

func (r *Ranger) Calibration() config.Calibration {
	return r.cal
}

func (r *Ranger) Stats() Stats {
	s := r.stats
	s.Spurious = r.capture.Spurious()
	s.Dropped = r.dropped.Load()
	return s
}
