package host

import (
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/itohio/sonar/ranging"
)

// ClockHz is the source rate of the host counter and alarm.
const ClockHz = float64(time.Second)

var epoch = time.Now()

func monotonic() time.Duration {
	return time.Since(epoch)
}

// Spin busy-waits d. The scheduler cannot sleep for a 10us trigger pulse.
func Spin(d time.Duration) {
	t := monotonic()
	for monotonic()-t < d {
	}
}

// Counter counts ticks of the configured rate since the last Restart.
type Counter struct {
	hz    atomic.Uint64
	start atomic.Int64
}

func NewCounter(timer ranging.TimerConfig) *Counter {
	c := &Counter{}
	c.Configure(timer)
	c.Restart()
	return c
}

func (c *Counter) Configure(timer ranging.TimerConfig) {
	c.hz.Store(math.Float64bits(timer.Hz()))
}

func (c *Counter) Restart() {
	c.start.Store(int64(monotonic()))
}

func (c *Counter) Ticks() uint32 {
	d := monotonic() - time.Duration(c.start.Load())
	t := d.Seconds() * math.Float64frombits(c.hz.Load())
	if t >= math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(t)
}

// Alarm is a one-shot timer counting in ticks of the configured rate.
type Alarm struct {
	mu    sync.Mutex
	timer ranging.TimerConfig
	t     *time.Timer
	gen   uint64
}

func NewAlarm(timer ranging.TimerConfig) *Alarm {
	return &Alarm{timer: timer}
}

func (a *Alarm) Configure(timer ranging.TimerConfig) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.timer = timer
}

// Arm calls fire after ticks unless Cancel or another Arm comes first.
func (a *Alarm) Arm(ticks uint32, fire func()) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.t != nil {
		a.t.Stop()
	}
	a.gen++
	gen := a.gen
	a.t = time.AfterFunc(a.timer.Duration(ticks), func() {
		a.mu.Lock()
		live := a.gen == gen
		a.mu.Unlock()
		if live {
			fire()
		}
	})
}

func (a *Alarm) Cancel() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.gen++
	if a.t != nil {
		a.t.Stop()
		a.t = nil
	}
}
