package ranging

import (
	"math"
	"time"

	"github.com/itohio/sonar/config"
)

// TimerConfig describes how the elapsed-time counter is clocked.
//
// The tick rate is derived from the calibration: one tick is the round trip
// time to the minimum sensor range, so t = 2*MinRange/SpeedOfSound and
// TickHz = SpeedOfSound/(2*MinRange). For 34000 cm/s and 2 cm this is 8500 Hz.
// The counter clock (SourceHz) is divided by an integer Prescale, so the
// effective rate Hz() may differ slightly from TickHz.
type TimerConfig struct {
	SourceHz float64
	TickHz   float64
	Prescale uint32
}

// NewTimerConfig derives the prescale for a counter clocked at sourceHz.
func NewTimerConfig(sourceHz float64, cal config.Calibration) (TimerConfig, error) {
	if sourceHz <= 0 || cal.SpeedOfSound <= 0 || cal.MinRange <= 0 {
		return TimerConfig{}, ErrInvalidClock
	}
	tick := cal.SpeedOfSound / (2 * cal.MinRange)
	prescale := uint32(sourceHz / tick)
	if prescale == 0 {
		prescale = 1
	}
	return TimerConfig{
		SourceHz: sourceHz,
		TickHz:   tick,
		Prescale: prescale,
	}, nil
}

// Hz returns the effective tick frequency.
func (c TimerConfig) Hz() float64 {
	if c.Prescale == 0 {
		return c.SourceHz
	}
	return c.SourceHz / float64(c.Prescale)
}

// Duration converts a tick count to wall time.
func (c TimerConfig) Duration(ticks uint32) time.Duration {
	hz := c.Hz()
	if hz <= 0 {
		return 0
	}
	return time.Duration(float64(ticks) / hz * float64(time.Second))
}

// Ticks converts wall time to a tick count, rounding up.
func (c TimerConfig) Ticks(d time.Duration) uint32 {
	t := math.Ceil(d.Seconds() * c.Hz())
	if t > math.MaxUint32 {
		return math.MaxUint32
	}
	if t < 0 {
		return 0
	}
	return uint32(t)
}

// WindowTicks sizes the echo timeout: the round trip to MaxRange scaled by
// TimeoutMargin. The margin is never below 1 so the farthest valid target
// cannot time out.
func WindowTicks(cfg TimerConfig, cal config.Calibration) uint32 {
	margin := cal.TimeoutMargin
	if margin < 1 {
		margin = 1
	}
	if cal.SpeedOfSound <= 0 {
		return 1
	}
	roundTrip := 2 * cal.MaxRange / cal.SpeedOfSound
	t := math.Ceil(roundTrip * margin * cfg.Hz())
	if t < 1 {
		return 1
	}
	if t > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(t)
}
