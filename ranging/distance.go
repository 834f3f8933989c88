package ranging

import "github.com/itohio/sonar/config"

// Reading is the outcome of one ranging session.
type Reading struct {
	Cm    float64
	Valid bool
	// Err is nil for valid readings, ErrTimeout or ErrOutOfRange otherwise.
	Err   error
	Ticks uint32
}

// Inches converts the reading to inches.
func (r Reading) Inches() float64 {
	return r.Cm / 2.54
}

// Calculator converts echo time of flight into distance.
type Calculator struct {
	speedOfSound float64 // cm/s
	minRange     float64
	maxRange     float64
}

func NewCalculator(cal config.Calibration) Calculator {
	return Calculator{
		speedOfSound: cal.SpeedOfSound,
		minRange:     cal.MinRange,
		maxRange:     cal.MaxRange,
	}
}

// SpeedOfSoundAt approximates the speed of sound in dry air in cm/s.
func SpeedOfSoundAt(celsius float64) float64 {
	return 33130 + 60.6*celsius
}

func (c *Calculator) SetSpeedOfSound(cmPerSecond float64) {
	c.speedOfSound = cmPerSecond
}

func (c Calculator) SpeedOfSound() float64 {
	return c.speedOfSound
}

// Centimeters returns the one-way distance for a round trip of elapsedTicks.
func (c Calculator) Centimeters(elapsedTicks uint32, tickHz float64) float64 {
	seconds := float64(elapsedTicks) / tickHz
	return c.speedOfSound * seconds / 2
}

// Compute converts elapsed ticks to a validated reading. Both range bounds
// are inclusive.
func (c Calculator) Compute(elapsedTicks uint32, tickHz float64) Reading {
	if tickHz <= 0 {
		return Reading{Err: ErrOutOfRange, Ticks: elapsedTicks}
	}
	cm := c.Centimeters(elapsedTicks, tickHz)
	r := Reading{Cm: cm, Ticks: elapsedTicks}
	if cm < c.minRange || cm > c.maxRange {
		r.Err = ErrOutOfRange
		return r
	}
	r.Valid = true
	return r
}

// Timeout returns the reading recorded when no echo completes in time.
func (c Calculator) Timeout(elapsedTicks uint32) Reading {
	return Reading{Err: ErrTimeout, Ticks: elapsedTicks}
}
