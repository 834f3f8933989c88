package config

import "time"

// Calibration holds the physical constants the ranging core is tuned for.
// Changing SpeedOfSound or the counter clock requires a new TimerConfig.
type Calibration struct {
	// SpeedOfSound in cm/s.
	SpeedOfSound float64 `toml:"speed_of_sound"`
	// MinRange and MaxRange bound a valid reading, in cm, both inclusive.
	MinRange float64 `toml:"min_range"`
	MaxRange float64 `toml:"max_range"`
	// HistorySize is the number of valid readings kept for the bar graph.
	HistorySize int `toml:"history_size"`
	// TriggerWidth is how long the trigger line is held high.
	TriggerWidth Duration `toml:"trigger_width"`
	// TimeoutMargin scales the round trip to MaxRange into the echo timeout window.
	TimeoutMargin float64 `toml:"timeout_margin"`
	// ErrorHold is how long an error message stays on the display.
	ErrorHold Duration `toml:"error_hold"`
}

// Duration is a time.Duration that reads "10us" style text.
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

const (
	SpeedOfSound  = 34000 // cm/s
	MinRange      = 2     // cm
	MaxRange      = 400   // cm
	HistorySize   = 6
	TriggerWidth  = 10 * time.Microsecond
	TimeoutMargin = 1.25
	ErrorHold     = 100 * time.Millisecond
)

// DefaultCalibration returns the HC-SR04 datasheet values at room temperature.
func DefaultCalibration() Calibration {
	return Calibration{
		SpeedOfSound:  SpeedOfSound,
		MinRange:      MinRange,
		MaxRange:      MaxRange,
		HistorySize:   HistorySize,
		TriggerWidth:  Duration(TriggerWidth),
		TimeoutMargin: TimeoutMargin,
		ErrorHold:     Duration(ErrorHold),
	}
}
