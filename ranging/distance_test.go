package ranging

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/itohio/sonar/config"
)

func TestComputeFormula(t *testing.T) {
	calc := NewCalculator(config.DefaultCalibration())
	for _, tt := range []struct {
		ticks uint32
		hz    float64
	}{
		{1, 8500},
		{50, 8500},
		{1000, 8500},
		{5000, 8500},
		{117, 1_000_000},
		{23529, 1_000_000},
		{0, 32768},
	} {
		want := 34000 * (float64(tt.ticks) / tt.hz) / 2
		got := calc.Compute(tt.ticks, tt.hz)
		assert.InDelta(t, want, got.Cm, 1e-9, "%d ticks @ %v Hz", tt.ticks, tt.hz)
		assert.Equal(t, tt.ticks, got.Ticks)
	}
}

// With 2 cm/s at 1 Hz one tick is exactly one centimeter, which makes the
// bounds exact.
func TestComputeBoundsAreInclusive(t *testing.T) {
	cal := config.DefaultCalibration()
	cal.SpeedOfSound = 2
	calc := NewCalculator(cal)

	for _, tt := range []struct {
		ticks uint32
		valid bool
	}{
		{0, false},
		{1, false},
		{2, true},
		{3, true},
		{399, true},
		{400, true},
		{401, false},
	} {
		got := calc.Compute(tt.ticks, 1)
		assert.InDelta(t, float64(tt.ticks), got.Cm, 0)
		assert.Equal(t, tt.valid, got.Valid, "%d cm", tt.ticks)
		if tt.valid {
			assert.NoError(t, got.Err)
		} else {
			assert.ErrorIs(t, got.Err, ErrOutOfRange)
		}
	}
}

func TestComputeSaturatesFarEcho(t *testing.T) {
	calc := NewCalculator(config.DefaultCalibration())
	got := calc.Compute(5000, 8500)
	assert.InDelta(t, 10000, got.Cm, 1e-6)
	assert.False(t, got.Valid)
	assert.ErrorIs(t, got.Err, ErrOutOfRange)
}

func TestComputeRejectsZeroFrequency(t *testing.T) {
	calc := NewCalculator(config.DefaultCalibration())
	got := calc.Compute(100, 0)
	assert.False(t, got.Valid)
	assert.ErrorIs(t, got.Err, ErrOutOfRange)
}

func TestTimeoutReading(t *testing.T) {
	calc := NewCalculator(config.DefaultCalibration())
	got := calc.Timeout(12)
	assert.False(t, got.Valid)
	assert.ErrorIs(t, got.Err, ErrTimeout)
	assert.Equal(t, uint32(12), got.Ticks)
}

func TestSpeedOfSoundAt(t *testing.T) {
	assert.InDelta(t, 33130, SpeedOfSoundAt(0), 1e-9)
	assert.InDelta(t, 34342, SpeedOfSoundAt(20), 1e-9)

	calc := NewCalculator(config.DefaultCalibration())
	calc.SetSpeedOfSound(SpeedOfSoundAt(20))
	assert.InDelta(t, 34342, calc.SpeedOfSound(), 1e-9)
}

func TestReadingInches(t *testing.T) {
	assert.InDelta(t, 10, Reading{Cm: 25.4}.Inches(), 1e-9)
}
