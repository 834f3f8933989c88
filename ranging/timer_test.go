package ranging

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/sonar/config"
)

func TestNewTimerConfig(t *testing.T) {
	cal := config.DefaultCalibration()

	// SAM RTT slow clock
	rtt, err := NewTimerConfig(32768, cal)
	require.NoError(t, err)
	assert.InDelta(t, 8500, rtt.TickHz, 1e-9)
	assert.Equal(t, uint32(3), rtt.Prescale)
	assert.InDelta(t, 32768.0/3, rtt.Hz(), 1e-9)

	// RP2040 microsecond timer
	us, err := NewTimerConfig(1_000_000, cal)
	require.NoError(t, err)
	assert.Equal(t, uint32(117), us.Prescale)

	// a clock slower than the wanted rate is not divided
	slow, err := NewTimerConfig(1000, cal)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), slow.Prescale)
	assert.InDelta(t, 1000, slow.Hz(), 1e-9)

	_, err = NewTimerConfig(0, cal)
	assert.ErrorIs(t, err, ErrInvalidClock)
	cal.MinRange = 0
	_, err = NewTimerConfig(32768, cal)
	assert.ErrorIs(t, err, ErrInvalidClock)
}

func TestTimerConversions(t *testing.T) {
	assert.Equal(t, time.Second, testTimer.Duration(8500))
	assert.Equal(t, uint32(8500), testTimer.Ticks(time.Second))
	assert.Equal(t, uint32(1), testTimer.Ticks(time.Microsecond))
	assert.Equal(t, uint32(0), testTimer.Ticks(0))
}

func TestWindowTicks(t *testing.T) {
	cal := config.DefaultCalibration()

	w := WindowTicks(testTimer, cal)
	// 400 cm round trip is 200 ticks at 8500 Hz, with a 1.25 margin 250
	assert.GreaterOrEqual(t, w, uint32(250))
	assert.LessOrEqual(t, w, uint32(251))

	farthest := testTimer.Ticks(time.Duration(2 * cal.MaxRange / cal.SpeedOfSound * float64(time.Second)))
	assert.Less(t, farthest, w)

	cal.TimeoutMargin = 0.5
	w = WindowTicks(testTimer, cal)
	assert.GreaterOrEqual(t, w, uint32(200))
	assert.LessOrEqual(t, w, uint32(201))

	cal.MaxRange = 0
	assert.Equal(t, uint32(1), WindowTicks(testTimer, cal))
}
