package ranging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinearApproximator(t *testing.T) {
	// TMP36: 0.5 V at 0 C, 10 mV/C, 12 bit ADC over 3.3 V
	la := NewLinearApproximatorFromPoints[float64](620, 0, 1861, 100)
	assert.InDelta(t, 0, la.Convert(620), 1e-9)
	assert.InDelta(t, 100, la.Convert(1861), 1e-9)
	assert.InDelta(t, 50, la.Convert(1240), 0.1)

	direct := NewLinearApproximator[float32](2, 1)
	assert.InDelta(t, 21, direct.Convert(10), 1e-6)
}
