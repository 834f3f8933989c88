//go:build tinygo

package dev

import (
	"machine"

	"github.com/itohio/sonar/ranging"
)

// Thermometer reads an analog temperature sensor (TMP36 or similar) for
// speed of sound compensation.
type Thermometer struct {
	adc     machine.ADC
	conv    ranging.LinearApproximator[float32]
	samples uint8
}

// NewThermometer averages samples readings per conversion. conv maps the
// 16 bit ADC value to degrees Celsius.
func NewThermometer(adc machine.ADC, samples uint8, conv ranging.LinearApproximator[float32]) *Thermometer {
	if samples == 0 {
		samples = 1
	}
	return &Thermometer{
		adc:     adc,
		conv:    conv,
		samples: samples,
	}
}

// NewTMP36Approximator returns the TMP36 transfer function for a given ADC
// reference: 0.5 V at 0 C, 10 mV per degree.
func NewTMP36Approximator(reference float32) ranging.LinearApproximator[float32] {
	at0 := uint16(0.5 / reference * 0xFFFF)
	at100 := uint16(1.5 / reference * 0xFFFF)
	return ranging.NewLinearApproximatorFromPoints[float32](at0, 0, at100, 100)
}

func (t *Thermometer) Configure() {
	t.adc.Configure(machine.ADCConfig{})
}

func (t *Thermometer) Raw() uint16 {
	var sum uint32
	for i := uint8(0); i < t.samples; i++ {
		sum += uint32(t.adc.Get())
	}
	return uint16(sum / uint32(t.samples))
}

func (t *Thermometer) Celsius() float32 {
	return t.conv.Convert(t.Raw())
}
