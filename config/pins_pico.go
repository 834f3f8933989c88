//go:build rp2040

package config

import "machine"

var (
	Trigger = machine.GP14
	Echo    = machine.GP18

	Thermometer = machine.ADC{Pin: machine.ADC0}

	Button  = machine.GP28
	ButtonA = machine.GP7
	ButtonB = machine.GP6

	TEST = machine.GP10

	DisplayBus = machine.I2C0
)

const (
	DisplayAddress = 0x3C
	DisplayWidth   = 128
	DisplayHeight  = 32

	// ADC reference voltage for the thermometer.
	Reference = 3.3
)
