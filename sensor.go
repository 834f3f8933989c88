//go:build rp2040

package main

import (
	"fmt"
	"machine"
	"time"

	"github.com/itohio/sonar/config"
	"github.com/itohio/sonar/dev"
	"github.com/itohio/sonar/ranging"
)

var (
	ranger *ranging.Ranger
	thermo *dev.Thermometer
	echo   *dev.EchoLine

	celsius float32
)

func configureRanger(cal config.Calibration) error {
	timer, err := ranging.NewTimerConfig(dev.RTTHz, cal)
	if err != nil {
		return err
	}

	dev.ConfigureTrigger(config.Trigger)
	pulse, err := ranging.NewPulseGenerator(config.Trigger, time.Duration(cal.TriggerWidth), dev.WaitCalibrated)
	if err != nil {
		return err
	}

	ranger, err = ranging.NewRanger(pulse, dev.NewRTT(), &dev.Alarm{}, timer, cal)
	if err != nil {
		return err
	}

	echo = dev.NewEchoLine(config.Echo, ranger.HandleEcho)
	if err := echo.Configure(machine.PinInputPulldown); err != nil {
		return err
	}
	if echo.Level() {
		println("Echo line is high while idle, check the sensor wiring")
	}

	println(fmt.Sprintf("Ranger: %0.1f Hz (prescale %d), timeout %d ticks", timer.Hz(), timer.Prescale, ranger.Window()))
	return nil
}

func configureThermometer() {
	thermo = dev.NewThermometer(config.Thermometer, 16, dev.NewTMP36Approximator(config.Reference))
	thermo.Configure()
}

// compensate recalibrates the speed of sound from the air temperature. It is
// skipped while a session is in flight.
func compensate() {
	t := thermo.Celsius()
	if t < -40 || t > 85 {
		// sensor missing or broken
		return
	}
	if err := ranger.SetSpeedOfSound(ranging.SpeedOfSoundAt(float64(t))); err != nil {
		return
	}
	celsius = t
}
