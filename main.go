//go:build rp2040

package main

import (
	"fmt"
	"machine"
	"time"

	"github.com/itohio/sonar/config"
	"github.com/itohio/sonar/dev"
	"github.com/itohio/sonar/display"
	"tinygo.org/x/drivers/encoders"
	"tinygo.org/x/drivers/ssd1306"
)

//go:generate tinygo flash -target=pico

var encoder *encoders.QuadratureDevice

func main() {
	cal := config.DefaultCalibration()

	// the trigger pulse relies on the nop loop, tune it to this clock
	dev.CalibrateWait(time.Millisecond*2, 100)
	c := dev.Calibration()
	println(fmt.Sprintf("Wait calibration: %d / %d", int64(c.K), int64(c.M)))

	machine.InitADC()
	configureThermometer()

	encoder = encoders.NewQuadratureViaInterrupt(config.ButtonA, config.ButtonB)
	encoder.Configure(encoders.QuadratureConfig{Precision: 1})
	config.Button.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	config.TEST.Configure(machine.PinConfig{Mode: machine.PinOutput})

	if err := configureRanger(cal); err != nil {
		panic("ranger: " + err.Error())
	}
	compensate()

	config.DisplayBus.Configure(machine.I2CConfig{Frequency: 400 * machine.KHz})
	// the delay is needed for display start from a cold reboot, not sure why
	time.Sleep(time.Second)
	oled := ssd1306.NewI2C(config.DisplayBus)
	cfg := ssd1306.Config{Width: config.DisplayWidth, Height: config.DisplayHeight, Address: config.DisplayAddress, VccState: ssd1306.SWITCHCAPVCC}
	oled.Configure(cfg)
	oled.ClearDisplay()

	screen := display.NewScreen(&oled)
	dashboard := display.NewDashboard(screen, cal)
	screen.DrawString(fmt.Sprintf("sonar %0.1f C", celsius), 0, 0)
	if err := screen.Flush(); err != nil {
		println("Display: " + err.Error())
	}

	machine.Watchdog.Configure(machine.WatchdogConfig{
		TimeoutMillis: 3000,
	})
	machine.Watchdog.Start()

	go runUI(runButtons())

	history := make([]float64, 0, cal.HistorySize)
	ticker := time.NewTicker(time.Millisecond * 10)
	lastReset := time.Now()
	lastShot := time.Now()
	lastCompensation := time.Now()
	for now := range ticker.C {
		if ranger.Poll() {
			config.TEST.High()
			reading := ranger.Last()
			history = ranger.History().Snapshot(history[:0])
			if err := dashboard.Render(reading, history, now); err != nil {
				println("Display: " + err.Error())
			}
			if reading.Valid {
				println(fmt.Sprintf("RANGE %0.2f cm", reading.Cm))
			} else {
				println("RANGE ! " + reading.Err.Error())
			}
			config.TEST.Low()
		}
		if _, err := dashboard.Expire(now); err != nil {
			println("Display: " + err.Error())
		}

		if iv := interval(); iv > 0 && now.Sub(lastShot) >= iv {
			ranger.Request()
			lastShot = now
		}
		if now.Sub(lastCompensation) > time.Second*5 {
			compensate()
			lastCompensation = now
		}
		if now.Sub(lastReset) > time.Second*210 {
			oled.Configure(cfg)
			time.Sleep(time.Millisecond * 100)
			lastReset = now
		}
		machine.Watchdog.Update()
	}
}
