//go:build rp2040

package main

import (
	"machine"
	"time"

	"github.com/itohio/sonar/config"
)

type command uint8

const (
	cmdIdle command = iota
	cmdUp
	cmdDown
	cmdLongUp
	cmdLongDown
	cmdEnter
	cmdEsc
	cmdReset
)

var (
	lastEncoderValue int
	encoderValue     int
	encoderDelta     int
)

// button waits for p to be released and returns how long it was held.
func button(p machine.Pin) time.Duration {
	now := time.Now()
	time.Sleep(time.Millisecond * 10)
	for !p.Get() {
		time.Sleep(time.Millisecond)
		machine.Watchdog.Update()
	}
	return time.Since(now)
}

func runButtons() chan command {
	commands := make(chan command)

	cmd := func(c command) {
		select {
		case commands <- c:
		default:
		}
	}

	go func() {
		var (
			N int
		)
		for {
			lastEncoderValue = encoderValue
			encoderValue = encoder.Position()
			encoderDelta = (encoderValue - lastEncoderValue) / 2

			switch {
			case encoderDelta > 1:
				cmd(cmdLongUp)
			case encoderDelta < -1:
				cmd(cmdLongDown)
			case encoderDelta > 0:
				cmd(cmdUp)
			case encoderDelta < 0:
				cmd(cmdDown)
			case !config.Button.Get():
				d := button(config.Button)
				if d > time.Second {
					if d > time.Second*5 {
						cmd(cmdReset)
					}
					cmd(cmdEsc)
				} else {
					cmd(cmdEnter)
				}
			}
			time.Sleep(time.Millisecond * 10)
			if N == 0 {
				cmd(cmdIdle)
			}
			N = (N + 1) % 100
		}
	}()

	return commands
}

func runUI(commands chan command) {
	for c := range commands {
		machine.Watchdog.Update()

		switch c {
		case cmdUp:
			intervalIncrease(1)
		case cmdDown:
			intervalDecrease(1)
		case cmdLongUp:
			intervalIncrease(5)
		case cmdLongDown:
			intervalDecrease(5)
		case cmdEnter:
			// a press during a session is dropped by the ranger
			ranger.Request()
		case cmdEsc:
			autoInterval.Store(0)
		case cmdReset:
			machine.CPUReset()
		case cmdIdle:
		}
	}
}
