//go:build tinygo

package dev

import (
	"sync/atomic"
	"time"

	"github.com/itohio/sonar/ranging"
)

// Alarm is a one-shot countdown on a goroutine. Cancel and re-Arm invalidate
// the pending countdown.
type Alarm struct {
	cfg ranging.TimerConfig
	gen atomic.Uint32
}

func (a *Alarm) Configure(cfg ranging.TimerConfig) {
	a.cfg = cfg
}

func (a *Alarm) Arm(ticks uint32, fire func()) {
	gen := a.gen.Add(1)
	d := a.cfg.Duration(ticks)
	go func() {
		time.Sleep(d)
		if a.gen.Load() == gen {
			fire()
		}
	}()
}

func (a *Alarm) Cancel() {
	a.gen.Add(1)
}
