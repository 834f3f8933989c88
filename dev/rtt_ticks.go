//go:build tinygo && !rp2040

package dev

import (
	"runtime/volatile"

	"github.com/itohio/sonar/ranging"
)

// RTTHz is the rate of the runtime clock in nanoseconds.
const RTTHz = 1_000_000_000

// RTT is the elapsed-time counter on top of the runtime tick source.
type RTT struct {
	base     uint64
	prescale uint32
}

func NewRTT() *RTT {
	return &RTT{prescale: 1}
}

func (c *RTT) Configure(cfg ranging.TimerConfig) {
	p := cfg.Prescale
	if p == 0 {
		p = 1
	}
	volatile.StoreUint32(&c.prescale, p)
}

//go:noinline
func (c *RTT) Restart() {
	volatile.StoreUint64(&c.base, ticks())
}

func (c *RTT) Ticks() uint32 {
	ns := ticksToNanoseconds(ticks() - volatile.LoadUint64(&c.base))
	return uint32(uint64(ns) / uint64(volatile.LoadUint32(&c.prescale)))
}
