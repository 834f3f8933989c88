//go:build rp2040

package dev

import (
	"runtime/volatile"
	"unsafe"

	"github.com/itohio/sonar/ranging"
)

// RTTHz is the rate of the RP2040 raw timer.
const RTTHz = 1_000_000

const (
	timerBase     = 0x40054000
	timerTimeRawL = timerBase + 0x28 // Raw read from lower 32b, no latching
)

var timerRawL = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTimeRawL)))

// RTT is the elapsed-time counter on top of the RP2040 microsecond timer.
// Only the low 32 bits are used; wrap around is harmless for echo widths.
type RTT struct {
	base     uint32
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
	volatile.StoreUint32(&c.base, timerRawL.Get())
}

func (c *RTT) Ticks() uint32 {
	return (timerRawL.Get() - volatile.LoadUint32(&c.base)) / volatile.LoadUint32(&c.prescale)
}
