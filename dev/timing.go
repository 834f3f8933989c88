//go:build tinygo

package dev

import (
	"device"
	"time"
	_ "unsafe"
)

//go:linkname ticks runtime.ticks
func ticks() uint64

//go:linkname ticksToNanoseconds runtime.ticksToNanoseconds
func ticksToNanoseconds(ticks uint64) int64

// WaitCalibration scales a duration into nop loop iterations: n = d * K / M.
type WaitCalibration struct {
	K, M time.Duration
}

// Default for rp2040 at 125 MHz.
var waitCalibration = WaitCalibration{K: 80339, M: 1000000}

//go:inline
func Now() time.Duration {
	return time.Duration(ticksToNanoseconds(ticks()))
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// SetWaitCalibration adjusts the nop loop so that Wait(wanted) took actual
// before the adjustment.
func SetWaitCalibration(wanted, actual time.Duration) {
	a, b := int64(actual), int64(wanted)
	if a <= 0 || b <= 0 {
		return
	}
	l := a / gcd(a, b) * b
	waitCalibration = WaitCalibration{K: time.Duration(l / a), M: time.Duration(l / b)}
}

func Calibration() WaitCalibration {
	return waitCalibration
}

// CalibrateWait measures n uncalibrated waits of d and calibrates against them.
func CalibrateWait(d time.Duration, n int) {
	SetWaitCalibration(d, BenchmarkWait(d, n))
}

// BenchmarkWait returns the mean duration of an uncalibrated Wait(d).
func BenchmarkWait(d time.Duration, n int) time.Duration {
	if n <= 0 {
		return 0
	}
	t1 := ticks()
	for i := 0; i < n; i++ {
		Wait(d)
	}
	return time.Duration(ticksToNanoseconds(ticks()-t1)) / time.Duration(n)
}

// Wait spins n nop iterations.
//
//go:inline
func Wait(n time.Duration) {
	for ; n > 0; n-- {
		device.Asm(`nop`)
	}
}

// WaitCalibrated busy-waits roughly d. Used for the trigger pulse where the
// scheduler is far too coarse.
//
//go:inline
func WaitCalibrated(d time.Duration) {
	Wait((d * waitCalibration.K) / waitCalibration.M)
}

// WaitTicks busy-waits d against the runtime clock.
func WaitTicks(d time.Duration) {
	t1 := Now()
	for Now()-t1 < d {
		device.Asm(`nop`)
	}
}
