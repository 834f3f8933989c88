//go:build rp2040

package main

import (
	"sync/atomic"
	"time"
)

// Automatic ranging period, zero means button only. HC-SR04 needs at least
// 60ms between cycles for the previous burst to die out.
var autoInterval atomic.Int64

const (
	minInterval = time.Millisecond * 60
	maxInterval = time.Second * 10
)

// pow10 computes 10^exp for a small non-negative exponent.
func pow10(exp time.Duration) time.Duration {
	if exp < 0 {
		return 0
	}

	result := time.Duration(1)
	for i := time.Duration(0); i < exp; i++ {
		result *= 10
	}
	return result
}

// log10 returns the largest x such that 10^x <= n.
func log10(n time.Duration) time.Duration {
	if n <= 0 {
		return 0
	}

	log := time.Duration(0)
	for n >= 10 {
		n /= 10
		log++
	}
	return log
}

// step is one unit of the second most significant digit, so the interval
// changes by roughly 10% per encoder detent.
func step(iv time.Duration) time.Duration {
	return pow10(log10(iv) - 1)
}

func interval() time.Duration {
	return time.Duration(autoInterval.Load())
}

func intervalIncrease(d int) {
	iv := interval()
	if iv == 0 {
		autoInterval.Store(int64(minInterval))
		return
	}
	iv += time.Duration(d) * step(iv)
	if iv > maxInterval {
		iv = maxInterval
	}
	autoInterval.Store(int64(iv))
}

func intervalDecrease(d int) {
	iv := interval()
	if iv == 0 {
		return
	}
	iv -= time.Duration(d) * step(iv)
	if iv < minInterval {
		iv = 0
	}
	autoInterval.Store(int64(iv))
}
