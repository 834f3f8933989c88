// Package host runs the ranger on a Linux board or fully simulated.
//
// Trigger and echo lines go through periph.io GPIO. The counter and alarm are
// built on the monotonic clock and prescaled to the same tick rate as the
// firmware, so readings match the MCU build.
package host
