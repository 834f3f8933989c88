package host

import (
	"sync"
	"time"
)

// DefaultLatency is how long the module takes from the trigger falling edge
// to raising echo, roughly the 8 cycle 40 kHz burst.
const DefaultLatency = 200 * time.Microsecond

// SimulatedSensor behaves like an HC-SR04 in front of an object. It is used
// as the trigger pin and answers on the attached echo handler.
type SimulatedSensor struct {
	mu       sync.Mutex
	speed    float64
	distance float64
	latency  time.Duration
	echo     func(high bool)
	high     bool
	pulses   int
}

// NewSimulatedSensor creates a sensor with the object at distance cm.
func NewSimulatedSensor(speedOfSound, distance float64) *SimulatedSensor {
	return &SimulatedSensor{
		speed:    speedOfSound,
		distance: distance,
		latency:  DefaultLatency,
	}
}

// Attach sets the echo line handler, usually Ranger.HandleEcho.
func (s *SimulatedSensor) Attach(echo func(high bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.echo = echo
}

// SetDistance moves the object. A negative distance means nothing reflects
// and the echo never rises.
func (s *SimulatedSensor) SetDistance(cm float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.distance = cm
}

func (s *SimulatedSensor) Distance() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.distance
}

// Pulses returns the number of trigger pulses seen.
func (s *SimulatedSensor) Pulses() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pulses
}

func (s *SimulatedSensor) High() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.high = true
}

// Low ends the trigger pulse and starts the burst.
func (s *SimulatedSensor) Low() {
	s.mu.Lock()
	if !s.high {
		s.mu.Unlock()
		return
	}
	s.high = false
	s.pulses++
	distance, echo, latency := s.distance, s.echo, s.latency
	s.mu.Unlock()

	if distance < 0 || echo == nil || s.speed <= 0 {
		return
	}
	flight := time.Duration(2 * distance / s.speed * float64(time.Second))
	go func() {
		time.Sleep(latency)
		echo(true)
		time.Sleep(flight)
		echo(false)
	}()
}
