package host

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
	"periph.io/x/conn/v3/gpio"

	"github.com/itohio/sonar/config"
	"github.com/itohio/sonar/ranging"
)

// MinInterval is the shortest trigger period the module tolerates.
const MinInterval = 60 * time.Millisecond

// Sonar runs a ranger against host lines, triggering it periodically.
type Sonar struct {
	Ranger *ranging.Ranger
	echo   *EchoWatcher
	log    *slog.Logger
}

// NewSonar wires a ranger to real trigger and echo lines.
func NewSonar(echo gpio.PinIn, trigger gpio.PinOut, cal config.Calibration, log *slog.Logger) (*Sonar, error) {
	line, err := NewTriggerLine(trigger, log)
	if err != nil {
		return nil, err
	}
	r, err := newRanger(line, cal)
	if err != nil {
		return nil, err
	}
	w, err := NewEchoWatcher(echo, r.HandleEcho)
	if err != nil {
		return nil, err
	}
	return &Sonar{Ranger: r, echo: w, log: log}, nil
}

// NewSimulated wires a ranger to a simulated sensor.
func NewSimulated(sim *SimulatedSensor, cal config.Calibration, log *slog.Logger) (*Sonar, error) {
	r, err := newRanger(sim, cal)
	if err != nil {
		return nil, err
	}
	sim.Attach(r.HandleEcho)
	return &Sonar{Ranger: r, log: log}, nil
}

func newRanger(pin ranging.OutputPin, cal config.Calibration) (*ranging.Ranger, error) {
	timer, err := ranging.NewTimerConfig(ClockHz, cal)
	if err != nil {
		return nil, err
	}
	pulse, err := ranging.NewPulseGenerator(pin, time.Duration(cal.TriggerWidth), Spin)
	if err != nil {
		return nil, err
	}
	return ranging.NewRanger(pulse, NewCounter(timer), NewAlarm(timer), timer, cal)
}

// Run triggers a session every interval until ctx is done. Readings reach
// the ranger callback.
func (s *Sonar) Run(ctx context.Context, interval time.Duration) error {
	if interval < MinInterval {
		interval = MinInterval
	}
	timer := s.Ranger.Timer()
	s.log.Info("ranging",
		"hz", timer.Hz(),
		"prescale", timer.Prescale,
		"window", s.Ranger.Window(),
		"interval", interval,
	)

	g, ctx := errgroup.WithContext(ctx)
	if s.echo != nil {
		g.Go(func() error {
			return s.echo.Run(ctx)
		})
	}
	g.Go(func() error {
		return s.Ranger.Run(ctx)
	})
	g.Go(func() error {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		s.Ranger.Request()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				s.Ranger.Request()
			}
		}
	})
	return g.Wait()
}
