package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/itohio/sonar/config"
	"github.com/itohio/sonar/host"
	"github.com/itohio/sonar/ranging"
)

var rangingOpts = struct {
	interval time.Duration
	count    int
	celsius  float64
	broker   string
	topic    string
}{}

func addRangingFlags(cmd *cobra.Command) {
	cmd.Flags().DurationVarP(&rangingOpts.interval, "interval", "i", time.Second, "trigger period, at least 60ms")
	cmd.Flags().IntVarP(&rangingOpts.count, "count", "n", 0, "stop after this many readings, 0 runs until interrupted")
	cmd.Flags().Float64Var(&rangingOpts.celsius, "celsius", 20, "air temperature for speed of sound compensation, unset keeps the calibration")
	cmd.Flags().StringVar(&rangingOpts.broker, "mqtt-broker", "", "publish readings to this MQTT broker, e.g. tcp://localhost:1883")
	cmd.Flags().StringVar(&rangingOpts.topic, "topic", "sonar/range", "MQTT topic")
}

// speedOfSound returns the calibrated speed of sound, compensated for the
// air temperature when --celsius is given.
func speedOfSound(cmd *cobra.Command, cal config.Calibration) float64 {
	if cmd.Flags().Changed("celsius") {
		return ranging.SpeedOfSoundAt(rangingOpts.celsius)
	}
	return cal.SpeedOfSound
}

// rangeWith runs s until the context is done or count readings were taken.
func rangeWith(ctx context.Context, s *host.Sonar, cal config.Calibration, speed float64) error {
	if speed != cal.SpeedOfSound {
		if err := s.Ranger.SetSpeedOfSound(speed); err != nil {
			return err
		}
		log.Info("compensated", "speed_of_sound", speed)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var published chan ranging.Reading
	if rangingOpts.broker != "" {
		pub, err := host.NewPublisher(rangingOpts.broker, rangingOpts.topic, log)
		if err != nil {
			return err
		}
		published = make(chan ranging.Reading, cal.HistorySize)
		done := make(chan struct{})
		go func() {
			defer close(done)
			pub.Run(published)
		}()
		defer func() {
			close(published)
			<-done
			pub.Close()
		}()
	}

	history := make([]float64, 0, cal.HistorySize)
	n := 0
	s.Ranger.SetCallback(func(r ranging.Reading) {
		if r.Valid {
			log.Info("range", "cm", r.Cm, "in", r.Inches(), "ticks", r.Ticks)
		} else {
			log.Warn("range", "err", r.Err, "cm", r.Cm, "ticks", r.Ticks)
		}
		history = s.Ranger.History().Snapshot(history[:0])
		log.Debug("history", "cm", history, "stats", s.Ranger.Stats())

		if published != nil {
			select {
			case published <- r:
			default:
				log.Warn("publisher lagging, reading dropped")
			}
		}

		n++
		if rangingOpts.count > 0 && n >= rangingOpts.count {
			cancel()
		}
	})

	err := s.Run(ctx, rangingOpts.interval)
	stats := s.Ranger.Stats()
	log.Info("done",
		"triggers", stats.Triggers,
		"valid", stats.Valid,
		"timeouts", stats.Timeouts,
		"out_of_range", stats.OutOfRange,
		"rejected", stats.Rejected,
		"spurious", stats.Spurious,
		"dropped", stats.Dropped,
	)
	return err
}
