package main

import (
	"github.com/spf13/cobra"

	"github.com/itohio/sonar/host"
)

var (
	simOpts = struct {
		distance float64
	}{}

	simCmd = &cobra.Command{
		Use:   "sim",
		Short: "Range against a simulated sensor",
		Long:  "Range against a simulated HC-SR04. A negative distance simulates a missing echo.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cal, err := loadCalibration(configPath)
			if err != nil {
				return err
			}
			speed := speedOfSound(cmd, cal)
			sensor := host.NewSimulatedSensor(speed, simOpts.distance)
			s, err := host.NewSimulated(sensor, cal, log)
			if err != nil {
				return err
			}
			return rangeWith(cmd.Context(), s, cal, speed)
		},
	}
)

func init() {
	simCmd.Flags().Float64VarP(&simOpts.distance, "distance", "d", 100, "distance to the simulated object in cm")
}
