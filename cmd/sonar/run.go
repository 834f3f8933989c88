package main

import (
	"fmt"

	"github.com/spf13/cobra"
	periph "periph.io/x/host/v3"

	"github.com/itohio/sonar/host"
)

var (
	runOpts = struct {
		echo    string
		trigger string
	}{}

	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Range with a real sensor",
		Long:  "Range with an HC-SR04 wired to GPIO pins of this board.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cal, err := loadCalibration(configPath)
			if err != nil {
				return err
			}
			if _, err := periph.Init(); err != nil {
				return fmt.Errorf("host init: %w", err)
			}
			echo, trigger, err := host.Pins(runOpts.echo, runOpts.trigger)
			if err != nil {
				return err
			}
			s, err := host.NewSonar(echo, trigger, cal, log)
			if err != nil {
				return err
			}
			defer trigger.Halt()
			return rangeWith(cmd.Context(), s, cal, speedOfSound(cmd, cal))
		},
	}
)

func init() {
	runCmd.Flags().StringVar(&runOpts.echo, "echo", "GPIO24", "echo pin name")
	runCmd.Flags().StringVar(&runOpts.trigger, "trigger", "GPIO23", "trigger pin name")
}
