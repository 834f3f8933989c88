package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string

	log = slog.Default()

	rootCmd = &cobra.Command{
		Use:   "sonar",
		Short: "HC-SR04 ultrasonic ranging",
		Long:  "Range with an HC-SR04 on a Linux board, or against a simulated sensor.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var level slog.Level
			if err := level.UnmarshalText([]byte(logLevel)); err != nil {
				return err
			}
			log = slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: level}))
			slog.SetDefault(log)
			return nil
		},
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "TOML calibration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")
	addRangingFlags(runCmd)
	addRangingFlags(simCmd)
	rootCmd.AddCommand(runCmd, simCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("sonar", "err", err)
		os.Exit(1)
	}
}
