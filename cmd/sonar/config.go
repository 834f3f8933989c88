package main

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/itohio/sonar/config"
)

// loadCalibration reads path over the defaults. An empty path keeps the
// defaults.
func loadCalibration(path string) (config.Calibration, error) {
	cal := config.DefaultCalibration()
	if path == "" {
		return cal, nil
	}
	md, err := toml.DecodeFile(path, &cal)
	if err != nil {
		return cal, fmt.Errorf("calibration %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cal, fmt.Errorf("calibration %s: unknown keys %v", path, undecoded)
	}
	return cal, nil
}
