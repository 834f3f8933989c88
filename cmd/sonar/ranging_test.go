package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/sonar/config"
	"github.com/itohio/sonar/ranging"
)

func TestSpeedOfSound(t *testing.T) {
	cal := config.DefaultCalibration()

	cmd := &cobra.Command{}
	addRangingFlags(cmd)
	require.NoError(t, cmd.ParseFlags(nil))
	assert.Equal(t, cal.SpeedOfSound, speedOfSound(cmd, cal))

	cmd = &cobra.Command{}
	addRangingFlags(cmd)
	require.NoError(t, cmd.ParseFlags([]string{"--celsius", "0"}))
	assert.Equal(t, ranging.SpeedOfSoundAt(0), speedOfSound(cmd, cal))

	cmd = &cobra.Command{}
	addRangingFlags(cmd)
	require.NoError(t, cmd.ParseFlags([]string{"--celsius", "-10.5"}))
	assert.Equal(t, ranging.SpeedOfSoundAt(-10.5), speedOfSound(cmd, cal))
}
