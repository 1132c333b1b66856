package psu_test

import (
	"testing"

	"codeberg.org/mutker/psumon/internal/psu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelOrdering(t *testing.T) {
	labels := psu.NewLabelTable(psu.DefaultConfig())

	// The firmware reports +12V2 before +12V1; the table must preserve
	// that ordering as-is.
	want := []string{"V_AC", "+12V2", "+12V1", "+5V", "+3.3V"}
	for channel, expected := range want {
		label, err := labels.Label(psu.Voltage, channel)
		require.NoError(t, err)
		assert.Equal(t, expected, label)
	}

	wantCurrent := []string{"I_AC", "I_+12V2", "I_+12V1", "I_+5V", "I_+3.3V"}
	for channel, expected := range wantCurrent {
		label, err := labels.Label(psu.Current, channel)
		require.NoError(t, err)
		assert.Equal(t, expected, label)
	}
}

func TestLabelPowerAndAuxiliary(t *testing.T) {
	labels := psu.NewLabelTable(psu.DefaultConfig())

	in, err := labels.Label(psu.Power, 0)
	require.NoError(t, err)
	assert.Equal(t, "P_in", in)

	out, err := labels.Label(psu.Power, 1)
	require.NoError(t, err)
	assert.Equal(t, "P_out", out)

	fan, err := labels.Label(psu.Fan, 0)
	require.NoError(t, err)
	assert.Equal(t, "Fan", fan)
}

func TestLabelSingleRailAlias(t *testing.T) {
	cfg := psu.DefaultConfig()
	cfg.SingleRail = true
	labels := psu.NewLabelTable(cfg)

	label, err := labels.Label(psu.Voltage, 1)
	require.NoError(t, err)
	assert.Equal(t, "+12V", label)

	label, err = labels.Label(psu.Current, 1)
	require.NoError(t, err)
	assert.Equal(t, "I_+12V", label)

	// Other channels keep their dual-rail names.
	label, err = labels.Label(psu.Voltage, 2)
	require.NoError(t, err)
	assert.Equal(t, "+12V1", label)

	// The alias never leaks into non-rail kinds.
	label, err = labels.Label(psu.Temperature, 1)
	require.NoError(t, err)
	assert.Equal(t, "Temp2", label)
}

func TestLabelUnsupportedChannel(t *testing.T) {
	labels := psu.NewLabelTable(psu.DefaultConfig())

	_, err := labels.Label(psu.Voltage, 5)
	assert.True(t, psu.IsUnsupportedChannel(err))

	_, err = labels.Label(psu.Fan, -1)
	assert.True(t, psu.IsUnsupportedChannel(err))
}
