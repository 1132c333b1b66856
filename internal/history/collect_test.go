package history_test

import (
	"testing"
	"time"

	"codeberg.org/mutker/psumon/internal/history"
	"codeberg.org/mutker/psumon/internal/psu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectSkipsUnknownChannels(t *testing.T) {
	decoder, err := psu.NewDecoder(psu.DefaultConfig())
	require.NoError(t, err)

	require.True(t, decoder.Decode([]byte("[V1226.2]")))
	require.True(t, decoder.Decode([]byte("[R1900]")))

	now := time.Unix(1700000000, 0)
	samples := history.Collect(now, decoder)

	want := []history.Sample{
		{Timestamp: now, Kind: "voltage", Channel: 0, Value: 226200},
		{Timestamp: now, Kind: "fan", Channel: 0, Value: 900},
	}
	assert.Equal(t, want, samples)
}

func TestCollectEmptyBeforeFirstDecode(t *testing.T) {
	decoder, err := psu.NewDecoder(psu.DefaultConfig())
	require.NoError(t, err)

	assert.Empty(t, history.Collect(time.Now(), decoder))
}

func TestCollectIncludesPowerPair(t *testing.T) {
	decoder, err := psu.NewDecoder(psu.DefaultConfig())
	require.NoError(t, err)

	require.True(t, decoder.Decode([]byte("[P2145.0/137.0]")))

	samples := history.Collect(time.Unix(0, 0), decoder)
	require.Len(t, samples, 2)
	assert.Equal(t, "power", samples[0].Kind)
	assert.Equal(t, int64(145000000), samples[0].Value)
	assert.Equal(t, int64(137000000), samples[1].Value)
}
