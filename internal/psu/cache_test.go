package psu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheStartsUnknown(t *testing.T) {
	cache := NewCache(DefaultConfig())

	for _, kind := range Kinds() {
		for channel := 0; channel < DefaultConfig().Channels(kind); channel++ {
			_, err := cache.Value(kind, channel)
			assert.True(t, IsNoData(err), "%s channel %d", kind, channel)
		}
	}

	assert.Empty(t, cache.Snapshot())
}

func TestCacheStoreAndOverwrite(t *testing.T) {
	cache := NewCache(DefaultConfig())

	cache.store(Voltage, 3, 5000)
	value, err := cache.Value(Voltage, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), value)

	cache.store(Voltage, 3, 5100)
	value, err = cache.Value(Voltage, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(5100), value)

	// Neighbouring slots stay untouched.
	_, err = cache.Value(Voltage, 2)
	assert.True(t, IsNoData(err))
}

func TestCacheZeroIsAKnownValue(t *testing.T) {
	cache := NewCache(DefaultConfig())

	cache.store(Fan, 0, 0)
	value, err := cache.Value(Fan, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), value)
}

func TestCachePowerPair(t *testing.T) {
	cache := NewCache(DefaultConfig())

	_, err := cache.Value(Power, 0)
	assert.True(t, IsNoData(err))

	cache.storePower(145000000, 137000000)

	in, err := cache.Value(Power, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(145000000), in)

	out, err := cache.Value(Power, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(137000000), out)
}

func TestCacheUnsupportedChannel(t *testing.T) {
	cache := NewCache(DefaultConfig())

	for _, channel := range []int{-1, DefaultVoltageChannels} {
		_, err := cache.Value(Voltage, channel)
		assert.True(t, IsUnsupportedChannel(err), "channel %d", channel)
		assert.False(t, cache.Visible(Voltage, channel))
	}

	_, err := cache.Value(Power, DefaultPowerChannels)
	assert.True(t, IsUnsupportedChannel(err))
}

func TestCacheSnapshotOrder(t *testing.T) {
	cache := NewCache(DefaultConfig())

	cache.store(Fan, 0, 900)
	cache.store(Voltage, 1, 12000)
	cache.storePower(145000000, 137000000)

	want := []Reading{
		{Kind: Voltage, Channel: 1, Value: 12000},
		{Kind: Power, Channel: 0, Value: 145000000},
		{Kind: Power, Channel: 1, Value: 137000000},
		{Kind: Fan, Channel: 0, Value: 900},
	}
	assert.Equal(t, want, cache.Snapshot())
}
