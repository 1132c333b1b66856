package psu_test

import (
	"strings"
	"testing"

	"codeberg.org/mutker/psumon/internal/psu"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDecoder(t *testing.T) *psu.Decoder {
	t.Helper()
	decoder, err := psu.NewDecoder(psu.DefaultConfig())
	require.NoError(t, err)

	return decoder
}

func TestDecodeSingleValueFrames(t *testing.T) {
	tests := []struct {
		name    string
		frame   string
		kind    psu.Kind
		channel int
		want    int64
	}{
		{"AC voltage", "[V1226.2]", psu.Voltage, 0, 226200},
		{"current last channel", "[I5007.0]", psu.Current, 4, 7000},
		{"current integer", "[I13]", psu.Current, 0, 3000},
		{"temperature", "[T245.5]", psu.Temperature, 1, 45500},
		{"fan speed unscaled", "[R1900]", psu.Fan, 0, 900},
		{"excess precision truncated", "[V212.3456]", psu.Voltage, 1, 12345},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoder := newDecoder(t)
			assert.True(t, decoder.Decode([]byte(tt.frame)))

			value, err := decoder.Value(tt.kind, tt.channel)
			require.NoError(t, err)
			assert.Equal(t, tt.want, value)
		})
	}
}

func TestDecodePowerPair(t *testing.T) {
	decoder := newDecoder(t)

	require.True(t, decoder.Decode([]byte("[P2145.0/137.0]")))

	in, err := decoder.Value(psu.Power, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(145000000), in)

	out, err := decoder.Value(psu.Power, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(137000000), out)
}

func TestDecodePowerChannelOneIgnored(t *testing.T) {
	decoder := newDecoder(t)

	// Wire channel '1' for type P is present on the wire but must never
	// touch a power slot.
	assert.False(t, decoder.Decode([]byte("[P10.98]")))

	_, err := decoder.Value(psu.Power, 0)
	assert.True(t, psu.IsNoData(err))
	_, err = decoder.Value(psu.Power, 1)
	assert.True(t, psu.IsNoData(err))
}

func TestDecodePowerFrameEndingOnSeparator(t *testing.T) {
	decoder := newDecoder(t)

	// A power frame longer than the fixed report size may end on the field
	// separator; the real terminator sits inside the frame and both values
	// must still decode.
	require.True(t, decoder.Decode([]byte("[P2145.0/137.0]/")))

	in, err := decoder.Value(psu.Power, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(145000000), in)
}

func TestDecodePowerPairAllOrNothing(t *testing.T) {
	decoder := newDecoder(t)

	require.True(t, decoder.Decode([]byte("[P2145.0/137.0]")))
	before := decoder.Snapshot()

	// Second value malformed: the first must not be applied either.
	assert.False(t, decoder.Decode([]byte("[P2999.0/x]")))
	assert.False(t, decoder.Decode([]byte("[P2999.0]")))

	if diff := cmp.Diff(before, decoder.Snapshot()); diff != "" {
		t.Errorf("cache changed on rejected power frame (-before +after):\n%s", diff)
	}
}

func TestDecodeRejectsMalformedFrames(t *testing.T) {
	decoder := newDecoder(t)

	// Seed some state so corruption would be observable.
	require.True(t, decoder.Decode([]byte("[V1226.2]")))
	require.True(t, decoder.Decode([]byte("[R1900]")))
	before := decoder.Snapshot()

	malformed := []string{
		"",
		"[V1]",            // under minimum length
		"[V1226.2",        // missing terminator
		"V1226.2]",        // missing opening bracket
		"[X1226.2]",       // unrecognized type tag
		"[V0226.2]",       // channel digit below range
		"[Vx226.2]",       // channel not a digit
		"[V6226.2]",       // channel beyond configured count
		"[V1abc]",         // non-digit value
		"[V1226.2}",       // wrong terminator
		"[T9100.0]",       // temperature channel out of range
		"[R2900]",         // fan channel out of range
		"[P3145.0/137.0]", // power channel neither 1 nor 2
		"[V1226.2]" + strings.Repeat("]", psu.DefaultMaxFrameLen), // beyond maximum length
	}

	for _, frame := range malformed {
		assert.False(t, decoder.Decode([]byte(frame)), "frame %q must be rejected", frame)
	}

	if diff := cmp.Diff(before, decoder.Snapshot()); diff != "" {
		t.Errorf("cache changed on malformed input (-before +after):\n%s", diff)
	}
}

func TestDecodeIdempotent(t *testing.T) {
	decoder := newDecoder(t)

	require.True(t, decoder.Decode([]byte("[V1226.2]")))
	once := decoder.Snapshot()

	require.True(t, decoder.Decode([]byte("[V1226.2]")))
	if diff := cmp.Diff(once, decoder.Snapshot()); diff != "" {
		t.Errorf("decoding the same frame twice changed state (-once +twice):\n%s", diff)
	}
}

func TestDecodeOverwritesKnownValue(t *testing.T) {
	decoder := newDecoder(t)

	require.True(t, decoder.Decode([]byte("[V1226.2]")))
	require.True(t, decoder.Decode([]byte("[V1230.4]")))

	value, err := decoder.Value(psu.Voltage, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(230400), value)
}

func TestUnknownUntilSeen(t *testing.T) {
	decoder := newDecoder(t)
	cfg := psu.DefaultConfig()

	for _, kind := range psu.Kinds() {
		for channel := 0; channel < cfg.Channels(kind); channel++ {
			_, err := decoder.Value(kind, channel)
			assert.True(t, psu.IsNoData(err), "%s channel %d must start unknown", kind, channel)
		}
	}

	require.True(t, decoder.Decode([]byte("[V1226.2]")))
	_, err := decoder.Value(psu.Voltage, 0)
	assert.NoError(t, err)
}

func TestValueDistinguishesUnsupportedFromNoData(t *testing.T) {
	decoder := newDecoder(t)

	_, err := decoder.Value(psu.Voltage, 0)
	assert.True(t, psu.IsNoData(err))
	assert.False(t, psu.IsUnsupportedChannel(err))

	_, err = decoder.Value(psu.Voltage, 5)
	assert.True(t, psu.IsUnsupportedChannel(err))
	assert.False(t, psu.IsNoData(err))

	assert.True(t, decoder.Visible(psu.Voltage, 4))
	assert.False(t, decoder.Visible(psu.Voltage, 5))
	assert.False(t, decoder.Visible(psu.Fan, -1))
}
