package psu

import "codeberg.org/mutker/psumon/internal/errors"

// Channel counts of the reference hardware. Other units speaking the same
// protocol may expose fewer rails, so the counts are configuration rather
// than compile-time constants.
const (
	DefaultVoltageChannels     = 5
	DefaultCurrentChannels     = 5
	DefaultPowerChannels       = 2
	DefaultTemperatureChannels = 2
	DefaultFanChannels         = 1

	// A frame needs at least the opening bracket, a type tag, a channel
	// digit, one value byte and the terminator. The maximum bounds the
	// parsing work done on garbage input.
	DefaultMinFrameLen = 5
	DefaultMaxFrameLen = 64

	minimumFrameLen = 5
)

type Config struct {
	VoltageChannels     int
	CurrentChannels     int
	PowerChannels       int
	TemperatureChannels int
	FanChannels         int
	MinFrameLen         int
	MaxFrameLen         int

	// SingleRail selects the label set of units that gang both 12V rails
	// into one. It does not change decoding.
	SingleRail bool
}

func DefaultConfig() Config {
	return Config{
		VoltageChannels:     DefaultVoltageChannels,
		CurrentChannels:     DefaultCurrentChannels,
		PowerChannels:       DefaultPowerChannels,
		TemperatureChannels: DefaultTemperatureChannels,
		FanChannels:         DefaultFanChannels,
		MinFrameLen:         DefaultMinFrameLen,
		MaxFrameLen:         DefaultMaxFrameLen,
	}
}

// Channels returns the configured slot count for a measurement kind.
func (c Config) Channels(kind Kind) int {
	switch kind {
	case Voltage:
		return c.VoltageChannels
	case Current:
		return c.CurrentChannels
	case Power:
		return c.PowerChannels
	case Temperature:
		return c.TemperatureChannels
	case Fan:
		return c.FanChannels
	default:
		return 0
	}
}

func (c Config) Validate() error {
	errFactory := errors.New()

	for _, kind := range Kinds() {
		count := c.Channels(kind)
		if count < 1 {
			return errFactory.WithData(ErrInvalidChannelCount, kind.String())
		}
		if count > labelCount(kind) {
			return errFactory.WithData(ErrInvalidChannelCount, kind.String())
		}
	}

	// The decoder writes the power slots only as an input/output pair.
	if c.PowerChannels != DefaultPowerChannels {
		return errFactory.WithData(ErrInvalidChannelCount, Power.String())
	}

	if c.MinFrameLen < minimumFrameLen || c.MaxFrameLen < c.MinFrameLen {
		return errFactory.WithData(ErrInvalidFrameBounds, struct {
			Min, Max int
		}{c.MinFrameLen, c.MaxFrameLen})
	}

	return nil
}
