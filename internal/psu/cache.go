package psu

import (
	"sync/atomic"

	"codeberg.org/mutker/psumon/internal/errors"
)

// unknownValue marks a slot that has not seen a successful decode yet.
// Decoded values are non-negative, so the sentinel cannot collide with a
// real reading.
const unknownValue = -1

// powerPair holds the two power slots published as one immutable unit so a
// reader never observes a torn input/output update.
type powerPair struct {
	in, out int64
}

// Cache holds the last decoded value per (kind, channel). Slots transition
// unknown to known and are then only overwritten; nothing resets them short
// of reinitialization. The frame decoder is the only writer, readers may
// query concurrently.
type Cache struct {
	cfg   Config
	volts []atomic.Int64
	amps  []atomic.Int64
	temps []atomic.Int64
	fans  []atomic.Int64
	power atomic.Pointer[powerPair]
}

func NewCache(cfg Config) *Cache {
	return &Cache{
		cfg:   cfg,
		volts: newSlots(cfg.VoltageChannels),
		amps:  newSlots(cfg.CurrentChannels),
		temps: newSlots(cfg.TemperatureChannels),
		fans:  newSlots(cfg.FanChannels),
	}
}

func newSlots(count int) []atomic.Int64 {
	slots := make([]atomic.Int64, count)
	for i := range slots {
		slots[i].Store(unknownValue)
	}

	return slots
}

func (c *Cache) slots(kind Kind) []atomic.Int64 {
	switch kind {
	case Voltage:
		return c.volts
	case Current:
		return c.amps
	case Temperature:
		return c.temps
	case Fan:
		return c.fans
	default:
		return nil
	}
}

// store records one decoded single-value reading. The caller has already
// checked the channel against the configured count.
func (c *Cache) store(kind Kind, channel int, value int64) {
	c.slots(kind)[channel].Store(value)
}

// storePower publishes both power slots atomically: input on slot 0,
// output on slot 1.
func (c *Cache) storePower(in, out int64) {
	c.power.Store(&powerPair{in: in, out: out})
}

// Visible reports whether the channel falls inside the configured count
// for its kind.
func (c *Cache) Visible(kind Kind, channel int) bool {
	return channel >= 0 && channel < c.cfg.Channels(kind)
}

// Value returns the last decoded scaled integer for the channel, ErrNoData
// when the channel has not decoded yet, or ErrUnsupportedChannel when it is
// outside the configured count.
func (c *Cache) Value(kind Kind, channel int) (int64, error) {
	errFactory := errors.New()

	if !c.Visible(kind, channel) {
		return 0, errFactory.New(ErrUnsupportedChannel)
	}

	if kind == Power {
		pair := c.power.Load()
		if pair == nil {
			return 0, errFactory.New(ErrNoData)
		}
		if channel == 0 {
			return pair.in, nil
		}

		return pair.out, nil
	}

	value := c.slots(kind)[channel].Load()
	if value == unknownValue {
		return 0, errFactory.New(ErrNoData)
	}

	return value, nil
}

// Snapshot returns every known reading in kind-then-channel order. Channels
// still unknown are omitted.
func (c *Cache) Snapshot() []Reading {
	var readings []Reading
	for _, kind := range Kinds() {
		for channel := 0; channel < c.cfg.Channels(kind); channel++ {
			value, err := c.Value(kind, channel)
			if err != nil {
				continue
			}
			readings = append(readings, Reading{Kind: kind, Channel: channel, Value: value})
		}
	}

	return readings
}
