package psu

// Kind identifies one measurement kind reported by the supply.
type Kind uint8

const (
	Voltage Kind = iota
	Current
	Power
	Temperature
	Fan
)

// Kinds lists every measurement kind in display order.
func Kinds() []Kind {
	return []Kind{Voltage, Current, Power, Temperature, Fan}
}

func (k Kind) String() string {
	switch k {
	case Voltage:
		return "voltage"
	case Current:
		return "current"
	case Power:
		return "power"
	case Temperature:
		return "temperature"
	case Fan:
		return "fan"
	default:
		return "unknown"
	}
}

// fracDigits returns the number of fractional digits retained on decode.
// The resulting scale factor is fixed per kind for the process lifetime:
// voltage, current and temperature are stored in milli-units, power in
// micro-units (the watt pair uses a larger implicit unit on the wire),
// fan speed in whole RPM.
func (k Kind) fracDigits() int {
	switch k {
	case Voltage, Current, Temperature:
		return 3
	case Power:
		return 6
	default:
		return 0
	}
}

// Reading is one decoded (kind, channel, scaled value) triple.
type Reading struct {
	Kind    Kind
	Channel int
	Value   int64
}

// Source is the read-only query surface handed to exposure layers.
//
// Value distinguishes two conditions: a channel inside the configured
// count that has not decoded yet reports "no data" (IsNoData), while a
// channel outside the count reports "unsupported" (IsUnsupportedChannel).
// The former is a legitimate transient state, the latter a caller bug.
type Source interface {
	// Visible reports whether the channel is exposed at all. Channels
	// never appear or disappear at runtime.
	Visible(kind Kind, channel int) bool

	// Value returns the last decoded scaled integer for the channel.
	Value(kind Kind, channel int) (int64, error)

	// Label returns the static display string for the channel.
	Label(kind Kind, channel int) (string, error)
}
