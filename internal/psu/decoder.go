package psu

// Wire type tags as emitted by the supply. 'R' carries fan speed, matching
// the device firmware rather than the kind name.
const (
	tagVoltage     = 'V'
	tagCurrent     = 'I'
	tagPower       = 'P'
	tagTemperature = 'T'
	tagFan         = 'R'
)

// combinedPowerChannel is the only power channel carrying decodable data:
// wire channel '2' holds the input/output watt pair. Wire channel '1'
// carries an undocumented value (possibly power factor) and is dropped
// rather than guessed at.
const combinedPowerChannel = 1

func kindForTag(tag byte) (Kind, bool) {
	switch tag {
	case tagVoltage:
		return Voltage, true
	case tagCurrent:
		return Current, true
	case tagPower:
		return Power, true
	case tagTemperature:
		return Temperature, true
	case tagFan:
		return Fan, true
	default:
		return 0, false
	}
}

// Decoder validates raw frames from the transport and applies decoded
// readings to its sensor cache. It implements Source for exposure layers.
type Decoder struct {
	cfg    Config
	cache  *Cache
	labels *LabelTable
}

func NewDecoder(cfg Config) (*Decoder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Decoder{
		cfg:    cfg,
		cache:  NewCache(cfg),
		labels: NewLabelTable(cfg),
	}, nil
}

// Decode consumes one frame as delivered by the transport and returns
// whether any cache slot was updated. Malformed or unrecognized frames are
// dropped without side effects and without surfacing an error: the supply
// streams readings on its own cadence, so a bad frame is noise and the next
// one self-heals any staleness.
func (d *Decoder) Decode(frame []byte) bool {
	n := len(frame)
	if n < d.cfg.MinFrameLen || n > d.cfg.MaxFrameLen {
		return false
	}

	// The terminator normally sits in the last byte. The two-value power
	// frame can outgrow the fixed report size, in which case the report
	// ends on the field separator and the real terminator sits inside the
	// consumed region; the field parser still has to find it there.
	if last := frame[n-1]; last != frameClose && last != fieldSep {
		return false
	}

	if frame[0] != frameOpen {
		return false
	}

	kind, ok := kindForTag(frame[1])
	if !ok {
		return false
	}

	// The device numbers channels from 1.
	if frame[2] < '1' || frame[2] > '9' {
		return false
	}
	channel := int(frame[2] - '1')

	if kind == Power {
		return d.decodePowerPair(frame, channel)
	}

	if channel >= d.cfg.Channels(kind) {
		return false
	}

	value, _, ok := parseField(frame, 3, kind.fracDigits(), false)
	if !ok {
		return false
	}
	d.cache.store(kind, channel, value)

	return true
}

// decodePowerPair handles the one frame shape carrying two values. Both
// fields must parse before either slot is touched; a failure half-way leaves
// the cache exactly as it was.
func (d *Decoder) decodePowerPair(frame []byte, channel int) bool {
	if channel != combinedPowerChannel {
		return false
	}

	in, pos, ok := parseField(frame, 3, Power.fracDigits(), true)
	if !ok || frame[pos] != fieldSep {
		return false
	}

	out, _, ok := parseField(frame, pos+1, Power.fracDigits(), false)
	if !ok {
		return false
	}

	d.cache.storePower(in, out)

	return true
}

// Visible implements Source.
func (d *Decoder) Visible(kind Kind, channel int) bool {
	return d.cache.Visible(kind, channel)
}

// Value implements Source.
func (d *Decoder) Value(kind Kind, channel int) (int64, error) {
	return d.cache.Value(kind, channel)
}

// Label implements Source.
func (d *Decoder) Label(kind Kind, channel int) (string, error) {
	return d.labels.Label(kind, channel)
}

// Snapshot returns every known reading, see Cache.Snapshot.
func (d *Decoder) Snapshot() []Reading {
	return d.cache.Snapshot()
}
