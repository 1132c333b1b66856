package psu

import "codeberg.org/mutker/psumon/internal/errors"

// Rail labels in the order the firmware numbers its channels. The firmware
// reports the second 12V rail before the first: +12V2 sits on channel 1,
// next to V_AC, and +12V1 on channel 2. The ordering is a fixed artifact of
// the protocol, not a defect.
var (
	voltageLabels     = []string{"V_AC", "+12V2", "+12V1", "+5V", "+3.3V"}
	currentLabels     = []string{"I_AC", "I_+12V2", "I_+12V1", "I_+5V", "I_+3.3V"}
	powerLabels       = []string{"P_in", "P_out"}
	temperatureLabels = []string{"Temp1", "Temp2"}
	fanLabels         = []string{"Fan"}
)

// Single-rail units gang both 12V rails together and report the combined
// rail on the +12V2 position.
const (
	aliasedRailChannel = 1
	singleRail12V      = "+12V"
	singleRailI12V     = "I_+12V"
)

func labelsForKind(kind Kind) []string {
	switch kind {
	case Voltage:
		return voltageLabels
	case Current:
		return currentLabels
	case Power:
		return powerLabels
	case Temperature:
		return temperatureLabels
	case Fan:
		return fanLabels
	default:
		return nil
	}
}

func labelCount(kind Kind) int {
	return len(labelsForKind(kind))
}

// LabelTable is the static (kind, channel) to display-string mapping. It is
// fixed at startup and never mutated.
type LabelTable struct {
	cfg Config
}

func NewLabelTable(cfg Config) *LabelTable {
	return &LabelTable{cfg: cfg}
}

// Label returns the display string for the channel or ErrUnsupportedChannel
// when the index is outside the configured count. There is no other failure
// path.
func (t *LabelTable) Label(kind Kind, channel int) (string, error) {
	if channel < 0 || channel >= t.cfg.Channels(kind) {
		return "", errors.New().New(ErrUnsupportedChannel)
	}

	if t.cfg.SingleRail && channel == aliasedRailChannel {
		switch kind {
		case Voltage:
			return singleRail12V, nil
		case Current:
			return singleRailI12V, nil
		}
	}

	return labelsForKind(kind)[channel], nil
}
