package history

import (
	"time"

	"codeberg.org/mutker/psumon/internal/psu"
)

// Collect snapshots every channel with a known value into samples stamped
// with now. Channels still waiting for their first decode are skipped, not
// recorded as zero.
func Collect(now time.Time, src psu.Source) []Sample {
	var samples []Sample
	for _, kind := range psu.Kinds() {
		for channel := 0; src.Visible(kind, channel); channel++ {
			value, err := src.Value(kind, channel)
			if err != nil {
				continue
			}
			samples = append(samples, Sample{
				Timestamp: now,
				Kind:      kind.String(),
				Channel:   channel,
				Value:     value,
			})
		}
	}

	return samples
}
