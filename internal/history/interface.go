package history

import (
	"context"
	"time"
)

// Sample is one persisted sensor reading.
type Sample struct {
	Timestamp time.Time
	Kind      string
	Channel   int
	Value     int64
}

// Recorder defines the core domain interface for readings persistence.
type Recorder interface {
	Record(ctx context.Context, samples []Sample) error
	Close() error
}
