package history

import "codeberg.org/mutker/psumon/internal/errors"

const (
	defaultDirPerm = 0o755
	defaultDBPath  = "/var/lib/psumon/history.db"

	// Samples are buffered and flushed in one transaction once the batch
	// fills or the timeout fires, whichever comes first.
	defaultBatchSize    = 64
	defaultBatchTimeout = 30
)

type Config struct {
	DBPath       string
	BatchSize    int
	BatchTimeout int // seconds
}

func DefaultConfig() Config {
	return Config{
		DBPath:       defaultDBPath,
		BatchSize:    defaultBatchSize,
		BatchTimeout: defaultBatchTimeout,
	}
}

func (c Config) Validate() error {
	errFactory := errors.New()
	if c.DBPath == "" {
		return errFactory.New(ErrInvalidDBPath)
	}
	if c.BatchSize < 1 || c.BatchTimeout < 1 {
		return errFactory.New(ErrInvalidConfig)
	}

	return nil
}
