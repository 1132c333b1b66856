package history

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"codeberg.org/mutker/psumon/internal/errors"
	"codeberg.org/mutker/psumon/internal/logger"

	_ "github.com/mattn/go-sqlite3"
)

type repository struct {
	db            *sql.DB
	cfg           Config
	mu            sync.Mutex
	buffer        []Sample
	flushTicker   *time.Ticker
	shutdownChan  chan struct{}
	flushDoneChan chan struct{}
}

// NewRepository opens (creating if needed) the sqlite readings store and
// starts the background flusher.
func NewRepository(cfg Config) (Recorder, error) {
	errFactory := errors.New()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Debug().Msgf("Initializing history repository at: %s", cfg.DBPath)

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), defaultDirPerm); err != nil {
		return nil, errFactory.Wrap(ErrStorageInit, err)
	}

	dsn := cfg.DBPath + "?_journal=WAL&_auto_vacuum=2"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errFactory.Wrap(ErrStorageInit, err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, errFactory.Wrap(ErrStorageInit, err)
	}

	repo := &repository{
		db:            db,
		cfg:           cfg,
		buffer:        make([]Sample, 0, cfg.BatchSize),
		flushTicker:   time.NewTicker(time.Duration(cfg.BatchTimeout) * time.Second),
		shutdownChan:  make(chan struct{}),
		flushDoneChan: make(chan struct{}),
	}
	go repo.flusher()

	return repo, nil
}

func (r *repository) Record(ctx context.Context, samples []Sample) error {
	errFactory := errors.New()

	select {
	case <-ctx.Done():
		return errFactory.Wrap(ErrOperationTimeout, ctx.Err())
	default:
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.buffer = append(r.buffer, samples...)

	if len(r.buffer) >= r.cfg.BatchSize {
		return r.flush()
	}

	return nil
}

func (r *repository) Close() error {
	errFactory := errors.New()

	// Signal the flusher to stop and wait for its final flush.
	close(r.shutdownChan)
	r.flushTicker.Stop()
	<-r.flushDoneChan

	if _, err := r.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		return errFactory.Wrap(ErrStorageClose, err)
	}

	if err := r.db.Close(); err != nil {
		return errFactory.Wrap(ErrStorageClose, err)
	}

	logger.Debug().Msg("History repository closed")

	return nil
}

func (r *repository) flusher() {
	defer close(r.flushDoneChan)

	for {
		select {
		case <-r.flushTicker.C:
			r.mu.Lock()
			if err := r.flush(); err != nil {
				logger.Error().Err(err).Msg("Failed to flush readings")
			}
			r.mu.Unlock()
		case <-r.shutdownChan:
			r.mu.Lock()
			if err := r.flush(); err != nil {
				logger.Error().Err(err).Msg("Failed to flush readings on shutdown")
			}
			r.mu.Unlock()

			return
		}
	}
}

// flush writes the buffer in one transaction. Caller holds r.mu.
func (r *repository) flush() error {
	if len(r.buffer) == 0 {
		return nil
	}

	errFactory := errors.New()

	tx, err := r.db.Begin()
	if err != nil {
		return errFactory.Wrap(ErrTransactionFailed, err)
	}

	stmt, err := tx.Prepare(insertSampleSQL())
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error().Err(rbErr).Msg("Failed to roll back transaction")
		}

		return errFactory.Wrap(ErrTransactionFailed, err)
	}
	defer stmt.Close()

	for _, sample := range r.buffer {
		if _, err := stmt.Exec(sample.Timestamp.Unix(), sample.Kind, sample.Channel, sample.Value); err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logger.Error().Err(rbErr).Msg("Failed to roll back transaction")
			}

			return errFactory.Wrap(ErrTransactionFailed, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errFactory.Wrap(ErrTransactionFailed, err)
	}

	logger.Debug().Int("records", len(r.buffer)).Msg("Flushed readings to database")
	r.buffer = r.buffer[:0]

	return nil
}
