package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codeberg.org/mutker/psumon/internal/config"
	"codeberg.org/mutker/psumon/internal/errors"
	"codeberg.org/mutker/psumon/internal/history"
	"codeberg.org/mutker/psumon/internal/logger"
	"codeberg.org/mutker/psumon/internal/pid"
	"codeberg.org/mutker/psumon/internal/psu"
	"codeberg.org/mutker/psumon/internal/transport"
)

var (
	cfg      *config.Config
	decoder  *psu.Decoder
	device   *transport.Device
	recorder history.Recorder
)

func init() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Debug, cfg.Verbose, logger.IsService())
	logger.Debug().Msg("Config loaded")
}

func main() {
	if err := pid.Write(); err != nil {
		logger.Fatal().Err(err).Msg("failed to write PID file")
	}

	var err error
	decoder, err = psu.NewDecoder(cfg.Sensor())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize decoder")
	}

	device, err = transport.Open(cfg.Transport())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open power supply")
	}

	if cfg.History {
		recorder, err = history.NewRepository(cfg.HistoryStore())
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize history storage")
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go handleSignals(cancel)

	readErr := make(chan error, 1)
	go func() {
		readErr <- device.Run(ctx, func(frame []byte) {
			decoder.Decode(frame)
		})
	}()

	if err := loop(ctx, readErr); err != nil {
		logger.Error().Err(err).Msg("error in main loop")
	}
	cleanup()
}

func loop(ctx context.Context, readErr <-chan error) error {
	if cfg.Interval <= 0 {
		return errors.New().WithData(errors.ErrInvalidInterval, cfg.Interval)
	}

	ticker := time.NewTicker(time.Duration(cfg.Interval) * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-readErr:
			return err
		case <-ticker.C:
			logReadings()

			if recorder != nil {
				samples := history.Collect(time.Now(), decoder)
				if err := recorder.Record(ctx, samples); err != nil {
					logger.Error().Err(err).Msg("failed to record readings")
				}
			}
		}
	}
}

func handleSignals(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	logger.Info().Msg("Received termination signal.")
	cancel()
}

func cleanup() {
	if recorder != nil {
		if err := recorder.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close history storage")
		}
	}
	if err := device.Close(); err != nil {
		logger.Error().Err(err).Msg("failed to close power supply")
	}
	if err := pid.Remove(); err != nil {
		logger.Error().Err(err).Msg("failed to remove PID file")
	}
	logger.Info().Msg("Exiting...")
}

// logReadings emits one status line with every exposed channel, rendering
// channels that have not decoded yet as "n/a" rather than zero.
func logReadings() {
	event := logger.Info()
	for _, kind := range psu.Kinds() {
		for channel := 0; decoder.Visible(kind, channel); channel++ {
			label, err := decoder.Label(kind, channel)
			if err != nil {
				continue
			}

			value, err := decoder.Value(kind, channel)
			if err != nil {
				event.Str(label, "n/a")
				continue
			}
			event.Int64(label, value)
		}
	}
	event.Msg("")
}
