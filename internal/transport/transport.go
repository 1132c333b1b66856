// Package transport delivers raw HID reports from the power supply to a
// frame handler. It owns device enumeration and the read loop; it knows
// nothing about the frame contents. There is no write path: the supply
// pushes readings unprompted and accepts no commands.
package transport

import (
	"bytes"
	"context"
	"time"

	"codeberg.org/mutker/psumon/internal/errors"
	"codeberg.org/mutker/psumon/internal/logger"
	"github.com/sstallion/go-hid"
)

// USB identity of the reference hardware.
const (
	DefaultVendorID  = 0x2516
	DefaultProductID = 0x0193
)

const (
	// Read timeout bounds how long Run blocks before rechecking its
	// context.
	readTimeout = 250 * time.Millisecond

	// Large enough for any report the device emits, including the long
	// two-value power frame.
	reportBufferSize = 64
)

// FrameHandler consumes one raw report synchronously on the read goroutine.
// It must complete without blocking and must not retain the slice; the
// buffer is reused for the next report.
type FrameHandler func(frame []byte)

type Config struct {
	VendorID  uint16
	ProductID uint16

	// Path selects an explicit hidraw device node and takes precedence
	// over VID/PID matching when set.
	Path string
}

func DefaultConfig() Config {
	return Config{
		VendorID:  DefaultVendorID,
		ProductID: DefaultProductID,
	}
}

// Device is an opened HID device streaming telemetry reports.
type Device struct {
	dev *hid.Device
}

// Open initializes the HID layer and opens the configured device.
func Open(cfg Config) (*Device, error) {
	errFactory := errors.New()

	if err := hid.Init(); err != nil {
		return nil, errFactory.Wrap(ErrInitFailed, err)
	}

	var (
		dev *hid.Device
		err error
	)
	if cfg.Path != "" {
		dev, err = hid.OpenPath(cfg.Path)
	} else {
		dev, err = hid.OpenFirst(cfg.VendorID, cfg.ProductID)
	}
	if err != nil {
		if exitErr := hid.Exit(); exitErr != nil {
			logger.Warn().Err(exitErr).Msg("Failed to release HID layer")
		}

		return nil, errFactory.Wrap(ErrOpenFailed, err)
	}

	if product, err := dev.GetProductStr(); err == nil {
		logger.Info().Str("product", product).Msg("Detected power supply")
	}

	return &Device{dev: dev}, nil
}

// Run reads reports until ctx is cancelled, handing each to handler on the
// read goroutine. Trailing NUL padding from the fixed-size report is
// stripped before the handler sees the frame.
func (d *Device) Run(ctx context.Context, handler FrameHandler) error {
	buf := make([]byte, reportBufferSize)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		n, err := d.dev.ReadWithTimeout(buf, readTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}

			return errors.New().Wrap(ErrReadFailed, err)
		}
		if n == 0 {
			// Timed out, recheck the context.
			continue
		}

		frame := bytes.TrimRight(buf[:n], "\x00")
		if len(frame) == 0 {
			continue
		}
		handler(frame)
	}
}

// Close releases the device and the HID layer.
func (d *Device) Close() error {
	errFactory := errors.New()

	if err := d.dev.Close(); err != nil {
		if exitErr := hid.Exit(); exitErr != nil {
			logger.Warn().Err(exitErr).Msg("Failed to release HID layer")
		}

		return errFactory.Wrap(ErrCloseFailed, err)
	}

	if err := hid.Exit(); err != nil {
		return errFactory.Wrap(ErrCloseFailed, err)
	}

	return nil
}
