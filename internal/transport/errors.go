package transport

import "codeberg.org/mutker/psumon/internal/errors"

const (
	// Lifecycle Errors
	ErrInitFailed  = errors.ErrorCode("transport_init_failed")
	ErrOpenFailed  = errors.ErrorCode("transport_open_failed")
	ErrCloseFailed = errors.ErrorCode("transport_close_failed")

	// I/O Errors
	ErrReadFailed = errors.ErrorCode("transport_read_failed")
)
