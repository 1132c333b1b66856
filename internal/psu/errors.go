package psu

import "codeberg.org/mutker/psumon/internal/errors"

const (
	// Configuration Errors
	ErrInvalidChannelCount = errors.ErrorCode("psu_invalid_channel_count")
	ErrInvalidFrameBounds  = errors.ErrorCode("psu_invalid_frame_bounds")

	// Query Errors
	ErrNoData             = errors.ErrorCode("psu_no_data")
	ErrUnsupportedChannel = errors.ErrorCode("psu_unsupported_channel")
)

// IsNoData reports whether err means the channel exists but has not seen a
// successful decode yet.
func IsNoData(err error) bool {
	return errors.HasCode(err, ErrNoData)
}

// IsUnsupportedChannel reports whether err means the (kind, channel) pair is
// outside the configured channel count.
func IsUnsupportedChannel(err error) bool {
	return errors.HasCode(err, ErrUnsupportedChannel)
}
