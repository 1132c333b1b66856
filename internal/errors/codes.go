package errors

// Common error codes
const (
	// System errors
	ErrInternal        ErrorCode = "internal_error"
	ErrInvalidArgument ErrorCode = "invalid_argument"
	ErrNotImplemented  ErrorCode = "not_implemented"
	ErrUnavailable     ErrorCode = "service_unavailable"

	// Configuration errors
	ErrInvalidConfig   ErrorCode = "invalid_configuration"
	ErrMissingConfig   ErrorCode = "missing_configuration"
	ErrBindFlags       ErrorCode = "bind_flags_failed"
	ErrReadConfig      ErrorCode = "read_config_failed"
	ErrInvalidInterval ErrorCode = "invalid_interval"

	// Logging errors
	ErrInvalidLogLevel ErrorCode = "invalid_log_level"

	// Initialization errors
	ErrInitFailed     ErrorCode = "initialization_failed"
	ErrShutdownFailed ErrorCode = "shutdown_failed"
	ErrAlreadyRunning ErrorCode = "already_running"

	// Application errors
	ErrInitApp      ErrorCode = "init_app_failed"
	ErrMainLoop     ErrorCode = "main_loop_failed"
	ErrOpenDevice   ErrorCode = "open_device_failed"
	ErrCloseDevice  ErrorCode = "close_device_failed"
	ErrInitHistory  ErrorCode = "init_history_failed"
	ErrCloseHistory ErrorCode = "close_history_failed"

	// Operation errors
	ErrOperationFailed  ErrorCode = "operation_failed"
	ErrTimeout          ErrorCode = "operation_timeout"
	ErrInvalidOperation ErrorCode = "invalid_operation"
)

// Common error messages
var errorMessages = map[ErrorCode]string{
	ErrInternal:         "Internal error occurred",
	ErrInvalidArgument:  "Invalid argument provided",
	ErrNotImplemented:   "Operation not implemented",
	ErrUnavailable:      "Service unavailable",
	ErrInvalidConfig:    "Invalid configuration",
	ErrMissingConfig:    "Missing configuration",
	ErrBindFlags:        "Failed to bind flags",
	ErrReadConfig:       "Failed to read configuration",
	ErrInvalidInterval:  "Invalid interval value",
	ErrInvalidLogLevel:  "Invalid log level",
	ErrInitFailed:       "Initialization failed",
	ErrShutdownFailed:   "Shutdown failed",
	ErrAlreadyRunning:   "Another instance is already running",
	ErrInitApp:          "Failed to initialize application",
	ErrMainLoop:         "Error in main loop",
	ErrOpenDevice:       "Failed to open device",
	ErrCloseDevice:      "Failed to close device",
	ErrInitHistory:      "Failed to initialize history storage",
	ErrCloseHistory:     "Failed to close history storage",
	ErrOperationFailed:  "Operation failed",
	ErrTimeout:          "Operation timed out",
	ErrInvalidOperation: "Invalid operation",
}

// GetErrorMessage returns the message for a given error code
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}

	return string(code)
}
