package history

import "codeberg.org/mutker/psumon/internal/errors"

const (
	// Configuration Errors
	ErrInvalidConfig = errors.ErrorCode("history_invalid_config")
	ErrInvalidDBPath = errors.ErrorCode("history_invalid_db_path")

	// Storage Errors
	ErrStorageInit       = errors.ErrorCode("history_storage_init_failed")
	ErrStorageClose      = errors.ErrorCode("history_storage_close_failed")
	ErrSchemaInitFailed  = errors.ErrorCode("history_schema_init_failed")
	ErrTransactionFailed = errors.ErrorCode("history_transaction_failed")

	// Operation Errors
	ErrOperationTimeout = errors.ErrorCode("history_operation_timeout")
)
