package pid

import (
	"os"
	"path/filepath"
	"strconv"
	"syscall"

	"codeberg.org/mutker/psumon/internal/errors"
)

const (
	pidFile = "psumon.pid"
)

// Write writes the current process ID to a PID file. It fails with
// ErrAlreadyRunning when a live process still owns the file.
func Write() error {
	errFactory := errors.New()
	pid := os.Getpid()
	path := filepath.Join(os.TempDir(), pidFile)

	if _, err := os.Stat(path); err == nil {
		bytes, err := os.ReadFile(path)
		if err != nil {
			return errFactory.Wrap(errors.ErrInternal, err)
		}

		previous, err := strconv.Atoi(string(bytes))
		if err != nil {
			return errFactory.Wrap(errors.ErrInternal, err)
		}

		process, err := os.FindProcess(previous)
		if err != nil {
			return errFactory.Wrap(errors.ErrInternal, err)
		}

		if err := process.Signal(syscall.Signal(0)); err == nil {
			return errFactory.New(errors.ErrAlreadyRunning)
		}
	}

	if err := os.WriteFile(path, []byte(strconv.Itoa(pid)), 0o600); err != nil {
		return errFactory.Wrap(errors.ErrInternal, err)
	}

	return nil
}

// Remove removes the PID file.
func Remove() error {
	errFactory := errors.New()
	path := filepath.Join(os.TempDir(), pidFile)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	if err := os.Remove(path); err != nil {
		return errFactory.Wrap(errors.ErrInternal, err)
	}

	return nil
}
