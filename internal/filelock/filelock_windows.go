//go:build windows

package filelock

import (
	"errors"
	"os"
	"time"

	"golang.org/x/sys/windows"
)

// retryInterval paces polling while another handle holds the lock.
const retryInterval = time.Millisecond

// The lock covers the first byte of the file.
const (
	lockBytesLow  = 1
	lockBytesHigh = 0
)

func lockFile(f *os.File) error {
	h := windows.Handle(f.Fd())
	flags := uint32(windows.LOCKFILE_EXCLUSIVE_LOCK | windows.LOCKFILE_FAIL_IMMEDIATELY)
	for {
		err := windows.LockFileEx(h, flags, 0, lockBytesLow, lockBytesHigh, new(windows.Overlapped))
		if !errors.Is(err, windows.ERROR_LOCK_VIOLATION) {
			return err
		}
		// A blocking LockFileEx would pin the OS thread; poll instead.
		time.Sleep(retryInterval)
	}
}

func unlockFile(f *os.File) error {
	return windows.UnlockFileEx(windows.Handle(f.Fd()), 0, lockBytesLow, lockBytesHigh, new(windows.Overlapped))
}
