//go:build windows

package filemanager

import (
	"errors"
	"os"
	"syscall"
	"time"
)

const (
	errorAccessDenied  syscall.Errno = 5
	errorAlreadyExists syscall.Errno = 183
)

// atomicRename replaces dst with src, removing dst first when Windows
// refuses to rename over an open or existing file.
func atomicRename(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}

	var errno syscall.Errno
	if errors.As(err, &errno) && (errno == errorAccessDenied || errno == errorAlreadyExists) {
		_ = os.Remove(dst)
		time.Sleep(10 * time.Millisecond)
		return os.Rename(src, dst)
	}
	return err
}
