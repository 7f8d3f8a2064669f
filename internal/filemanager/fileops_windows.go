//go:build windows

package filemanager

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"
)

// readFileWithRetry retries reads that fail while another process briefly
// holds the document open during a replace.
func readFileWithRetry(path string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	for attempt := 0; attempt < 5; attempt++ {
		data, err = os.ReadFile(path)
		if err == nil || !isSharingViolation(err) {
			return data, err
		}
		time.Sleep(time.Duration(10<<attempt) * time.Millisecond)
	}
	return nil, err
}

func isSharingViolation(err error) bool {
	if errors.Is(err, fs.ErrPermission) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "being used by another process") ||
		strings.Contains(msg, "The process cannot access")
}
