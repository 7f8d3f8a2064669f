//go:build !windows

package filemanager

import "os"

func readFileWithRetry(path string) ([]byte, error) {
	return os.ReadFile(path)
}
