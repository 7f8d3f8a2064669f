//go:build !linux

package browser

import "os"

// renameNoReplace renames src to dst. Outside Linux there is no portable
// no-replace rename, so this relies on the caller's existence check.
func renameNoReplace(src, dst string) error {
	return os.Rename(src, dst)
}
