// Package browser provides the filesystem operations behind strex: directory
// listing, rename, create, delete, properties and launching files with the
// default application. It has no knowledge of navigation state or output.
package browser

import (
	"fmt"
	"strings"
	"time"
)

// Kind distinguishes files from directories in a listing
type Kind int

const (
	// KindFile is a regular file (or anything that is not a directory)
	KindFile Kind = iota
	// KindDirectory is a directory
	KindDirectory
)

// String implements fmt.Stringer
func (k Kind) String() string {
	if k == KindDirectory {
		return "Directory"
	}
	return "File"
}

// MarshalText implements encoding.TextMarshaler
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *Kind) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "directory":
		*k = KindDirectory
	case "file":
		*k = KindFile
	default:
		return fmt.Errorf("unknown kind: %s", text)
	}
	return nil
}

// ParentName is the display name of the parent pseudo-entry
const ParentName = ".."

// Entry is one row of a directory listing
type Entry struct {
	Name     string    `json:"name"`
	Path     string    `json:"path"`
	Kind     Kind      `json:"kind"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
	// Parent marks the synthetic "go to parent" row. It is not a filesystem object.
	Parent bool `json:"parent,omitempty"`
}

// IsDir reports whether the entry is a directory or the parent pseudo-entry
func (e Entry) IsDir() bool {
	return e.Parent || e.Kind == KindDirectory
}

// SizeKB renders the size in kilobytes with one decimal place. Directories
// and the parent pseudo-entry have no size.
func (e Entry) SizeKB() string {
	if e.IsDir() {
		return "N/A"
	}
	return fmt.Sprintf("%.1f KB", float64(e.Size)/1024)
}

// ModifiedString renders the modification time the way listings show it
func (e Entry) ModifiedString() string {
	if e.Parent || e.Modified.IsZero() {
		return ""
	}
	return e.Modified.Format("2006-01-02 15:04:05")
}

func parentEntry(dir string) Entry {
	return Entry{
		Name:   ParentName,
		Path:   dir,
		Kind:   KindDirectory,
		Parent: true,
	}
}
