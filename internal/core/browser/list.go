package browser

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SortOrder selects how real entries are ordered in a listing
type SortOrder string

const (
	// SortName lists directories first, then everything by case-insensitive name
	SortName SortOrder = "name"
	// SortModified lists the most recently modified entries first
	SortModified SortOrder = "modified"
	// SortSize lists the largest files first, directories last
	SortSize SortOrder = "size"
	// SortNone keeps the order the filesystem enumerates entries in
	SortNone SortOrder = "none"
)

// ParseSortOrder converts a string to a SortOrder
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(s) {
	case "", SortName:
		return SortName, nil
	case SortModified, SortSize, SortNone:
		return SortOrder(s), nil
	default:
		return "", fmt.Errorf("unsupported sort order: %s", s)
	}
}

// ListOptions controls directory listings
type ListOptions struct {
	ShowHidden bool
	Sort       SortOrder
}

// DefaultListOptions returns the options used when none are configured
func DefaultListOptions() ListOptions {
	return ListOptions{ShowHidden: true, Sort: SortName}
}

// IsRoot reports whether path is the root of its filesystem
func IsRoot(path string) bool {
	clean := filepath.Clean(path)
	return filepath.Dir(clean) == clean
}

// List returns the entries of the directory at path. A parent pseudo-entry is
// prepended unless path is the filesystem root.
func List(path string, opts ListOptions) ([]Entry, error) {
	dir, err := filepath.Abs(path)
	if err != nil {
		return nil, ErrNotADirectory{Path: path, Err: err}
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, ErrNotADirectory{Path: dir, Err: err}
	}
	if !info.IsDir() {
		return nil, ErrNotADirectory{Path: dir}
	}

	dirEntries, err := readDirUnsorted(dir)
	if err != nil {
		return nil, ErrNotADirectory{Path: dir, Err: err}
	}

	entries := make([]Entry, 0, len(dirEntries)+1)
	if !IsRoot(dir) {
		entries = append(entries, parentEntry(filepath.Dir(dir)))
	}

	items := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		name := de.Name()
		if !opts.ShowHidden && strings.HasPrefix(name, ".") {
			continue
		}
		entry, err := newEntry(dir, de)
		if err != nil {
			continue // Removed while listing
		}
		items = append(items, entry)
	}

	sortEntries(items, opts.Sort)
	return append(entries, items...), nil
}

// readDirUnsorted reads all entries in enumeration order. os.ReadDir sorts by
// name, which would make SortNone meaningless.
func readDirUnsorted(dir string) ([]fs.DirEntry, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	entries, err := f.ReadDir(-1)
	if err != nil && err != io.EOF {
		return nil, err
	}
	return entries, nil
}

func newEntry(dir string, de fs.DirEntry) (Entry, error) {
	fullPath := filepath.Join(dir, de.Name())

	info, err := de.Info()
	if err != nil {
		return Entry{}, err
	}

	// Symlinks report their target; dangling links stay files
	if info.Mode()&fs.ModeSymlink != 0 {
		if target, err := os.Stat(fullPath); err == nil {
			info = target
		}
	}

	entry := Entry{
		Name:     de.Name(),
		Path:     fullPath,
		Kind:     KindFile,
		Modified: info.ModTime(),
	}
	if info.IsDir() {
		entry.Kind = KindDirectory
	} else {
		entry.Size = info.Size()
	}
	return entry, nil
}

func sortEntries(entries []Entry, order SortOrder) {
	switch order {
	case SortNone:
		return
	case SortModified:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Modified.After(entries[j].Modified)
		})
	case SortSize:
		sort.SliceStable(entries, func(i, j int) bool {
			a, b := entries[i], entries[j]
			if a.IsDir() != b.IsDir() {
				return !a.IsDir()
			}
			return a.Size > b.Size
		})
	default:
		sort.SliceStable(entries, func(i, j int) bool {
			a, b := entries[i], entries[j]
			if a.IsDir() != b.IsDir() {
				return a.IsDir()
			}
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		})
	}
}
