package browser

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// validateName rejects names that would escape dir or name the pseudo-entries
func validateName(name string) error {
	switch {
	case name == "":
		return ErrInvalidPath{Input: name, Reason: "name is empty"}
	case name == "." || name == ParentName:
		return ErrInvalidPath{Input: name, Reason: "reserved name"}
	case strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator):
		return ErrInvalidPath{Input: name, Reason: "name must not contain a path separator"}
	}
	return nil
}

// selectedPath resolves the selected name inside dir. An empty name means
// nothing is selected.
func selectedPath(dir, name string) (string, fs.FileInfo, error) {
	if name == "" {
		return "", nil, ErrNotFound{}
	}
	if name == ParentName {
		return "", nil, ErrInvalidPath{Input: name, Reason: "the parent entry cannot be modified"}
	}
	if err := validateName(name); err != nil {
		return "", nil, err
	}

	fullPath := filepath.Join(dir, name)
	info, err := os.Lstat(fullPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil, ErrNotFound{Name: name}
		}
		return "", nil, ErrIO{Op: "stat", Path: fullPath, Err: err}
	}
	return fullPath, info, nil
}

// CheckSelected reports whether name is an existing entry of dir that the
// mutations may act on, without touching it.
func CheckSelected(dir, name string) error {
	_, _, err := selectedPath(dir, name)
	return err
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// Rename renames oldName to newName inside dir. The filesystem is left
// unchanged when newName is already taken.
func Rename(dir, oldName, newName string) error {
	oldPath, _, err := selectedPath(dir, oldName)
	if err != nil {
		return err
	}
	if err := validateName(newName); err != nil {
		return err
	}

	newPath := filepath.Join(dir, newName)
	if exists(newPath) {
		return ErrAlreadyExists{Path: newPath}
	}

	if err := renameNoReplace(oldPath, newPath); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return ErrAlreadyExists{Path: newPath}
		}
		return ErrIO{Op: "rename", Path: oldPath, Err: err}
	}
	return nil
}

// CreateFolder creates an empty directory called name inside dir
func CreateFolder(dir, name string) error {
	if err := validateName(name); err != nil {
		return err
	}

	fullPath := filepath.Join(dir, name)
	if err := os.Mkdir(fullPath, 0o755); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return ErrAlreadyExists{Path: fullPath}
		}
		return ErrIO{Op: "create folder", Path: fullPath, Err: err}
	}
	return nil
}

// CreateFile creates a zero-byte file called name inside dir
func CreateFile(dir, name string) error {
	if err := validateName(name); err != nil {
		return err
	}

	fullPath := filepath.Join(dir, name)
	f, err := os.OpenFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return ErrAlreadyExists{Path: fullPath}
		}
		return ErrIO{Op: "create file", Path: fullPath, Err: err}
	}
	if err := f.Close(); err != nil {
		return ErrIO{Op: "create file", Path: fullPath, Err: err}
	}
	return nil
}

// Delete removes name from dir. Directories are removed with all their
// descendants; symlinks are removed without touching their target.
func Delete(dir, name string) error {
	fullPath, info, err := selectedPath(dir, name)
	if err != nil {
		return err
	}

	if info.IsDir() {
		err = os.RemoveAll(fullPath)
	} else {
		err = os.Remove(fullPath)
	}
	if err != nil {
		return ErrIO{Op: "delete", Path: fullPath, Err: err}
	}
	return nil
}
