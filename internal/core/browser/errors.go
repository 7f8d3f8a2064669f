package browser

import "fmt"

// ErrNotADirectory is returned when a path does not resolve to a readable directory
type ErrNotADirectory struct {
	Path string
	Err  error
}

func (e ErrNotADirectory) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("not a readable directory: %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("not a directory: %s", e.Path)
}

func (e ErrNotADirectory) Unwrap() error {
	return e.Err
}

// ErrNotFound is returned when nothing is selected or the named entry does not exist
type ErrNotFound struct {
	Name string
}

func (e ErrNotFound) Error() string {
	if e.Name == "" {
		return "no item selected"
	}
	return fmt.Sprintf("%s does not exist", e.Name)
}

// ErrAlreadyExists is returned when a create or rename target is already taken
type ErrAlreadyExists struct {
	Path string
}

func (e ErrAlreadyExists) Error() string {
	return fmt.Sprintf("a file or folder with this name already exists: %s", e.Path)
}

// ErrInvalidPath is returned for user input that does not name a usable path
type ErrInvalidPath struct {
	Input  string
	Reason string
}

func (e ErrInvalidPath) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid path %q: %s", e.Input, e.Reason)
	}
	return fmt.Sprintf("invalid path %q: path doesn't exist", e.Input)
}

// ErrIO wraps an operating system failure during a mutation or launch
type ErrIO struct {
	Op   string
	Path string
	Err  error
}

func (e ErrIO) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e ErrIO) Unwrap() error {
	return e.Err
}
