// Package filemanager persists small YAML documents under an advisory file lock.
package filemanager

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"gopkg.in/yaml.v3"
)

// ErrLockTimeout is returned when acquiring a file lock times out
var ErrLockTimeout = errors.New("timeout acquiring file lock")

const (
	defaultLockTimeout = 5 * time.Second
	lockRetryDelay     = 50 * time.Millisecond
)

// File is a YAML document of type T stored at a fixed path. Readers take a
// shared lock and writers an exclusive one on a sibling ".lock" file, so a
// concurrent atomic rename never invalidates a held lock.
type File[T any] struct {
	path        string
	lockTimeout time.Duration
}

// Option configures a File
type Option func(*options)

type options struct {
	lockTimeout time.Duration
}

// WithLockTimeout bounds how long Load, Save and Update wait for the lock
func WithLockTimeout(d time.Duration) Option {
	return func(o *options) {
		o.lockTimeout = d
	}
}

// New returns a File bound to path
func New[T any](path string, opts ...Option) *File[T] {
	o := options{lockTimeout: defaultLockTimeout}
	for _, opt := range opts {
		opt(&o)
	}
	return &File[T]{path: path, lockTimeout: o.lockTimeout}
}

// Path returns the document path
func (f *File[T]) Path() string {
	return f.path
}

// Load reads and decodes the document. A missing document is reported with
// an error satisfying errors.Is(err, fs.ErrNotExist).
func (f *File[T]) Load(ctx context.Context) (*T, error) {
	if _, err := os.Stat(f.path); err != nil {
		return nil, err
	}

	var out *T
	err := f.withLock(ctx, false, func() error {
		var err error
		out, err = f.read()
		return err
	})
	return out, err
}

// Save encodes v and replaces the document atomically
func (f *File[T]) Save(ctx context.Context, v *T) error {
	return f.withLock(ctx, true, func() error {
		return f.write(v)
	})
}

// Update applies fn to the current document, or to a zero T when none
// exists, and saves the result. The exclusive lock is held throughout.
func (f *File[T]) Update(ctx context.Context, fn func(*T) error) error {
	return f.withLock(ctx, true, func() error {
		current, err := f.read()
		if errors.Is(err, fs.ErrNotExist) {
			current, err = new(T), nil
		}
		if err != nil {
			return err
		}
		if err := fn(current); err != nil {
			return fmt.Errorf("update function failed: %w", err)
		}
		return f.write(current)
	})
}

// Remove deletes the document. Removing a missing document is not an error.
func (f *File[T]) Remove(ctx context.Context) error {
	if _, err := os.Stat(f.path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return f.withLock(ctx, true, func() error {
		if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to remove file: %w", err)
		}
		return nil
	})
}

func (f *File[T]) lockPath() string {
	return f.path + ".lock"
}

func (f *File[T]) withLock(ctx context.Context, exclusive bool, fn func() error) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	lock := flock.New(f.lockPath())

	lockCtx, cancel := context.WithTimeout(ctx, f.lockTimeout)
	defer cancel()

	var (
		locked bool
		err    error
	)
	if exclusive {
		locked, err = lock.TryLockContext(lockCtx, lockRetryDelay)
	} else {
		locked, err = lock.TryRLockContext(lockCtx, lockRetryDelay)
	}
	if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
		return ErrLockTimeout
	}
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return ErrLockTimeout
	}
	defer func() { _ = lock.Unlock() }()

	return fn()
}

func (f *File[T]) read() (*T, error) {
	data, err := readFileWithRetry(f.path)
	if err != nil {
		return nil, err
	}

	var out T
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", f.path, err)
	}
	return &out, nil
}

func (f *File[T]) write(v *T) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal yaml: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	_ = tmp.Sync()
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := atomicRename(tmpName, f.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to rename file: %w", err)
	}
	return nil
}
