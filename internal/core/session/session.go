// Package session holds the navigation state of one browser window: the
// current directory, the listing options and the launcher used to open
// files. Mutations run against the current directory and return the
// refreshed listing, so adapters never hold a stale view.
package session

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aki/strex/internal/core/browser"
	"github.com/aki/strex/internal/core/logger"
)

// ConfirmFunc asks the user to confirm deleting name
type ConfirmFunc func(name string) bool

// Options configures a Session
type Options struct {
	List     browser.ListOptions
	Launcher browser.Launcher
	Logger   logger.Logger
	// Home is used for "~" expansion; empty means os.UserHomeDir.
	Home string
}

// Session is the explicit navigation state. It is safe for concurrent use
// but is normally owned by a single controller goroutine.
type Session struct {
	mu       sync.Mutex
	current  string
	list     browser.ListOptions
	launcher browser.Launcher
	home     string
	logger   logger.Logger
}

// New creates a session positioned at start, which must be an existing
// readable directory.
func New(start string, opts Options) (*Session, error) {
	s := &Session{
		list:     opts.List,
		launcher: opts.Launcher,
		home:     opts.Home,
		logger:   opts.Logger,
	}
	if s.logger == nil {
		s.logger = logger.Nop()
	}
	if s.launcher == nil {
		s.launcher = browser.SystemLauncher{}
	}

	target, err := s.resolve(start, "")
	if err != nil {
		return nil, err
	}
	if _, err := s.checkDir(start, target); err != nil {
		return nil, err
	}
	s.current = target
	return s, nil
}

// Current returns the current directory
func (s *Session) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// ListOptions returns the options used for listings
func (s *Session) ListOptions() browser.ListOptions {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list
}

// SetListOptions changes the options used for subsequent listings
func (s *Session) SetListOptions(opts browser.ListOptions) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list = opts
}

// List returns the listing of the current directory
func (s *Session) List() ([]browser.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return browser.List(s.current, s.list)
}

// Enter navigates to a user-typed path. "~" expands to the home directory
// and relative input resolves against the current directory. On any
// failure the current directory is unchanged and ErrInvalidPath is
// returned.
func (s *Session) Enter(input string) ([]browser.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	target, err := s.resolve(input, s.current)
	if err != nil {
		return nil, err
	}
	entries, err := s.checkDir(input, target)
	if err != nil {
		return nil, err
	}
	s.moveTo(target)
	return entries, nil
}

// Parent navigates to the parent directory. At the filesystem root the
// current listing is returned unchanged.
func (s *Session) Parent() ([]browser.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.parent()
}

func (s *Session) parent() ([]browser.Entry, error) {
	if browser.IsRoot(s.current) {
		return browser.List(s.current, s.list)
	}
	target := filepath.Dir(s.current)
	entries, err := browser.List(target, s.list)
	if err != nil {
		return nil, err
	}
	s.moveTo(target)
	return entries, nil
}

// Activate acts on the named entry of the current listing: the parent
// pseudo-entry navigates up, a directory is entered and a file is handed
// to the launcher. Opening a file returns a nil listing; a launcher
// failure is logged and returned without changing state.
func (s *Session) Activate(ctx context.Context, name string) ([]browser.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch name {
	case "":
		return nil, browser.ErrNotFound{}
	case browser.ParentName:
		return s.parent()
	}
	if strings.ContainsAny(name, `/\`) {
		return nil, browser.ErrInvalidPath{Input: name, Reason: "name must not contain a path separator"}
	}

	target := filepath.Join(s.current, name)
	if _, err := os.Lstat(target); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, browser.ErrNotFound{Name: name}
		}
		return nil, browser.ErrIO{Op: "stat", Path: target, Err: err}
	}

	// Stat fails for dangling symlinks, which are opened like files.
	if info, err := os.Stat(target); err == nil && info.IsDir() {
		entries, err := browser.List(target, s.list)
		if err != nil {
			return nil, err
		}
		s.moveTo(target)
		return entries, nil
	}

	if err := s.launcher.Open(ctx, target); err != nil {
		s.logger.Warn("failed to open file", "path", target, "error", err)
		var ioErr browser.ErrIO
		if !errors.As(err, &ioErr) {
			err = browser.ErrIO{Op: "open", Path: target, Err: err}
		}
		return nil, err
	}
	s.logger.Debug("opened file", "path", target)
	return nil, nil
}

// Rename renames an entry of the current directory
func (s *Session) Rename(oldName, newName string) ([]browser.Entry, error) {
	return s.mutate("rename", func(dir string) error {
		return browser.Rename(dir, oldName, newName)
	}, "from", oldName, "to", newName)
}

// CreateFolder creates an empty directory in the current directory
func (s *Session) CreateFolder(name string) ([]browser.Entry, error) {
	return s.mutate("create folder", func(dir string) error {
		return browser.CreateFolder(dir, name)
	}, "name", name)
}

// CreateFile creates an empty file in the current directory
func (s *Session) CreateFile(name string) ([]browser.Entry, error) {
	return s.mutate("create file", func(dir string) error {
		return browser.CreateFile(dir, name)
	}, "name", name)
}

// CheckDelete reports why name could not be deleted from the current
// directory, if anything. Adapters call it before asking for confirmation.
func (s *Session) CheckDelete(name string) error {
	return browser.CheckSelected(s.Current(), name)
}

// Delete removes the named entry once confirm accepts it. The boolean
// reports whether anything was deleted; a declined confirmation changes
// nothing and is not an error.
func (s *Session) Delete(name string, confirm ConfirmFunc) ([]browser.Entry, bool, error) {
	if err := s.CheckDelete(name); err != nil {
		return nil, false, err
	}
	if confirm != nil && !confirm(name) {
		s.logger.Debug("delete declined", "name", name)
		return nil, false, nil
	}

	entries, err := s.mutate("delete", func(dir string) error {
		return browser.Delete(dir, name)
	}, "name", name)
	if err != nil {
		return nil, false, err
	}
	return entries, true, nil
}

// Properties describes the named entry of the current directory. The
// parent pseudo-entry describes the parent directory.
func (s *Session) Properties(name string) (*browser.Properties, error) {
	current := s.Current()

	switch name {
	case "":
		return nil, browser.ErrNotFound{}
	case browser.ParentName:
		return browser.Stat(filepath.Dir(current))
	}
	if strings.ContainsAny(name, `/\`) {
		return nil, browser.ErrInvalidPath{Input: name, Reason: "name must not contain a path separator"}
	}
	return browser.Stat(filepath.Join(current, name))
}

func (s *Session) mutate(op string, fn func(dir string) error, args ...any) ([]browser.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := s.logger.With(append([]any{"op", op, "dir", s.current}, args...)...)
	if err := fn(s.current); err != nil {
		log.Debug("mutation failed", "error", err)
		return nil, err
	}
	log.Info("mutation applied")
	return browser.List(s.current, s.list)
}

func (s *Session) moveTo(target string) {
	if target != s.current {
		s.logger.Debug("navigated", "from", s.current, "to", target)
	}
	s.current = target
}

// resolve turns user input into a clean absolute path. Relative input is
// joined to base, or to the working directory when base is empty.
func (s *Session) resolve(input, base string) (string, error) {
	p := strings.TrimSpace(input)
	if p == "" {
		return "", browser.ErrInvalidPath{Input: input, Reason: "path is empty"}
	}

	if p == "~" || strings.HasPrefix(p, "~/") || strings.HasPrefix(p, `~\`) {
		home, err := s.homeDir()
		if err != nil {
			return "", browser.ErrInvalidPath{Input: input, Reason: "home directory is unknown"}
		}
		p = filepath.Join(home, p[1:])
	}

	if filepath.IsAbs(p) {
		return filepath.Clean(p), nil
	}
	if base == "" {
		abs, err := filepath.Abs(p)
		if err != nil {
			return "", browser.ErrInvalidPath{Input: input, Reason: err.Error()}
		}
		return abs, nil
	}
	return filepath.Join(base, p), nil
}

// checkDir lists target, translating every failure into ErrInvalidPath
func (s *Session) checkDir(input, target string) ([]browser.Entry, error) {
	info, err := os.Stat(target)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, browser.ErrInvalidPath{Input: input}
		}
		return nil, browser.ErrInvalidPath{Input: input, Reason: err.Error()}
	}
	if !info.IsDir() {
		return nil, browser.ErrInvalidPath{Input: input, Reason: "not a directory"}
	}
	entries, err := browser.List(target, s.list)
	if err != nil {
		return nil, browser.ErrInvalidPath{Input: input, Reason: "directory cannot be read"}
	}
	return entries, nil
}

func (s *Session) homeDir() (string, error) {
	if s.home != "" {
		return s.home, nil
	}
	return os.UserHomeDir()
}
