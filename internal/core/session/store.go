package session

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/aki/strex/internal/core/logger"
	"github.com/aki/strex/internal/filemanager"
)

// StateFile is the file name of the persisted session under the state directory
const StateFile = "session.yaml"

// State is the persisted part of a session
type State struct {
	CurrentPath string    `yaml:"current_path"`
	UpdatedAt   time.Time `yaml:"updated_at"`
}

// Store persists session state so one-shot commands share navigation
// across invocations.
type Store struct {
	file *filemanager.File[State]
}

// NewStore creates a store keeping its state file in dir
func NewStore(dir string) *Store {
	return &Store{file: filemanager.New[State](filepath.Join(dir, StateFile))}
}

// Path returns the state file path
func (s *Store) Path() string {
	return s.file.Path()
}

// Load returns the persisted state, or nil when none was saved yet
func (s *Store) Load(ctx context.Context) (*State, error) {
	state, err := s.file.Load(ctx)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session state: %w", err)
	}
	return state, nil
}

// Save records the current directory of sess
func (s *Store) Save(ctx context.Context, sess *Session) error {
	current := sess.Current()
	return s.file.Update(ctx, func(state *State) error {
		state.CurrentPath = current
		state.UpdatedAt = time.Now().UTC()
		return nil
	})
}

// Clear forgets the persisted state
func (s *Store) Clear(ctx context.Context) error {
	return s.file.Remove(ctx)
}

// Restore opens a session at the persisted directory. A missing or
// unusable state falls back to start.
func Restore(ctx context.Context, store *Store, start string, opts Options) (*Session, error) {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	state, err := store.Load(ctx)
	if err != nil {
		log.Warn("ignoring session state", "path", store.Path(), "error", err)
	}
	if state != nil && state.CurrentPath != "" {
		sess, err := New(state.CurrentPath, opts)
		if err == nil {
			return sess, nil
		}
		log.Info("persisted directory unavailable, using start path",
			"persisted", state.CurrentPath, "start", start, "error", err)
	}
	return New(start, opts)
}
