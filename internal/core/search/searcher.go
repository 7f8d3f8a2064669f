package search

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aki/strex/internal/core/logger"
)

// State is the lifecycle state of a Searcher
type State string

const (
	// StateIdle means no search is running
	StateIdle State = "idle"
	// StateRunning means a search worker is walking the tree
	StateRunning State = "running"
)

// Result is the outcome of one search, delivered once when the walk ends
type Result struct {
	ID      string        `json:"id"`
	Keyword string        `json:"keyword"`
	Root    string        `json:"root"`
	Paths   []string      `json:"paths"`
	Err     error         `json:"-"`
	Elapsed time.Duration `json:"elapsed"`
}

// Job is a search running in the background
type Job struct {
	ID      string
	Keyword string
	Root    string

	cancel context.CancelFunc
	done   chan Result
}

// Done returns a channel that receives the job's Result exactly once
func (j *Job) Done() <-chan Result {
	return j.done
}

// Cancel stops the walk. The Result is still delivered, carrying the
// context error.
func (j *Job) Cancel() {
	j.cancel()
}

// Wait blocks until the job finishes or ctx is done
func (j *Job) Wait(ctx context.Context) (Result, error) {
	select {
	case res := <-j.done:
		return res, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// Searcher runs at most one search at a time. Starting a new search cancels
// the one in flight.
type Searcher struct {
	opts   Options
	logger logger.Logger

	mu      sync.Mutex
	current *Job
}

// Options returns the default walk options
func (s *Searcher) Options() Options {
	return s.opts
}

// NewSearcher creates a searcher with the given walk options
func NewSearcher(opts Options, log logger.Logger) *Searcher {
	if log == nil {
		log = logger.Nop()
	}
	return &Searcher{
		opts:   opts,
		logger: log.With("component", "search"),
	}
}

// State reports whether a search is currently running
func (s *Searcher) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil {
		return StateRunning
	}
	return StateIdle
}

// Current returns the running job, or nil when idle
func (s *Searcher) Current() *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Start launches a background search for keyword under root. A search that
// is already running is cancelled first.
func (s *Searcher) Start(ctx context.Context, keyword, root string) *Job {
	return s.StartWith(ctx, keyword, root, s.opts)
}

// StartWith is Start with walk options overriding the searcher defaults
func (s *Searcher) StartWith(ctx context.Context, keyword, root string, opts Options) *Job {
	jobCtx, cancel := context.WithCancel(ctx)
	job := &Job{
		ID:      uuid.New().String(),
		Keyword: keyword,
		Root:    root,
		cancel:  cancel,
		done:    make(chan Result, 1),
	}

	s.mu.Lock()
	if prev := s.current; prev != nil {
		s.logger.Debug("cancelling previous search", "id", prev.ID)
		prev.Cancel()
	}
	s.current = job
	s.mu.Unlock()

	log := s.logger.With("id", job.ID)
	log.Info("search started", "keyword", keyword, "root", root)

	go func() {
		defer cancel()
		start := time.Now()
		paths, err := Walk(jobCtx, root, keyword, opts)
		res := Result{
			ID:      job.ID,
			Keyword: keyword,
			Root:    root,
			Paths:   paths,
			Err:     err,
			Elapsed: time.Since(start),
		}

		s.mu.Lock()
		if s.current == job {
			s.current = nil
		}
		s.mu.Unlock()

		if err != nil {
			log.Warn("search ended with error", "error", err)
		} else {
			log.Info("search finished", "matches", len(paths), "elapsed", res.Elapsed)
		}
		job.done <- res
	}()

	return job
}

// Run performs a search and waits for its result
func (s *Searcher) Run(ctx context.Context, keyword, root string) (Result, error) {
	job := s.Start(ctx, keyword, root)
	return job.Wait(ctx)
}
