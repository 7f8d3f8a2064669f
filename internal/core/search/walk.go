// Package search implements the background keyword search: a recursive walk
// of a directory tree reporting every file whose name contains a keyword.
package search

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"

	"github.com/aki/strex/internal/core/browser"
	"github.com/aki/strex/internal/core/logger"
)

// Options controls a walk
type Options struct {
	// Glob further restricts matches to files whose slash-separated path
	// relative to the root matches this doublestar pattern.
	Glob string
	// FollowSymlinks descends into symlinked directories. Each resolved
	// directory is visited at most once, so link cycles terminate.
	FollowSymlinks bool
	// Workers bounds walk parallelism; zero uses the fastwalk default.
	Workers int
}

// Matches reports whether a file name contains keyword, ignoring case
func Matches(name, keyword string) bool {
	return strings.Contains(strings.ToLower(name), strings.ToLower(keyword))
}

// matcher collects results from concurrent walk callbacks
type matcher struct {
	root     string
	resolved string
	keyword  string
	glob     string
	follow   bool
	workers  int

	mu      sync.Mutex
	visited map[string]struct{}
	links   []string
	paths   []string
}

// firstVisit records a resolved directory and reports whether it is new
func (m *matcher) firstVisit(resolved string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, seen := m.visited[resolved]; seen {
		return false
	}
	m.visited[resolved] = struct{}{}
	return true
}

func (m *matcher) add(path string) {
	m.mu.Lock()
	m.paths = append(m.paths, path)
	m.mu.Unlock()
}

func (m *matcher) deferLink(path string) {
	m.mu.Lock()
	m.links = append(m.links, path)
	m.mu.Unlock()
}

// takeLinks returns the deferred links in path order and clears the queue
func (m *matcher) takeLinks() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	links := m.links
	m.links = nil
	sort.Strings(links)
	return links
}

func (m *matcher) globMatches(path string) bool {
	if m.glob == "" {
		return true
	}
	rel, err := filepath.Rel(m.root, path)
	if err != nil {
		return false
	}
	ok, err := doublestar.Match(m.glob, filepath.ToSlash(rel))
	return err == nil && ok
}

// insideRoot reports whether a resolved path lies in the resolved root
func (m *matcher) insideRoot(resolved string) bool {
	rel, err := filepath.Rel(m.resolved, resolved)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// isDirLink reports whether a symlink entry points at a directory
func isDirLink(path string, d fs.DirEntry) bool {
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func resolve(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	return path
}

// Walk searches the tree rooted at root and returns the sorted absolute
// paths of all files whose name contains keyword case-insensitively.
// Unreadable subdirectories are skipped.
//
// With FollowSymlinks, links to directories inside the root are skipped
// because the directory is found under its real path. Links leading out of
// the root are walked after the tree itself, one at a time in path order,
// so a directory reachable through several links is always reported under
// the same one.
func Walk(ctx context.Context, root, keyword string, opts Options) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, browser.ErrNotADirectory{Path: root, Err: err}
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, browser.ErrNotADirectory{Path: absRoot, Err: err}
	}
	if !info.IsDir() {
		return nil, browser.ErrNotADirectory{Path: absRoot}
	}
	if opts.Glob != "" && !doublestar.ValidatePattern(opts.Glob) {
		return nil, browser.ErrInvalidPath{Input: opts.Glob, Reason: "invalid glob pattern"}
	}

	m := &matcher{
		root:     absRoot,
		resolved: resolve(absRoot),
		keyword:  keyword,
		glob:     opts.Glob,
		follow:   opts.FollowSymlinks,
		workers:  opts.Workers,
		visited:  make(map[string]struct{}),
	}
	m.firstVisit(m.resolved)

	if err := m.walk(ctx, absRoot, m.resolved); err != nil {
		return nil, err
	}

	for links := m.takeLinks(); len(links) > 0; links = m.takeLinks() {
		for _, link := range links {
			target := resolve(link)
			if !m.firstVisit(target) {
				continue
			}
			if err := m.walk(ctx, link, target); err != nil {
				return nil, err
			}
		}
	}

	sort.Strings(m.paths)
	return m.paths, nil
}

// walk reads the real directory dir and reports what it finds under the
// display path shown. Directory links are never descended into here.
func (m *matcher) walk(ctx context.Context, shown, dir string) error {
	log := logger.FromContext(ctx)
	conf := fastwalk.Config{
		Follow:     false,
		NumWorkers: m.workers,
	}

	return fastwalk.Walk(&conf, dir, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			log.Debug("skipping unreadable entry", "path", path, "error", err)
			return nil
		}

		display := path
		if shown != dir {
			rel, relErr := filepath.Rel(dir, path)
			if relErr != nil {
				return nil
			}
			display = filepath.Join(shown, rel)
		}

		if d.IsDir() {
			if path == dir {
				return nil
			}
			if m.follow && !m.firstVisit(resolve(path)) {
				return filepath.SkipDir
			}
			return nil
		}

		if isDirLink(path, d) {
			if m.follow && !m.insideRoot(resolve(path)) {
				m.deferLink(display)
			}
			return nil
		}

		if Matches(d.Name(), m.keyword) && m.globMatches(display) {
			m.add(display)
		}
		return nil
	})
}
