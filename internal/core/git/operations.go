// Package git reports which git repository, if any, a browsed path belongs to.
package git

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Operations provides read-only repository lookups for a path
type Operations struct {
	path string
}

// NewOperations creates a new git operations instance for path
func NewOperations(path string) *Operations {
	return &Operations{
		path: path,
	}
}

// open finds the repository containing the path by walking up to the .git directory
func (o *Operations) open() (*git.Repository, error) {
	dir := o.path
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	return git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
}

// GetRepositoryInfo returns information about the repository containing the
// path. It returns nil, nil when the path is not inside a repository.
func (o *Operations) GetRepositoryInfo() (*RepositoryInfo, error) {
	repo, err := o.open()
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	info := &RepositoryInfo{}

	// Bare repositories have no work tree to report
	if wt, err := repo.Worktree(); err == nil {
		info.Root = wt.Filesystem.Root()
	}

	// An unborn HEAD (fresh repository) has no branch yet
	ref, err := repo.Head()
	switch {
	case err == nil:
		if ref.Name().IsBranch() {
			info.CurrentBranch = ref.Name().Short()
		} else {
			info.CurrentBranch = ref.Hash().String()[:7]
		}
	case errors.Is(err, plumbing.ErrReferenceNotFound):
	default:
		return nil, fmt.Errorf("failed to get HEAD: %w", err)
	}

	remotes, err := repo.Remotes()
	if err == nil && len(remotes) > 0 {
		config := remotes[0].Config()
		if len(config.URLs) > 0 {
			info.RemoteURL = config.URLs[0]
		}
	}

	return info, nil
}
