package browser

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/aki/strex/internal/core/git"
)

// Properties is the detailed metadata shown for a single entry
type Properties struct {
	Name       string              `json:"name"`
	Path       string              `json:"path"`
	Kind       Kind                `json:"kind"`
	Size       int64               `json:"size"`
	Modified   time.Time           `json:"modified"`
	Mode       string              `json:"mode"`
	Symlink    string              `json:"symlink,omitempty"`
	MIMEType   string              `json:"mime_type,omitempty"`
	Repository *git.RepositoryInfo `json:"repository,omitempty"`
}

// SizeKB renders the size like a listing row does
func (p *Properties) SizeKB() string {
	return Entry{Kind: p.Kind, Size: p.Size}.SizeKB()
}

// Stat collects the properties of the object at path. MIME detection and
// repository lookup are best effort and never fail the call.
func Stat(path string) (*Properties, error) {
	fullPath, err := filepath.Abs(path)
	if err != nil {
		return nil, ErrInvalidPath{Input: path, Reason: err.Error()}
	}

	linfo, err := os.Lstat(fullPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound{Name: filepath.Base(fullPath)}
		}
		return nil, ErrIO{Op: "stat", Path: fullPath, Err: err}
	}

	props := &Properties{
		Name: filepath.Base(fullPath),
		Path: fullPath,
	}

	info := linfo
	if linfo.Mode()&fs.ModeSymlink != 0 {
		if target, err := os.Readlink(fullPath); err == nil {
			props.Symlink = target
		}
		if resolved, err := os.Stat(fullPath); err == nil {
			info = resolved
		}
	}

	props.Modified = info.ModTime()
	props.Mode = info.Mode().String()
	if info.IsDir() {
		props.Kind = KindDirectory
	} else {
		props.Kind = KindFile
		props.Size = info.Size()
		if info.Mode().IsRegular() {
			if mtype, err := mimetype.DetectFile(fullPath); err == nil {
				props.MIMEType = mtype.String()
			}
		}
	}

	if repo, err := git.NewOperations(fullPath).GetRepositoryInfo(); err == nil {
		props.Repository = repo
	}

	return props, nil
}
