package browser

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"testing"

	git "github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeTree creates files (names ending in "/" are directories) under a fresh temp dir
func makeTree(t *testing.T, paths ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		if p[len(p)-1] == '/' {
			require.NoError(t, os.MkdirAll(full, 0o755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte("content of "+p), 0o644))
	}
	return root
}

func names(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Parent {
			continue
		}
		out = append(out, e.Name)
	}
	sort.Strings(out)
	return out
}

func TestList(t *testing.T) {
	t.Run("lists exactly the directory entries with a parent row", func(t *testing.T) {
		root := makeTree(t, "a.txt", "b.md", "sub/", "sub/nested.txt", ".hidden")

		entries, err := List(root, DefaultListOptions())
		require.NoError(t, err)

		require.NotEmpty(t, entries)
		assert.True(t, entries[0].Parent)
		assert.Equal(t, ParentName, entries[0].Name)
		assert.Equal(t, filepath.Dir(root), entries[0].Path)

		assert.Equal(t, []string{".hidden", "a.txt", "b.md", "sub"}, names(entries))

		for _, e := range entries[1:] {
			info, err := os.Stat(filepath.Join(root, e.Name))
			require.NoError(t, err)
			assert.Equal(t, info.IsDir(), e.Kind == KindDirectory, e.Name)
			assert.Equal(t, filepath.Join(root, e.Name), e.Path)
		}
	})

	t.Run("name order puts directories first", func(t *testing.T) {
		root := makeTree(t, "Zeta.txt", "alpha.txt", "mid/")

		entries, err := List(root, ListOptions{ShowHidden: true, Sort: SortName})
		require.NoError(t, err)

		var got []string
		for _, e := range entries[1:] {
			got = append(got, e.Name)
		}
		assert.Equal(t, []string{"mid", "alpha.txt", "Zeta.txt"}, got)
	})

	t.Run("enumeration order keeps the same set", func(t *testing.T) {
		root := makeTree(t, "one", "two", "three/")

		entries, err := List(root, ListOptions{ShowHidden: true, Sort: SortNone})
		require.NoError(t, err)
		assert.Equal(t, []string{"one", "three", "two"}, names(entries))
	})

	t.Run("hidden entries can be filtered", func(t *testing.T) {
		root := makeTree(t, ".git/", ".env", "visible")

		entries, err := List(root, ListOptions{ShowHidden: false, Sort: SortName})
		require.NoError(t, err)
		assert.Equal(t, []string{"visible"}, names(entries))
	})

	t.Run("sizes are reported for files only", func(t *testing.T) {
		root := makeTree(t, "sub/")
		require.NoError(t, os.WriteFile(filepath.Join(root, "k.bin"), make([]byte, 1536), 0o644))

		entries, err := List(root, DefaultListOptions())
		require.NoError(t, err)

		byName := map[string]Entry{}
		for _, e := range entries {
			byName[e.Name] = e
		}
		assert.Equal(t, "1.5 KB", byName["k.bin"].SizeKB())
		assert.Equal(t, "N/A", byName["sub"].SizeKB())
		assert.Equal(t, "N/A", byName[ParentName].SizeKB())
	})

	t.Run("symlinks report the kind of their target", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("symlinks need privileges on windows")
		}
		root := makeTree(t, "target/", "file.txt")
		require.NoError(t, os.Symlink(filepath.Join(root, "target"), filepath.Join(root, "link")))
		require.NoError(t, os.Symlink(filepath.Join(root, "missing"), filepath.Join(root, "dangling")))

		entries, err := List(root, DefaultListOptions())
		require.NoError(t, err)

		kinds := map[string]Kind{}
		for _, e := range entries {
			kinds[e.Name] = e.Kind
		}
		assert.Equal(t, KindDirectory, kinds["link"])
		assert.Equal(t, KindFile, kinds["dangling"])
	})

	t.Run("root has no parent row", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("root layout differs on windows")
		}
		entries, err := List("/", DefaultListOptions())
		require.NoError(t, err)
		for _, e := range entries {
			assert.False(t, e.Parent)
		}
	})

	t.Run("missing path fails with not a directory", func(t *testing.T) {
		_, err := List(filepath.Join(t.TempDir(), "nope"), DefaultListOptions())
		var target ErrNotADirectory
		assert.ErrorAs(t, err, &target)
	})

	t.Run("file path fails with not a directory", func(t *testing.T) {
		root := makeTree(t, "file.txt")
		_, err := List(filepath.Join(root, "file.txt"), DefaultListOptions())
		var target ErrNotADirectory
		require.ErrorAs(t, err, &target)
		assert.Equal(t, filepath.Join(root, "file.txt"), target.Path)
	})
}

func TestParseSortOrder(t *testing.T) {
	tests := []struct {
		in      string
		want    SortOrder
		wantErr bool
	}{
		{"", SortName, false},
		{"name", SortName, false},
		{"modified", SortModified, false},
		{"size", SortSize, false},
		{"none", SortNone, false},
		{"random", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSortOrder(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRename(t *testing.T) {
	t.Run("renames an entry", func(t *testing.T) {
		root := makeTree(t, "old.txt")

		require.NoError(t, Rename(root, "old.txt", "new.txt"))

		assert.NoFileExists(t, filepath.Join(root, "old.txt"))
		assert.FileExists(t, filepath.Join(root, "new.txt"))
	})

	t.Run("existing target leaves the filesystem unchanged", func(t *testing.T) {
		root := makeTree(t, "a.txt", "b.txt")

		err := Rename(root, "a.txt", "b.txt")

		var target ErrAlreadyExists
		require.ErrorAs(t, err, &target)
		data, err := os.ReadFile(filepath.Join(root, "a.txt"))
		require.NoError(t, err)
		assert.Equal(t, "content of a.txt", string(data))
		data, err = os.ReadFile(filepath.Join(root, "b.txt"))
		require.NoError(t, err)
		assert.Equal(t, "content of b.txt", string(data))
	})

	t.Run("existing directory target is rejected", func(t *testing.T) {
		root := makeTree(t, "a.txt", "dir/")
		var target ErrAlreadyExists
		assert.ErrorAs(t, Rename(root, "a.txt", "dir"), &target)
		assert.FileExists(t, filepath.Join(root, "a.txt"))
	})

	t.Run("no selection", func(t *testing.T) {
		var target ErrNotFound
		require.ErrorAs(t, Rename(t.TempDir(), "", "x"), &target)
		assert.Equal(t, "no item selected", target.Error())
	})

	t.Run("missing source", func(t *testing.T) {
		var target ErrNotFound
		require.ErrorAs(t, Rename(t.TempDir(), "ghost", "x"), &target)
		assert.Equal(t, "ghost", target.Name)
	})

	t.Run("invalid new names", func(t *testing.T) {
		root := makeTree(t, "a.txt")
		for _, name := range []string{"", ".", "..", "sub/dir"} {
			var target ErrInvalidPath
			assert.ErrorAs(t, Rename(root, "a.txt", name), &target, name)
		}
		assert.FileExists(t, filepath.Join(root, "a.txt"))
	})
}

func TestCreate(t *testing.T) {
	t.Run("created file is listed with zero size", func(t *testing.T) {
		root := t.TempDir()

		require.NoError(t, CreateFile(root, "x"))

		entries, err := List(root, DefaultListOptions())
		require.NoError(t, err)
		var found *Entry
		for i := range entries {
			if entries[i].Name == "x" {
				found = &entries[i]
			}
		}
		require.NotNil(t, found)
		assert.Equal(t, KindFile, found.Kind)
		assert.Equal(t, "0.0 KB", found.SizeKB())
	})

	t.Run("created folder is an empty directory", func(t *testing.T) {
		root := t.TempDir()

		require.NoError(t, CreateFolder(root, "docs"))

		entries, err := os.ReadDir(filepath.Join(root, "docs"))
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("existing targets are rejected", func(t *testing.T) {
		root := makeTree(t, "taken", "dir/")
		var target ErrAlreadyExists

		assert.ErrorAs(t, CreateFile(root, "taken"), &target)
		assert.ErrorAs(t, CreateFile(root, "dir"), &target)
		assert.ErrorAs(t, CreateFolder(root, "taken"), &target)
		assert.ErrorAs(t, CreateFolder(root, "dir"), &target)

		data, err := os.ReadFile(filepath.Join(root, "taken"))
		require.NoError(t, err)
		assert.Equal(t, "content of taken", string(data))
	})
}

func TestDelete(t *testing.T) {
	t.Run("directory is removed with all descendants", func(t *testing.T) {
		root := makeTree(t, "keep.txt", "tree/a.txt", "tree/deep/b.txt", "tree/deep/deeper/")

		require.NoError(t, Delete(root, "tree"))

		assert.NoDirExists(t, filepath.Join(root, "tree"))
		assert.FileExists(t, filepath.Join(root, "keep.txt"))
	})

	t.Run("file deletion removes only that file", func(t *testing.T) {
		root := makeTree(t, "a.txt", "b.txt", "sub/c.txt")

		require.NoError(t, Delete(root, "a.txt"))

		entries, err := List(root, DefaultListOptions())
		require.NoError(t, err)
		assert.Equal(t, []string{"b.txt", "sub"}, names(entries))
		assert.FileExists(t, filepath.Join(root, "sub", "c.txt"))
	})

	t.Run("symlinked directory keeps its target", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("symlinks need privileges on windows")
		}
		root := makeTree(t, "target/inside.txt")
		require.NoError(t, os.Symlink(filepath.Join(root, "target"), filepath.Join(root, "link")))

		require.NoError(t, Delete(root, "link"))

		assert.FileExists(t, filepath.Join(root, "target", "inside.txt"))
	})

	t.Run("missing entry", func(t *testing.T) {
		var target ErrNotFound
		assert.ErrorAs(t, Delete(t.TempDir(), "ghost"), &target)
		assert.ErrorAs(t, Delete(t.TempDir(), ""), &target)
	})

	t.Run("permission failure carries the os error", func(t *testing.T) {
		if runtime.GOOS == "windows" || os.Geteuid() == 0 {
			t.Skip("needs unix permissions enforced")
		}
		root := makeTree(t, "locked/file.txt")
		locked := filepath.Join(root, "locked")
		require.NoError(t, os.Chmod(locked, 0o555))
		t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

		err := Delete(locked, "file.txt")

		var target ErrIO
		require.ErrorAs(t, err, &target)
		assert.ErrorIs(t, err, os.ErrPermission)
		assert.Equal(t, "delete", target.Op)
	})
}

func TestStat(t *testing.T) {
	t.Run("file properties", func(t *testing.T) {
		root := makeTree(t, "notes.txt")

		props, err := Stat(filepath.Join(root, "notes.txt"))
		require.NoError(t, err)

		assert.Equal(t, "notes.txt", props.Name)
		assert.Equal(t, KindFile, props.Kind)
		assert.Equal(t, int64(len("content of notes.txt")), props.Size)
		assert.Contains(t, props.MIMEType, "text/plain")
		assert.Nil(t, props.Repository)
	})

	t.Run("directory properties", func(t *testing.T) {
		root := makeTree(t, "dir/")

		props, err := Stat(filepath.Join(root, "dir"))
		require.NoError(t, err)

		assert.Equal(t, KindDirectory, props.Kind)
		assert.Equal(t, "N/A", props.SizeKB())
		assert.Empty(t, props.MIMEType)
	})

	t.Run("repository is detected from a subdirectory", func(t *testing.T) {
		root := makeTree(t, "src/main.go")
		_, err := git.PlainInit(root, false)
		require.NoError(t, err)

		props, err := Stat(filepath.Join(root, "src", "main.go"))
		require.NoError(t, err)

		require.NotNil(t, props.Repository)
		assert.Equal(t, root, props.Repository.Root)
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := Stat(filepath.Join(t.TempDir(), "ghost"))
		var target ErrNotFound
		assert.ErrorAs(t, err, &target)
	})
}

func TestSystemLauncher(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses unix utilities")
	}
	ctx := context.Background()

	t.Run("configured command receives the path", func(t *testing.T) {
		root := t.TempDir()
		marker := filepath.Join(root, "opened")
		l := SystemLauncher{Command: []string{"touch"}}

		require.NoError(t, l.Open(ctx, marker))
		assert.FileExists(t, marker)
	})

	t.Run("failing command is an io error", func(t *testing.T) {
		l := SystemLauncher{Command: []string{"false"}}

		err := l.Open(ctx, "/tmp/whatever")

		var target ErrIO
		require.ErrorAs(t, err, &target)
		assert.Equal(t, "open", target.Op)
	})

	t.Run("default commands per platform", func(t *testing.T) {
		assert.Equal(t, []string{"xdg-open"}, DefaultOpenCommand("linux"))
		assert.Equal(t, []string{"open"}, DefaultOpenCommand("darwin"))
		assert.Equal(t, "rundll32", DefaultOpenCommand("windows")[0])
	})
}
