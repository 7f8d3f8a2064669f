package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aki/strex/internal/cli/ui"
	"github.com/aki/strex/internal/core/browser"
)

type testEnv struct {
	root       string
	configPath string
}

// newTestEnv isolates configuration and state in temp dirs and starts
// sessions in a fresh tree: root/{docs/{guide.md}, Kite.txt, rock.md, box.png}
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "docs"), 0o755))
	for _, name := range []string{"docs/guide.md", "Kite.txt", "rock.md", "box.png"} {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(name), 0o644))
	}

	t.Setenv("STREX_START_PATH", root)
	t.Setenv("STREX_STATE_DIR", filepath.Join(t.TempDir(), "state"))

	original := ui.GlobalFormatter
	t.Cleanup(func() {
		ui.GlobalFormatter = original
		ui.SetOutput(os.Stdout, os.Stderr)
		ui.SetInput(os.Stdin)
	})

	return &testEnv{root: root, configPath: filepath.Join(t.TempDir(), "config.yaml")}
}

// run executes one strex invocation and returns its stdout and stderr
func (e *testEnv) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	ui.SetOutput(&out, &errOut)

	cmd := NewRootCommand()
	cmd.SetArgs(append([]string{"--config", e.configPath}, args...))
	cmd.SetIn(strings.NewReader(""))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestListCommand(t *testing.T) {
	env := newTestEnv(t)

	out, _, err := env.run(t, "ls")
	require.NoError(t, err)
	for _, name := range []string{"docs", "Kite.txt", "rock.md", "box.png", "NAME", "SIZE"} {
		assert.Contains(t, out, name)
	}

	out, _, err = env.run(t, "ls", "docs")
	require.NoError(t, err)
	assert.Contains(t, out, "guide.md")

	out, _, err = env.run(t, "pwd")
	require.NoError(t, err)
	assert.Equal(t, env.root+"\n", out, "ls with a path must not move the session")
}

func TestListCommand_JSON(t *testing.T) {
	env := newTestEnv(t)

	out, _, err := env.run(t, "--format", "json", "ls")
	require.NoError(t, err)

	var listing ui.Listing
	require.NoError(t, json.Unmarshal([]byte(out), &listing))
	assert.Equal(t, env.root, listing.Path)
	require.NotEmpty(t, listing.Entries)
	assert.Equal(t, browser.ParentName, listing.Entries[0].Name)
	assert.Len(t, listing.Entries, 5)
}

func TestNavigationPersists(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.run(t, "cd", "docs")
	require.NoError(t, err)

	out, _, err := env.run(t, "pwd")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(env.root, "docs")+"\n", out)

	_, _, err = env.run(t, "cd", "does-not-exist")
	var invalid browser.ErrInvalidPath
	require.True(t, errors.As(err, &invalid))

	out, _, err = env.run(t, "pwd")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(env.root, "docs")+"\n", out)

	_, _, err = env.run(t, "up")
	require.NoError(t, err)
	out, _, err = env.run(t, "pwd")
	require.NoError(t, err)
	assert.Equal(t, env.root+"\n", out)

	_, _, err = env.run(t, "open", "docs")
	require.NoError(t, err)
	out, _, err = env.run(t, "pwd")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(env.root, "docs")+"\n", out)
}

func TestMutationCommands(t *testing.T) {
	env := newTestEnv(t)

	out, _, err := env.run(t, "touch", "x")
	require.NoError(t, err)
	assert.Contains(t, out, "Created file x")
	assert.Contains(t, out, "0.0 KB")

	_, _, err = env.run(t, "mkdir", "new folder")
	require.NoError(t, err)
	assert.DirExists(t, filepath.Join(env.root, "new folder"))

	_, _, err = env.run(t, "mv", "x", "y")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(env.root, "y"))

	_, _, err = env.run(t, "mv", "y", "Kite.txt")
	var exists browser.ErrAlreadyExists
	require.True(t, errors.As(err, &exists))
	assert.FileExists(t, filepath.Join(env.root, "y"))

	_, _, err = env.run(t, "mkdir", "docs")
	require.True(t, errors.As(err, &exists))
}

func TestRemoveCommand(t *testing.T) {
	env := newTestEnv(t)

	ui.SetInput(strings.NewReader("n\n"))
	out, _, err := env.run(t, "rm", "docs")
	require.NoError(t, err)
	assert.Contains(t, out, "Are you sure you want to delete docs?")
	assert.Contains(t, out, "Kept docs")
	assert.DirExists(t, filepath.Join(env.root, "docs"))

	ui.SetInput(strings.NewReader("y\n"))
	_, _, err = env.run(t, "rm", "docs")
	require.NoError(t, err)
	assert.NoDirExists(t, filepath.Join(env.root, "docs"))

	out, _, err = env.run(t, "rm", "-y", "box.png")
	require.NoError(t, err)
	assert.NotContains(t, out, "Are you sure")
	assert.NoFileExists(t, filepath.Join(env.root, "box.png"))
	assert.FileExists(t, filepath.Join(env.root, "rock.md"))

	_, _, err = env.run(t, "rm", "-y", "ghost")
	assert.Equal(t, browser.ErrNotFound{Name: "ghost"}, err)
}

func TestInfoCommand(t *testing.T) {
	env := newTestEnv(t)

	out, _, err := env.run(t, "--format", "json", "info", "Kite.txt")
	require.NoError(t, err)

	var props struct {
		Name     string `json:"name"`
		Kind     string `json:"kind"`
		Size     int64  `json:"size"`
		MIMEType string `json:"mime_type"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &props))
	assert.Equal(t, "Kite.txt", props.Name)
	assert.Equal(t, "File", props.Kind)
	assert.Equal(t, int64(len("Kite.txt")), props.Size)
	assert.Contains(t, props.MIMEType, "text/plain")

	_, _, err = env.run(t, "info", "ghost")
	assert.Equal(t, browser.ErrNotFound{Name: "ghost"}, err)
}

func TestSearchCommand(t *testing.T) {
	env := newTestEnv(t)

	out, _, err := env.run(t, "--format", "json", "search", "k")
	require.NoError(t, err)

	var view ui.SearchView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, []string{
		filepath.Join(env.root, "Kite.txt"),
		filepath.Join(env.root, "rock.md"),
	}, view.Paths)
	assert.Empty(t, view.Error)

	out, _, err = env.run(t, "--format", "json", "search", "e", "--root", "docs", "--glob", "**/*.md")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, []string{filepath.Join(env.root, "docs", "guide.md")}, view.Paths)

	_, _, err = env.run(t, "search", "k", "--glob", "[")
	var invalid browser.ErrInvalidPath
	assert.True(t, errors.As(err, &invalid))
}

func TestBrowseCommand(t *testing.T) {
	env := newTestEnv(t)

	var out, errOut bytes.Buffer
	ui.SetOutput(&out, &errOut)

	cmd := NewRootCommand()
	cmd.SetArgs([]string{"--config", env.configPath, "browse", "docs"})
	// Keystrokes as a terminal sends them: enter is a carriage return.
	cmd.SetIn(strings.NewReader("touch notes.txt\rup\rexit\r"))
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	assert.Contains(t, out.String(), "Kite.txt", "the final frame shows the root listing")
	assert.FileExists(t, filepath.Join(env.root, "docs", "notes.txt"))

	pwd, _, err := env.run(t, "pwd")
	require.NoError(t, err)
	assert.Equal(t, env.root+"\n", pwd)
}

func TestConfigCommands(t *testing.T) {
	env := newTestEnv(t)

	out, _, err := env.run(t, "config", "path")
	require.NoError(t, err)
	assert.Contains(t, out, env.configPath)

	_, _, err = env.run(t, "config", "init")
	require.NoError(t, err)
	assert.FileExists(t, env.configPath)

	_, _, err = env.run(t, "config", "init")
	assert.Error(t, err)

	out, _, err = env.run(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "showHidden: true")
	assert.Contains(t, out, "startPath: "+env.root, "environment overrides are shown")

	require.NoError(t, os.WriteFile(env.configPath, []byte("sort: sideways\n"), 0o644))
	_, _, err = env.run(t, "ls")
	assert.Error(t, err)

	out, _, err = env.run(t, "config", "path")
	require.NoError(t, err, "config path works with a broken config")
	assert.Contains(t, out, "Using default configuration")
	_, _, err = env.run(t, "config", "init", "--force")
	require.NoError(t, err)
	_, _, err = env.run(t, "ls")
	assert.NoError(t, err)
}

func TestGlobalFlags(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.run(t, "--format", "xml", "ls")
	assert.Error(t, err)

	_, _, err = env.run(t, "--log-level", "chatty", "ls")
	assert.Error(t, err)

	out, _, err := env.run(t, "--format", "json", "version")
	require.NoError(t, err)
	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, Version, info["version"])
}
