package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aki/strex/internal/cli/ui"
	"github.com/aki/strex/internal/core/browser"
	"github.com/aki/strex/internal/core/config"
	"github.com/aki/strex/internal/core/logger"
	"github.com/aki/strex/internal/core/search"
	"github.com/aki/strex/internal/core/session"
)

// App is the state shared by every command of one invocation
type App struct {
	configPath string
	format     string
	logFlags   logFlags

	configManager *config.Manager
	config        *config.Config
	logger        logger.Logger
}

// init resolves output format, configuration and logger
func (a *App) init(cmd *cobra.Command) error {
	format, err := ui.ParseFormat(a.format)
	if err != nil {
		return err
	}
	if err := ui.SetGlobalFormatter(format); err != nil {
		return err
	}

	a.configManager, err = config.NewManager(a.configPath)
	if err != nil {
		return err
	}

	a.config, err = a.configManager.Load()
	if err != nil {
		if cmd.Annotations[annotationConfigOptional] == "" {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		ui.Warning("Using default configuration: %v", err)
		a.config = config.DefaultConfig()
	}

	a.logger, err = CreateLogger(a.logFlags, a.config.Log)
	if err != nil {
		return err
	}
	a.logger.Debug("configuration loaded", "path", a.configManager.GetConfigPath())
	cmd.SetContext(logger.WithContext(cmd.Context(), a.logger))
	return nil
}

// listOptions converts the configured listing preferences
func (a *App) listOptions() browser.ListOptions {
	order, err := browser.ParseSortOrder(a.config.Sort)
	if err != nil {
		order = browser.SortName
	}
	return browser.ListOptions{
		ShowHidden: a.config.ShowHidden,
		Sort:       order,
	}
}

func (a *App) sessionOptions() session.Options {
	return session.Options{
		List:     a.listOptions(),
		Launcher: browser.SystemLauncher{Command: a.config.Opener.Argv()},
		Logger:   a.logger.With("component", "session"),
	}
}

// startPath is where a session without persisted state begins
func (a *App) startPath() string {
	if a.config.StartPath != "" {
		return a.config.StartPath
	}
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

func (a *App) store() *session.Store {
	return session.NewStore(a.configManager.GetStateDir(a.config))
}

// openSession restores the persisted session
func (a *App) openSession(ctx context.Context) (*session.Session, *session.Store, error) {
	store := a.store()
	sess, err := session.Restore(ctx, store, a.startPath(), a.sessionOptions())
	if err != nil {
		return nil, nil, err
	}
	return sess, store, nil
}

// saveSession persists the current directory; failures only warn
func (a *App) saveSession(ctx context.Context, store *session.Store, sess *session.Session) {
	if err := store.Save(ctx, sess); err != nil {
		a.logger.Warn("failed to save session state", "path", store.Path(), "error", err)
	}
}

func (a *App) searcher() *search.Searcher {
	return search.NewSearcher(search.Options{
		FollowSymlinks: a.config.FollowSymlinks,
		Workers:        a.config.SearchWorkers,
	}, a.logger)
}
