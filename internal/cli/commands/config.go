package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aki/strex/internal/cli/ui"
	"github.com/aki/strex/internal/core/config"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage strex configuration",
		Long: `Show or create the strex configuration file.

Every setting can also be overridden with an environment variable prefixed
with STREX_, for example STREX_SHOW_HIDDEN=false or STREX_LOG_LEVEL=debug.`,
	}

	cmd.AddCommand(newConfigShowCmd(app), newConfigInitCmd(app), newConfigPathCmd(app))
	return cmd
}

func newConfigShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if ui.GlobalFormatter.IsJSON() {
				return ui.GlobalFormatter.Output(app.config)
			}

			data, err := yaml.Marshal(app.config)
			if err != nil {
				return fmt.Errorf("failed to marshal configuration: %w", err)
			}
			ui.Output("# %s", app.configManager.GetConfigPath())
			ui.Raw(string(data))
			return nil
		},
	}
}

func newConfigInitCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a configuration file with default values",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationConfigOptional: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.configManager.IsInitialized() && !force {
				return fmt.Errorf("configuration already exists at %s (use --force to overwrite)", app.configManager.GetConfigPath())
			}
			if err := app.configManager.Save(config.DefaultConfig()); err != nil {
				return err
			}
			ui.Success("Wrote %s", app.configManager.GetConfigPath())
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing configuration file")
	return cmd
}

func newConfigPathCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:         "path",
		Short:       "Print the configuration and state file locations",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationConfigOptional: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := map[string]string{
				"config": app.configManager.GetConfigPath(),
				"state":  app.store().Path(),
			}
			if ui.GlobalFormatter.IsJSON() {
				return ui.GlobalFormatter.Output(paths)
			}
			ui.Output("Config: %s", paths["config"])
			ui.Output("State:  %s", paths["state"])
			return nil
		},
	}
}
