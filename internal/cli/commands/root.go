// Package commands wires the strex cobra command tree to the browser,
// session and search packages.
package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/aki/strex/internal/cli/ui"
)

// annotationConfigOptional marks commands that still run when the
// configuration file cannot be loaded.
const annotationConfigOptional = "strex/config-optional"

// NewRootCommand builds the strex command tree
func NewRootCommand() *cobra.Command {
	app := &App{}

	rootCmd := &cobra.Command{
		Use:   "strex",
		Short: "Streamlined explorer - browse and manage files from the terminal",
		Long: `Strex lists directories, renames, creates and deletes files and folders,
opens files with their default application and searches directory trees
by keyword in the background.

One-shot commands share the current directory through a small state file,
so "strex cd docs" followed by "strex ls" lists docs. "strex browse" starts
an interactive browser.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.init(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&app.configPath, "config", "", "Path to the configuration file (default $XDG_CONFIG_HOME/strex/config.yaml)")
	flags.StringVar(&app.format, "format", "pretty", "Output format (pretty, json)")
	RegisterLoggerFlags(rootCmd, &app.logFlags)

	rootCmd.AddCommand(
		newListCmd(app),
		newPwdCmd(app),
		newCdCmd(app),
		newUpCmd(app),
		newOpenCmd(app),
		newInfoCmd(app),
		newRenameCmd(app),
		newRemoveCmd(app),
		newMkdirCmd(app),
		newTouchCmd(app),
		newSearchCmd(app),
		newBrowseCmd(app),
		newConfigCmd(app),
		newVersionCmd(),
	)

	return rootCmd
}

// Execute runs the root command
func Execute(ctx context.Context) error {
	err := NewRootCommand().ExecuteContext(ctx)
	if err != nil {
		_ = ui.GlobalFormatter.OutputError(err)
	}
	return err
}
