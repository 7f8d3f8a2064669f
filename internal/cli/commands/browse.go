package commands

import (
	"github.com/spf13/cobra"

	"github.com/aki/strex/internal/cli/shell"
	"github.com/aki/strex/internal/cli/ui"
)

func newBrowseCmd(app *App) *cobra.Command {
	var fullscreen bool

	cmd := &cobra.Command{
		Use:   "browse [path]",
		Short: "Start the interactive browser",
		Long: `Start the interactive browser positioned at path, or at the current directory.

Move the selection with the arrow keys and press enter to open it, or type
commands such as "mkdir notes" or "search report". Searches run in the
background while the browser stays usable; type help for the full list.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sess, store, err := app.openSession(ctx)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				if _, err := sess.Enter(args[0]); err != nil {
					return err
				}
				app.saveSession(ctx, store, sess)
			}

			// The browser renders tables; JSON output makes no sense interactively.
			return ui.WithFormatter(ui.FormatPretty, func() error {
				m := shell.New(sess, app.searcher(), shell.Options{
					In:        cmd.InOrStdin(),
					Out:       ui.Stdout(),
					Store:     store,
					Logger:    app.logger.With("component", "browser"),
					AltScreen: fullscreen,
				})
				return m.Run(ctx)
			})
		},
	}

	cmd.Flags().BoolVar(&fullscreen, "fullscreen", false, "Use the terminal's alternate screen")
	return cmd
}
