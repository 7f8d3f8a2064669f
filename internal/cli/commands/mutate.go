package commands

import (
	"github.com/spf13/cobra"

	"github.com/aki/strex/internal/cli/ui"
	"github.com/aki/strex/internal/core/browser"
	"github.com/aki/strex/internal/core/session"
)

// showMutation reports a successful change and the refreshed listing
func showMutation(sess *session.Session, entries []browser.Entry, format string, args ...interface{}) error {
	if !ui.GlobalFormatter.IsJSON() {
		ui.Success(format, args...)
	}
	return ui.ShowListing(sess.Current(), entries)
}

func newRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "mv <old> <new>",
		Aliases: []string{"rename"},
		Short:   "Rename an entry of the current directory",
		Long: `Rename an entry of the current directory. The new name must not be taken;
an existing file or folder is never overwritten.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, _, err := app.openSession(cmd.Context())
			if err != nil {
				return err
			}
			entries, err := sess.Rename(args[0], args[1])
			if err != nil {
				return err
			}
			return showMutation(sess, entries, "Renamed %s to %s", args[0], args[1])
		},
	}
}

func newMkdirCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "mkdir <name>",
		Short: "Create a folder in the current directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, _, err := app.openSession(cmd.Context())
			if err != nil {
				return err
			}
			entries, err := sess.CreateFolder(args[0])
			if err != nil {
				return err
			}
			return showMutation(sess, entries, "Created folder %s", args[0])
		},
	}
}

func newTouchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "touch <name>",
		Short: "Create an empty file in the current directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, _, err := app.openSession(cmd.Context())
			if err != nil {
				return err
			}
			entries, err := sess.CreateFile(args[0])
			if err != nil {
				return err
			}
			return showMutation(sess, entries, "Created file %s", args[0])
		},
	}
}

func newRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm <name>",
		Aliases: []string{"delete"},
		Short:   "Delete an entry of the current directory",
		Long: `Delete a file or, recursively, a folder of the current directory.
You are asked to confirm unless --yes is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, _, err := app.openSession(cmd.Context())
			if err != nil {
				return err
			}

			confirm := ui.ConfirmDelete
			if yes {
				confirm = func(string) bool { return true }
			}

			entries, deleted, err := sess.Delete(args[0], confirm)
			if err != nil {
				return err
			}
			if !deleted {
				ui.Info("Kept %s", args[0])
				return nil
			}
			return showMutation(sess, entries, "Deleted %s", args[0])
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Delete without asking for confirmation")
	return cmd
}
