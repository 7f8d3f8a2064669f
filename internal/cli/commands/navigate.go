package commands

import (
	"github.com/spf13/cobra"

	"github.com/aki/strex/internal/cli/ui"
)

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "ls [path]",
		Aliases: []string{"list"},
		Short:   "List the current directory or another path",
		Long: `List a directory. Without an argument the current directory is listed.
A path argument is resolved like "cd" does but does not change the
current directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, _, err := app.openSession(cmd.Context())
			if err != nil {
				return err
			}

			if len(args) == 1 {
				entries, err := sess.Enter(args[0])
				if err != nil {
					return err
				}
				return ui.ShowListing(sess.Current(), entries)
			}

			entries, err := sess.List()
			if err != nil {
				return err
			}
			return ui.ShowListing(sess.Current(), entries)
		},
	}
}

func newPwdCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "pwd",
		Short: "Print the current directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, _, err := app.openSession(cmd.Context())
			if err != nil {
				return err
			}
			if ui.GlobalFormatter.IsJSON() {
				return ui.GlobalFormatter.Output(map[string]string{"path": sess.Current()})
			}
			ui.Output("%s", sess.Current())
			return nil
		},
	}
}

func newCdCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "cd [path]",
		Short: "Change the current directory",
		Long: `Change the current directory. The path may be absolute, relative to the
current directory or start with ~. Without an argument the home directory
is used. An invalid path leaves the current directory unchanged.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, store, err := app.openSession(cmd.Context())
			if err != nil {
				return err
			}

			target := "~"
			if len(args) == 1 {
				target = args[0]
			}
			entries, err := sess.Enter(target)
			if err != nil {
				return err
			}
			app.saveSession(cmd.Context(), store, sess)
			return ui.ShowListing(sess.Current(), entries)
		},
	}
}

func newUpCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Go to the parent directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, store, err := app.openSession(cmd.Context())
			if err != nil {
				return err
			}
			entries, err := sess.Parent()
			if err != nil {
				return err
			}
			app.saveSession(cmd.Context(), store, sess)
			return ui.ShowListing(sess.Current(), entries)
		},
	}
}

func newOpenCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "open <name>",
		Short: "Enter a directory or open a file with its default application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, store, err := app.openSession(cmd.Context())
			if err != nil {
				return err
			}
			entries, err := sess.Activate(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if entries == nil {
				if !ui.GlobalFormatter.IsJSON() {
					ui.Success("Opened %s", args[0])
				}
				return nil
			}
			app.saveSession(cmd.Context(), store, sess)
			return ui.ShowListing(sess.Current(), entries)
		},
	}
}

func newInfoCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "info <name>",
		Aliases: []string{"properties"},
		Short:   "Show the properties of an entry",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, _, err := app.openSession(cmd.Context())
			if err != nil {
				return err
			}
			props, err := sess.Properties(args[0])
			if err != nil {
				return err
			}
			return ui.ShowProperties(props)
		},
	}
}
