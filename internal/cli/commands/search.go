package commands

import (
	"github.com/spf13/cobra"

	"github.com/aki/strex/internal/cli/ui"
)

type searchOptions struct {
	root    string
	glob    string
	follow  bool
	workers int
}

func newSearchCmd(app *App) *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "search <keyword>",
		Short: "Find files whose name contains a keyword",
		Long: `Search the current directory (or --root) recursively for files whose name
contains the keyword, ignoring case. Directories are never reported.`,
		Example: `  # Files with "report" in their name below the current directory
  strex search report

  # Only Go files below ~/src
  strex search handler --root ~/src --glob '**/*.go'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sess, _, err := app.openSession(ctx)
			if err != nil {
				return err
			}

			root := sess.Current()
			if opts.root != "" {
				// Resolve like cd, without persisting the move.
				if _, err := sess.Enter(opts.root); err != nil {
					return err
				}
				root = sess.Current()
			}

			searcher := app.searcher()
			walkOpts := searcher.Options()
			walkOpts.Glob = opts.glob
			if cmd.Flags().Changed("follow") {
				walkOpts.FollowSymlinks = opts.follow
			}
			if cmd.Flags().Changed("workers") {
				walkOpts.Workers = opts.workers
			}

			job := searcher.StartWith(ctx, args[0], root, walkOpts)
			res, err := job.Wait(ctx)
			if err != nil {
				return err
			}
			if res.Err != nil {
				return res.Err
			}
			return ui.ShowSearchResult(res)
		},
	}

	cmd.Flags().StringVar(&opts.root, "root", "", "Directory to search instead of the current one")
	cmd.Flags().StringVar(&opts.glob, "glob", "", "Only report paths matching this pattern (relative to the root, ** allowed)")
	cmd.Flags().BoolVar(&opts.follow, "follow", false, "Follow symbolic links to directories")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "Number of parallel walkers (0 = automatic)")

	return cmd
}
