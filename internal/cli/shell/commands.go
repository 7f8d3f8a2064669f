package shell

import (
	"sort"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aki/strex/internal/cli/ui"
	"github.com/aki/strex/internal/core/browser"
	"github.com/aki/strex/internal/core/search"
)

type command struct {
	usage   string
	summary string
	minArgs int
	// maxArgs < 0 means unlimited
	maxArgs int
	run     func(args []string) (tea.Cmd, error)
}

func (m *Model) commandTable() map[string]*command {
	cmds := map[string]*command{
		"ls": {
			usage: "ls", summary: "Reload the current directory",
			run: func(args []string) (tea.Cmd, error) {
				entries, err := m.sess.List()
				if err != nil {
					return nil, err
				}
				m.setEntries(entries)
				return nil, nil
			},
		},
		"pwd": {
			usage: "pwd", summary: "Print the current directory",
			run: func(args []string) (tea.Cmd, error) {
				ui.Output("%s", m.sess.Current())
				return nil, nil
			},
		},
		"cd": {
			usage: "cd [path]", summary: "Go to a path (absolute, relative or ~)", maxArgs: 1,
			run: func(args []string) (tea.Cmd, error) {
				target := "~"
				if len(args) == 1 {
					target = args[0]
				}
				entries, err := m.sess.Enter(target)
				return nil, m.navigated(entries, err)
			},
		},
		"up": {
			usage: "up", summary: "Go to the parent directory",
			run: func(args []string) (tea.Cmd, error) {
				entries, err := m.sess.Parent()
				return nil, m.navigated(entries, err)
			},
		},
		"open": {
			usage: "open <name>", summary: "Enter a directory or open a file", minArgs: 1, maxArgs: 1,
			run: func(args []string) (tea.Cmd, error) {
				entries, err := m.sess.Activate(m.ctx, args[0])
				if err != nil {
					return nil, err
				}
				if entries == nil {
					ui.Success("Opened %s", args[0])
					return nil, nil
				}
				return nil, m.navigated(entries, nil)
			},
		},
		"info": {
			usage: "info <name>", summary: "Show the properties of an entry", minArgs: 1, maxArgs: 1,
			run: func(args []string) (tea.Cmd, error) {
				props, err := m.sess.Properties(args[0])
				if err != nil {
					return nil, err
				}
				ui.PrintProperties(props)
				return nil, nil
			},
		},
		"mv": {
			usage: "mv <old> <new>", summary: "Rename an entry", minArgs: 2, maxArgs: 2,
			run: func(args []string) (tea.Cmd, error) {
				return nil, m.mutated(m.sess.Rename(args[0], args[1]))("Renamed %s to %s", args[0], args[1])
			},
		},
		"mkdir": {
			usage: "mkdir <name>", summary: "Create a folder", minArgs: 1, maxArgs: 1,
			run: func(args []string) (tea.Cmd, error) {
				return nil, m.mutated(m.sess.CreateFolder(args[0]))("Created folder %s", args[0])
			},
		},
		"touch": {
			usage: "touch <name>", summary: "Create an empty file", minArgs: 1, maxArgs: 1,
			run: func(args []string) (tea.Cmd, error) {
				return nil, m.mutated(m.sess.CreateFile(args[0]))("Created file %s", args[0])
			},
		},
		"rm": {
			usage: "rm <name>", summary: "Delete an entry after confirmation", minArgs: 1, maxArgs: 1,
			run: func(args []string) (tea.Cmd, error) {
				m.askDelete(args[0])
				return nil, nil
			},
		},
		"search": {
			usage: "search <keyword> [glob]", summary: "Search below the current directory in the background", minArgs: 1, maxArgs: 2,
			run: func(args []string) (tea.Cmd, error) {
				opts := m.searcher.Options()
				if len(args) == 2 {
					opts.Glob = args[1]
				}
				return m.startSearch(args[0], opts), nil
			},
		},
		"cancel": {
			usage: "cancel", summary: "Cancel the running search",
			run: func(args []string) (tea.Cmd, error) {
				if m.job == nil {
					ui.Info("No search is running")
					return nil, nil
				}
				m.job.Cancel()
				ui.Info("Cancelling search for %q", m.job.Keyword)
				return nil, nil
			},
		},
		"wait": {
			usage: "wait", summary: "Hold the prompt until the running search finishes",
			run: func(args []string) (tea.Cmd, error) {
				if m.job == nil {
					ui.Info("No search is running")
					return nil, nil
				}
				m.mode = modeWait
				return nil, nil
			},
		},
		"status": {
			usage: "status", summary: "Show the current directory and search state",
			run: func(args []string) (tea.Cmd, error) {
				ui.Output("Directory: %s", m.sess.Current())
				if m.job == nil {
					ui.Output("Search:    %s", search.StateIdle)
					return nil, nil
				}
				ui.Output("Search:    %s (%q under %s)", search.StateRunning, m.job.Keyword, m.job.Root)
				return nil, nil
			},
		},
		"hidden": {
			usage: "hidden on|off", summary: "Show or hide dotfiles", minArgs: 1, maxArgs: 1,
			run: func(args []string) (tea.Cmd, error) {
				opts := m.sess.ListOptions()
				switch args[0] {
				case "on":
					opts.ShowHidden = true
				case "off":
					opts.ShowHidden = false
				default:
					return nil, browser.ErrInvalidPath{Input: args[0], Reason: "expected on or off"}
				}
				m.sess.SetListOptions(opts)
				m.refresh()
				return nil, nil
			},
		},
		"sort": {
			usage: "sort name|modified|size|none", summary: "Change the listing order", minArgs: 1, maxArgs: 1,
			run: func(args []string) (tea.Cmd, error) {
				order, err := browser.ParseSortOrder(args[0])
				if err != nil {
					return nil, err
				}
				opts := m.sess.ListOptions()
				opts.Sort = order
				m.sess.SetListOptions(opts)
				m.refresh()
				return nil, nil
			},
		},
		"exit": {
			usage: "exit", summary: "Leave the browser",
			run: func(args []string) (tea.Cmd, error) {
				return m.quit(), nil
			},
		},
	}

	cmds["help"] = &command{
		usage: "help", summary: "Show this help",
		run: func(args []string) (tea.Cmd, error) {
			names := make([]string, 0, len(cmds))
			for name := range cmds {
				names = append(names, name)
			}
			sort.Strings(names)

			tbl := ui.NewTable("COMMAND", "DESCRIPTION")
			for _, name := range names {
				tbl.AddRow(cmds[name].usage, cmds[name].summary)
			}
			tbl.Print()
			return nil, nil
		},
	}
	cmds["quit"] = cmds["exit"]

	return cmds
}

// navigated shows the new directory from the top and records it
func (m *Model) navigated(entries []browser.Entry, err error) error {
	if err != nil {
		return err
	}
	m.cursor, m.offset = 0, 0
	m.setEntries(entries)
	m.remember()
	return nil
}

// mutated prints a success message and takes the refreshed listing
func (m *Model) mutated(entries []browser.Entry, err error) func(format string, args ...interface{}) error {
	return func(format string, args ...interface{}) error {
		if err != nil {
			return err
		}
		ui.Success(format, args...)
		m.setEntries(entries)
		return nil
	}
}
