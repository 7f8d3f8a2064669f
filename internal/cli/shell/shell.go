// Package shell implements the interactive browser as a bubbletea program.
// The model owns the session; typed commands and key presses run against it
// in Update, and the background search reports back as a single message.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-shellwords"

	"github.com/aki/strex/internal/cli/ui"
	"github.com/aki/strex/internal/core/browser"
	"github.com/aki/strex/internal/core/logger"
	"github.com/aki/strex/internal/core/search"
	"github.com/aki/strex/internal/core/session"
)

// Rows reserved for the header, output and prompt when sizing the listing
const chromeHeight = 10

type mode int

const (
	modeCommand mode = iota
	modePath
	modeConfirm
	modeWait
)

// Options configures a Model
type Options struct {
	// In and Out default to os.Stdin and the ui output.
	In  io.Reader
	Out io.Writer
	// Store, when set, records the current directory after navigation.
	Store     *session.Store
	Logger    logger.Logger
	AltScreen bool
}

// searchResultMsg carries the one result of a search job
type searchResultMsg struct {
	search.Result
}

// Model is the interactive browser bound to one session
type Model struct {
	ctx      context.Context
	sess     *session.Session
	searcher *search.Searcher
	store    *session.Store
	logger   logger.Logger
	opts     Options
	parser   *shellwords.Parser
	commands map[string]*command

	input     textinput.Model
	pathInput textinput.Model
	mode      mode

	entries []browser.Entry
	cursor  int
	offset  int
	height  int

	// output is what the last command or search printed
	output        string
	pendingDelete string
	job           *search.Job
	quitting      bool
}

// New creates a browser over sess. The searcher's default options apply to
// every search; a glob argument narrows one search.
func New(sess *session.Session, searcher *search.Searcher, opts Options) *Model {
	m := &Model{
		ctx:      context.Background(),
		sess:     sess,
		searcher: searcher,
		store:    opts.Store,
		logger:   opts.Logger,
		opts:     opts,
	}
	if m.logger == nil {
		m.logger = logger.Nop()
	}

	m.parser = shellwords.NewParser()
	m.parser.ParseEnv = false
	m.parser.ParseBacktick = false

	m.input = textinput.New()
	m.input.Placeholder = "type a command, or enter to open the selection"
	m.input.Prompt = "> "
	m.input.PromptStyle = ui.KeyStyle
	m.input.CharLimit = 1024
	m.input.Focus()

	m.pathInput = textinput.New()
	m.pathInput.Prompt = "Go to: "
	m.pathInput.PromptStyle = ui.KeyStyle
	m.pathInput.CharLimit = 4096

	m.commands = m.commandTable()
	m.output = ui.Capture(func() { m.refresh() })
	return m
}

// Run starts the program and blocks until the user leaves, the input ends
// in an exit command or ctx is cancelled. A running search is cancelled on
// return.
func (m *Model) Run(ctx context.Context) error {
	m.ctx = ctx
	defer m.cancelSearch()

	in, out := m.opts.In, m.opts.Out
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = ui.Stdout()
	}

	programOpts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	}
	if m.opts.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}

	if _, err := tea.NewProgram(m, programOpts...).Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("browser stopped: %w", err)
	}
	return nil
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.input.Width = msg.Width - len(m.input.Prompt) - 1
		m.pathInput.Width = msg.Width - len(m.pathInput.Prompt) - 1
		m.scroll()
		return m, nil

	case searchResultMsg:
		m.searchFinished(msg.Result)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, m.quit()
		}
		switch m.mode {
		case modePath:
			return m, m.updatePath(msg)
		case modeConfirm:
			m.updateConfirm(msg)
			return m, nil
		case modeWait:
			if msg.String() == "esc" {
				m.mode = modeCommand
				m.output = ui.Capture(func() { ui.Info("Stopped waiting; the search keeps running") })
			}
			return m, nil
		default:
			return m, m.updateCommand(msg)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) updateCommand(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up":
		m.moveCursor(-1)
		return nil
	case "down":
		m.moveCursor(1)
		return nil
	case "pgup":
		m.moveCursor(-m.visibleRows())
		return nil
	case "pgdown":
		m.moveCursor(m.visibleRows())
		return nil
	case "ctrl+l":
		m.mode = modePath
		m.pathInput.SetValue(m.sess.Current())
		m.pathInput.CursorEnd()
		m.input.Blur()
		return m.pathInput.Focus()
	case "esc":
		m.input.Reset()
		return nil
	case "delete":
		if m.input.Value() == "" {
			if e, ok := m.selected(); ok {
				m.output = ui.Capture(func() { m.askDelete(e.Name) })
			}
			return nil
		}
	case "enter":
		line := strings.TrimSpace(m.input.Value())
		m.input.Reset()
		if line == "" {
			return m.activateSelected()
		}
		return m.execute(line)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) updatePath(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		target := strings.TrimSpace(m.pathInput.Value())
		m.leavePath()
		if target == "" {
			return nil
		}
		m.output = ui.Capture(func() {
			entries, err := m.sess.Enter(target)
			m.report(m.navigated(entries, err))
		})
		return nil
	case "esc":
		m.leavePath()
		return nil
	}

	var cmd tea.Cmd
	m.pathInput, cmd = m.pathInput.Update(msg)
	return cmd
}

func (m *Model) leavePath() {
	m.mode = modeCommand
	m.pathInput.Blur()
	m.pathInput.Reset()
	m.input.Focus()
}

// updateConfirm answers the pending delete question; only y accepts
func (m *Model) updateConfirm(msg tea.KeyMsg) {
	name := m.pendingDelete
	m.pendingDelete = ""
	m.mode = modeCommand
	m.input.Focus()

	accepted := msg.String() == "y" || msg.String() == "Y"
	m.output = ui.Capture(func() {
		entries, deleted, err := m.sess.Delete(name, func(string) bool { return accepted })
		switch {
		case err != nil:
			m.report(err)
		case !deleted:
			ui.Info("Kept %s", name)
		default:
			m.report(m.mutated(entries, nil)("Deleted %s", name))
		}
	})
}

// askDelete switches to the confirmation prompt unless name cannot be deleted
func (m *Model) askDelete(name string) {
	if err := m.sess.CheckDelete(name); err != nil {
		m.report(err)
		return
	}
	m.pendingDelete = name
	m.mode = modeConfirm
	m.input.Blur()
}

func (m *Model) activateSelected() tea.Cmd {
	e, ok := m.selected()
	if !ok {
		return nil
	}
	var cmd tea.Cmd
	m.output = ui.Capture(func() { cmd = m.dispatch("open", []string{e.Name}) })
	return cmd
}

// execute runs one command line and keeps what it printed as the output
func (m *Model) execute(line string) tea.Cmd {
	var cmd tea.Cmd
	m.output = ui.Capture(func() {
		args, err := m.parser.Parse(line)
		if err != nil {
			ui.Error("cannot parse input: %v", err)
			return
		}
		if len(args) > 0 {
			cmd = m.dispatch(args[0], args[1:])
		}
	})
	return cmd
}

// dispatch runs a command. Command errors are printed and never end the
// program.
func (m *Model) dispatch(name string, args []string) tea.Cmd {
	c, ok := m.commands[strings.ToLower(name)]
	if !ok {
		ui.Error("unknown command %q, type help for a list of commands", name)
		return nil
	}
	if len(args) < c.minArgs || (c.maxArgs >= 0 && len(args) > c.maxArgs) {
		ui.Error("usage: %s", c.usage)
		return nil
	}

	cmd, err := c.run(args)
	if err != nil {
		m.logger.Debug("command failed", "command", name, "error", err)
		m.report(err)
	}
	return cmd
}

func (m *Model) report(err error) {
	if err != nil {
		ui.Error("%v", err)
	}
}

// startSearch starts a job below the current directory. The returned
// command delivers the job's result as a single message.
func (m *Model) startSearch(keyword string, opts search.Options) tea.Cmd {
	if m.job != nil {
		ui.Info("Previous search for %q cancelled", m.job.Keyword)
	}
	job := m.searcher.StartWith(m.ctx, keyword, m.sess.Current(), opts)
	m.job = job
	ui.Info("Searching for %q under %s", keyword, job.Root)

	return func() tea.Msg {
		return searchResultMsg{<-job.Done()}
	}
}

// searchFinished shows a result unless a newer search replaced its job
func (m *Model) searchFinished(res search.Result) {
	if m.job == nil || res.ID != m.job.ID {
		m.logger.Debug("dropping superseded search result", "id", res.ID)
		return
	}
	m.job = nil
	if m.mode == modeWait {
		m.mode = modeCommand
	}

	m.output = ui.Capture(func() {
		if errors.Is(res.Err, context.Canceled) {
			ui.Info("Search for %q cancelled", res.Keyword)
			return
		}
		ui.PrintSearchResult(res)
	})
}

func (m *Model) cancelSearch() {
	if m.job != nil {
		m.job.Cancel()
	}
}

func (m *Model) quit() tea.Cmd {
	m.cancelSearch()
	m.quitting = true
	return tea.Quit
}

// refresh reloads the listing of the current directory
func (m *Model) refresh() {
	entries, err := m.sess.List()
	if err != nil {
		m.report(err)
		return
	}
	m.setEntries(entries)
}

func (m *Model) setEntries(entries []browser.Entry) {
	m.entries = entries
	if m.cursor >= len(entries) {
		m.cursor = len(entries) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.scroll()
}

func (m *Model) selected() (browser.Entry, bool) {
	if m.cursor < 0 || m.cursor >= len(m.entries) {
		return browser.Entry{}, false
	}
	return m.entries[m.cursor], true
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	if m.cursor >= len(m.entries) {
		m.cursor = len(m.entries) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.scroll()
}

func (m *Model) visibleRows() int {
	if m.height == 0 {
		return len(m.entries)
	}
	return max(m.height-chromeHeight, 3)
}

// scroll keeps the cursor inside the visible window of the listing
func (m *Model) scroll() {
	rows := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	if m.offset > len(m.entries)-rows {
		m.offset = max(len(m.entries)-rows, 0)
	}
}

// remember persists the current directory when a store is configured
func (m *Model) remember() {
	if m.store == nil {
		return
	}
	if err := m.store.Save(m.ctx, m.sess); err != nil {
		m.logger.Warn("failed to save session state", "error", err)
	}
}

func (m *Model) View() string {
	var b strings.Builder

	header := fmt.Sprintf("%s %s", ui.FolderIcon, ui.PathStyle.Render(m.sess.Current()))
	if m.job != nil {
		header += "  " + ui.DimStyle.Render(fmt.Sprintf("%s searching for %q", ui.SearchIcon, m.job.Keyword))
	}
	b.WriteString(header + "\n")

	end := min(m.offset+m.visibleRows(), len(m.entries))
	window := m.entries[m.offset:end]
	b.WriteString(ui.Capture(func() { ui.PrintEntries(window, m.cursor-m.offset) }))
	b.WriteString("\n" + ui.DimStyle.Render(fmt.Sprintf("%d items", ui.ItemCount(m.entries))) + "\n")

	if m.output != "" {
		b.WriteString("\n" + m.output + "\n")
	}
	if m.quitting {
		return b.String()
	}

	b.WriteString("\n")
	switch m.mode {
	case modePath:
		b.WriteString(m.pathInput.View())
	case modeConfirm:
		b.WriteString(ui.WarningStyle.Render(ui.ConfirmDeleteQuestion(m.pendingDelete)))
	case modeWait:
		b.WriteString(ui.DimStyle.Render("Waiting for the search to finish (esc to stop waiting)"))
	default:
		b.WriteString(m.input.View())
	}
	b.WriteString("\n" + ui.DimStyle.Render("↑/↓ select · enter open · del delete · ctrl+l go to · help · ctrl+c quit"))
	return b.String()
}
