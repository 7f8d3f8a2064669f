package ui

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

var (
	outMu  sync.Mutex
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
	stdin            = bufio.NewReader(os.Stdin)
)

// SetOutput redirects normal and error output. Nil leaves a stream unchanged.
func SetOutput(out, errOut io.Writer) {
	outMu.Lock()
	defer outMu.Unlock()
	if out != nil {
		stdout = out
	}
	if errOut != nil {
		stderr = errOut
	}
}

// SetInput replaces the reader used by Prompt and Confirm
func SetInput(r io.Reader) {
	outMu.Lock()
	defer outMu.Unlock()
	stdin = bufio.NewReader(r)
}

// Stdout returns the current output writer
func Stdout() io.Writer {
	outMu.Lock()
	defer outMu.Unlock()
	return stdout
}

// Stderr returns the current error writer
func Stderr() io.Writer {
	outMu.Lock()
	defer outMu.Unlock()
	return stderr
}

// Capture runs fn with normal and error output collected, and returns what
// was printed without the trailing newline. The interactive browser uses it
// to place command output inside its view.
func Capture(fn func()) string {
	var buf bytes.Buffer

	outMu.Lock()
	prevOut, prevErr := stdout, stderr
	stdout, stderr = &buf, &buf
	outMu.Unlock()

	defer func() {
		outMu.Lock()
		stdout, stderr = prevOut, prevErr
		outMu.Unlock()
	}()

	fn()
	return strings.TrimRight(buf.String(), "\n")
}

// Output prints a formatted line to standard output
func Output(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(Stdout(), format+"\n", args...)
}

// Raw prints text without a trailing newline
func Raw(text string) {
	_, _ = io.WriteString(Stdout(), text)
}

// Error prints an error message to standard error
func Error(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(Stderr(), "%s %s\n", ErrorIcon, ErrorStyle.Render(fmt.Sprintf(format, args...)))
}

// Success prints a success message
func Success(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(Stdout(), "%s %s\n", SuccessIcon, SuccessStyle.Render(fmt.Sprintf(format, args...)))
}

// Info prints an informational message
func Info(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(Stdout(), "%s %s\n", InfoIcon, InfoStyle.Render(fmt.Sprintf(format, args...)))
}

// Warning prints a warning message
func Warning(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(Stdout(), "%s %s\n", WarningIcon, WarningStyle.Render(fmt.Sprintf(format, args...)))
}

// Prompt prints question and returns the trimmed answer line
func Prompt(question string) string {
	Raw(question)

	outMu.Lock()
	r := stdin
	outMu.Unlock()

	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimSpace(line)
}

// IsYes reports whether answer accepts a yes/no question
func IsYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// ConfirmDeleteQuestion is the question asked before deleting name
func ConfirmDeleteQuestion(name string) string {
	return fmt.Sprintf("Are you sure you want to delete %s? (y/N): ", name)
}

// ConfirmDelete asks before deleting name; anything but yes declines
func ConfirmDelete(name string) bool {
	return IsYes(Prompt(ConfirmDeleteQuestion(name)))
}

// FormatDuration formats a duration into a short human-readable string
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return "< 1ms"
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	default:
		return fmt.Sprintf("%dh", int(d.Hours()))
	}
}

// FormatTime formats a time relative to now for display
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}

	diff := time.Since(t)
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return plural(int(diff.Minutes()), "minute") + " ago"
	case diff < 24*time.Hour:
		return plural(int(diff.Hours()), "hour") + " ago"
	case diff < 7*24*time.Hour:
		return plural(int(diff.Hours()/24), "day") + " ago"
	default:
		return t.Format("2006-01-02 15:04")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
