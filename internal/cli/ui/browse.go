package ui

import (
	"fmt"
	"time"

	"github.com/aki/strex/internal/core/browser"
	"github.com/aki/strex/internal/core/search"
)

// Listing is the JSON shape of a directory listing
type Listing struct {
	Path    string          `json:"path"`
	Entries []browser.Entry `json:"entries"`
}

// SearchView is the JSON shape of a finished search
type SearchView struct {
	ID        string   `json:"id"`
	Keyword   string   `json:"keyword"`
	Root      string   `json:"root"`
	Paths     []string `json:"paths"`
	ElapsedMS int64    `json:"elapsed_ms"`
	Error     string   `json:"error,omitempty"`
}

// NewSearchView converts a search result for output
func NewSearchView(r search.Result) SearchView {
	v := SearchView{
		ID:        r.ID,
		Keyword:   r.Keyword,
		Root:      r.Root,
		Paths:     r.Paths,
		ElapsedMS: r.Elapsed.Milliseconds(),
	}
	if v.Paths == nil {
		v.Paths = []string{}
	}
	if r.Err != nil {
		v.Error = r.Err.Error()
	}
	return v
}

// ShowListing prints the listing of dir in the global format
func ShowListing(dir string, entries []browser.Entry) error {
	if GlobalFormatter.IsJSON() {
		return GlobalFormatter.Output(Listing{Path: dir, Entries: entries})
	}
	PrintListing(dir, entries)
	return nil
}

// PrintListing prints a directory listing as a table
func PrintListing(dir string, entries []browser.Entry) {
	Output("%s %s", FolderIcon, PathStyle.Render(dir))

	PrintEntries(entries, -1)
	Output("%s", DimStyle.Render(fmt.Sprintf("%d items", ItemCount(entries))))
}

// PrintEntries prints listing rows as a table. When selected is a valid
// index a marker column points at that row.
func PrintEntries(entries []browser.Entry, selected int) {
	marked := selected >= 0 && selected < len(entries)

	headers := []interface{}{"NAME", "DATE MODIFIED", "SIZE"}
	if marked {
		headers = append([]interface{}{""}, headers...)
	}
	tbl := NewTable(headers...)
	for i, e := range entries {
		row := []interface{}{entryLabel(e), e.ModifiedString(), e.SizeKB()}
		if marked {
			marker := " "
			if i == selected {
				marker = CursorIcon
			}
			row = append([]interface{}{marker}, row...)
		}
		tbl.AddRow(row...)
	}
	tbl.Print()
}

// ItemCount counts the real entries of a listing
func ItemCount(entries []browser.Entry) int {
	count := 0
	for _, e := range entries {
		if !e.Parent {
			count++
		}
	}
	return count
}

func entryLabel(e browser.Entry) string {
	switch {
	case e.Parent:
		return ParentIcon + " " + e.Name
	case e.Kind == browser.KindDirectory:
		return FolderIcon + " " + DirStyle.Render(e.Name)
	default:
		return FileIcon + " " + e.Name
	}
}

// ShowProperties prints the properties of one entry in the global format
func ShowProperties(p *browser.Properties) error {
	if GlobalFormatter.IsJSON() {
		return GlobalFormatter.Output(p)
	}
	PrintProperties(p)
	return nil
}

// PrintProperties prints the properties of one entry
func PrintProperties(p *browser.Properties) {
	icon := FileIcon
	if p.Kind == browser.KindDirectory {
		icon = FolderIcon
	}
	Output("%s %s", icon, BoldStyle.Render(p.Name))
	field("Path", p.Path)
	field("Size", p.SizeKB())
	field("Date Modified", p.Modified.Format("2006-01-02 15:04:05"))
	field("Type", p.Kind.String())
	field("Mode", p.Mode)
	if p.Symlink != "" {
		field("Link target", p.Symlink)
	}
	if p.MIMEType != "" {
		field("MIME type", p.MIMEType)
	}
	if repo := p.Repository; repo != nil {
		field("Repository", repo.Root)
		if repo.CurrentBranch != "" {
			field("Branch", repo.CurrentBranch)
		}
		if repo.RemoteURL != "" {
			field("Remote", repo.RemoteURL)
		}
	}
}

func field(label, value string) {
	Output("   %s %s", DimStyle.Render(label+":"), value)
}

// ShowSearchResult prints a finished search in the global format
func ShowSearchResult(r search.Result) error {
	if GlobalFormatter.IsJSON() {
		return GlobalFormatter.Output(NewSearchView(r))
	}
	PrintSearchResult(r)
	return nil
}

// PrintSearchResult prints the paths found by a search, or why it ended early
func PrintSearchResult(r search.Result) {
	if r.Err != nil {
		Error("search for %q in %s failed: %v", r.Keyword, r.Root, r.Err)
		return
	}
	if len(r.Paths) == 0 {
		Info("No files matching %q under %s (%s)", r.Keyword, r.Root, FormatDuration(r.Elapsed))
		return
	}

	PrintSectionHeader(SearchIcon, fmt.Sprintf("Files matching %q", r.Keyword), len(r.Paths))
	for _, p := range r.Paths {
		Output("  %s", p)
	}
	Output("%s", DimStyle.Render(fmt.Sprintf("searched %s in %s", r.Root, FormatDuration(r.Elapsed))))
}

// PrintSearchStarted announces a background search
func PrintSearchStarted(id, keyword, root string, startedAt time.Time) {
	Info("Searching for %q under %s (job %s, started %s)", keyword, root, shortID(id), startedAt.Format("15:04:05"))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
