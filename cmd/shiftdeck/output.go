package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/term"

	"github.com/muurk/shiftdeck/internal/inventory"
	"github.com/muurk/shiftdeck/internal/timeshift"
	"github.com/muurk/shiftdeck/internal/tui"
)

const (
	defaultWidth = 100
	minWidth     = 40
)

// Listing styles, sharing the interactive interface's palette.
var (
	headingStyle = lipgloss.NewStyle().
			Foreground(tui.PrimaryColor).
			Bold(true)

	successMarkStyle = lipgloss.NewStyle().
				Foreground(tui.SecondaryColor).
				Bold(true)

	successBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(tui.SecondaryColor).
			Padding(0, 1)
)

// printer writes listings for the non-interactive commands.
type printer struct {
	out    io.Writer
	width  int
	styled bool

	// Column color functions (plain in tests)
	yellow func(a ...interface{}) string
	cyan   func(a ...interface{}) string
	gray   func(a ...interface{}) string
}

func newPrinter(out io.Writer) *printer {
	return &printer{
		out:    out,
		width:  terminalWidth(),
		styled: true,
		yellow: color.New(color.FgYellow).SprintFunc(),
		cyan:   color.New(color.FgCyan).SprintFunc(),
		gray:   color.New(color.FgHiBlack).SprintFunc(),
	}
}

// newPlainPrinter returns a printer without styling and a fixed width.
func newPlainPrinter(out io.Writer, width int) *printer {
	plain := func(a ...interface{}) string { return fmt.Sprint(a...) }
	return &printer{
		out:    out,
		width:  width,
		yellow: plain,
		cyan:   plain,
		gray:   plain,
	}
}

func (p *printer) heading(s string) string {
	if !p.styled {
		return s
	}
	return headingStyle.Render(s)
}

// terminalWidth returns the stdout width, or defaultWidth when stdout is
// not a terminal.
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}
	if width < minWidth {
		return minWidth
	}
	return width
}

func (p *printer) printDevices(inv *inventory.Inventory) {
	devices := inv.Devices()
	fmt.Fprintf(p.out, "%s\n\n", p.heading(fmt.Sprintf("%d backup device(s)", len(devices))))

	for _, d := range devices {
		label := d.Label
		if label == "" {
			label = p.gray("-")
		}
		fmt.Fprintf(p.out, "  %s  %s  %s  %s  %s  %s\n",
			p.gray(fmt.Sprintf("%3d", d.Num)),
			p.cyan(d.Name),
			d.Size,
			d.Type,
			label,
			p.yellow(fmt.Sprintf("%d snapshot(s)", inv.SnapshotCount(d.Name))),
		)
	}

	if n := len(inv.Warnings()); n > 0 {
		fmt.Fprintf(p.out, "\n%s\n", p.gray(fmt.Sprintf("%d malformed row(s) skipped; run with --log-level warn for details", n)))
	}
}

func (p *printer) printSnapshots(device string, snaps []timeshift.Snapshot, total int) {
	if total == 0 {
		fmt.Fprintf(p.out, "No snapshots on %s\n", device)
		return
	}

	header := fmt.Sprintf("%d snapshot(s) on %s", len(snaps), device)
	if len(snaps) != total {
		header = fmt.Sprintf("%d of %d snapshot(s) on %s", len(snaps), total, device)
	}
	fmt.Fprintf(p.out, "%s\n\n", p.heading(header))

	// "  NNN  <name>  T  " precedes the description
	descWidth := p.width - 2 - 3 - 2 - 19 - 2 - 1 - 2
	for _, s := range snaps {
		fmt.Fprintf(p.out, "  %s  %s  %s  %s\n",
			p.gray(fmt.Sprintf("%3d", s.Num)),
			p.cyan(s.Name),
			p.yellow(string(s.Tag)),
			truncate(s.Description, descWidth),
		)
	}
}

// success reports a completed action, boxed when styled.
func (p *printer) success(msg string) {
	if !p.styled {
		fmt.Fprintf(p.out, "✓ %s\n", msg)
		return
	}
	fmt.Fprintln(p.out, successBoxStyle.Render(successMarkStyle.Render("✓")+" "+msg))
}

// truncate shortens s to width runes, marking the cut with an ellipsis.
func truncate(s string, width int) string {
	if width < 4 {
		width = 4
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}

// filterSnapshots keeps the snapshots whose name or description fuzzily
// matches query, in their original order. An empty query keeps everything.
func filterSnapshots(snaps []timeshift.Snapshot, query string) []timeshift.Snapshot {
	query = strings.TrimSpace(query)
	if query == "" {
		return snaps
	}

	labels := make([]string, len(snaps))
	for i, s := range snaps {
		labels[i] = s.Name + " " + s.Description
	}

	matched := make(map[int]struct{})
	for _, rank := range fuzzy.RankFindNormalizedFold(query, labels) {
		matched[rank.OriginalIndex] = struct{}{}
	}

	filtered := make([]timeshift.Snapshot, 0, len(matched))
	for i, s := range snaps {
		if _, ok := matched[i]; ok {
			filtered = append(filtered, s)
		}
	}
	return filtered
}
