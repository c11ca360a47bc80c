package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/shiftdeck/internal/navigation"
	"github.com/muurk/shiftdeck/internal/operation"
	"github.com/muurk/shiftdeck/internal/timeshift"
)

// View implements tea.Model
func (m AppModel) View() string {
	vs := m.ViewState()

	var content string
	if vs.Screen.Kind == navigation.SnapshotScreen {
		content = m.buildSnapshotContent(vs)
	} else {
		content = m.buildDeviceContent(vs)
	}

	footer := m.help.View(m.helpFor(vs))
	return RenderApplicationContainer(content, BuildHeaderContent(m.command), footer, m.Width, m.Height)
}

func (m AppModel) buildDeviceContent(vs ViewState) string {
	var b strings.Builder

	b.WriteString(RenderTitle("Backup devices"))
	b.WriteString("\n")
	b.WriteString(ColumnHeaderStyle.Render("num | name | size | type | label"))
	b.WriteString("\n")

	devices := m.inv.Devices()
	rows := make([]string, len(devices))
	for i, d := range devices {
		rows[i] = d.String()
	}
	b.WriteString(m.renderRows(rows, vs.Cursor, 0))

	b.WriteString(renderMessages(vs))
	return b.String()
}

func (m AppModel) buildSnapshotContent(vs ViewState) string {
	var b strings.Builder
	device := vs.Screen.Device

	b.WriteString(RenderTitle("Snapshots on " + device))
	b.WriteString("\n")

	snaps := m.inv.Snapshots(device)
	if len(snaps) == 0 {
		b.WriteString(EmptyListStyle.Render("No snapshots on this device"))
		b.WriteString("\n")
	} else {
		b.WriteString(ColumnHeaderStyle.Render("num | name | tag | description"))
		b.WriteString("\n")

		rows := make([]string, len(snaps))
		for i, s := range snaps {
			rows[i] = s.String()
		}
		b.WriteString(m.renderRows(rows, vs.Cursor, panelHeight(vs.Overlay)))
	}

	switch vs.Overlay {
	case navigation.ConfirmingDeletion:
		if snap, ok := m.inv.SnapshotAt(device, vs.Cursor); ok {
			b.WriteString(renderConfirmPanel(snap))
		}
	case navigation.EnteringCreateComment:
		b.WriteString(m.renderCommentPanel(device))
	case navigation.Deleting, navigation.Creating:
		b.WriteString(m.renderBusyPanel(vs))
	default:
		b.WriteString(renderMessages(vs))
	}

	return b.String()
}

// renderRows renders the window of rows that fits the content area and
// keeps the cursor visible.
func (m AppModel) renderRows(rows []string, cursor, reserved int) string {
	height := m.Height - chromeHeight - 4 - reserved
	start, end := visibleRange(cursor, len(rows), height)

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(RenderListItem(rows[i], i == cursor))
		b.WriteString("\n")
	}
	if end < len(rows) {
		b.WriteString(SubtitleStyle.Render(fmt.Sprintf("  … %d more", len(rows)-end)))
		b.WriteString("\n")
	}
	return b.String()
}

// visibleRange returns the [start, end) slice of n rows to draw in height
// lines so that cursor is on screen.
func visibleRange(cursor, n, height int) (int, int) {
	if height < 1 {
		height = 1
	}
	if n <= height {
		return 0, n
	}
	start := 0
	if cursor >= height {
		start = cursor - height + 1
	}
	return start, start + height
}

func panelHeight(o navigation.Overlay) int {
	switch o {
	case navigation.ConfirmingDeletion:
		return 8
	case navigation.EnteringCreateComment:
		return 7
	case navigation.Deleting, navigation.Creating:
		return 5
	default:
		return 0
	}
}

func renderConfirmPanel(snap timeshift.Snapshot) string {
	lines := []string{
		PanelTitleStyle.Foreground(WarningColor).Render("⚠ Confirm deletion"),
		"",
		"Delete snapshot " + HighlightStyle.Render(snap.Name) + "?",
		"",
		WarningStyle.Render("This cannot be undone."),
		"",
		"Confirm " + KeyHintStyle.Render("<y>") + "   Cancel " + CancelHintStyle.Render("<n/esc>"),
	}
	return ConfirmPanelStyle.Render(strings.Join(lines, "\n")) + "\n"
}

func (m AppModel) renderCommentPanel(device string) string {
	lines := []string{
		PanelTitleStyle.Render("Create a snapshot on " + device),
		SubtitleStyle.Render("Type a comment for the new snapshot."),
		"",
		m.input.View(),
		"",
		KeyHintStyle.Render("<enter>") + " create   " + CancelHintStyle.Render("<esc>") + " cancel",
	}
	return InputPanelStyle.Render(strings.Join(lines, "\n")) + "\n"
}

func (m AppModel) renderBusyPanel(vs ViewState) string {
	var label string
	if req, ok := m.Pending(); ok && req.Kind == operation.Delete {
		label = "Deleting snapshot " + req.Snapshot
	} else {
		label = "Creating snapshot"
	}

	lines := []string{
		vs.Spinner + " " + PanelTitleStyle.Render(label+"…"),
		"",
		SubtitleStyle.Render("Please wait, timeshift is running."),
	}
	return BusyPanelStyle.Render(strings.Join(lines, "\n")) + "\n"
}

func renderMessages(vs ViewState) string {
	switch {
	case vs.Diagnostic != "":
		body := lipgloss.JoinVertical(lipgloss.Left,
			PanelTitleStyle.Render("✗ "+vs.Failure),
			vs.Diagnostic,
		)
		return ErrorPanelStyle.Render(body) + "\n"
	case vs.Status != "":
		return StatusStyle.Render("✓ "+vs.Status) + "\n"
	default:
		return ""
	}
}

// helpFor returns the bindings that are live in the current state.
func (m AppModel) helpFor(vs ViewState) helpSet {
	k := m.keys

	switch vs.Overlay {
	case navigation.ConfirmingDeletion:
		return helpSet{k.Confirm, k.Cancel}
	case navigation.EnteringCreateComment:
		return helpSet{k.Submit, k.Abort}
	case navigation.Deleting, navigation.Creating:
		return helpSet{}
	}

	if vs.Screen.Kind == navigation.DeviceScreen {
		quit := k.Back
		quit.SetHelp("q", "quit")
		return helpSet{k.Up, k.Down, k.First, k.Last, k.Choose, quit}
	}
	return helpSet{k.Up, k.Down, k.First, k.Last, k.Delete, k.Create, k.Back}
}
