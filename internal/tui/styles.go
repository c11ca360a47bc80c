package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/shiftdeck/internal/version"
)

// AppName is shown in the header of every screen.
const AppName = "SHIFTDECK"

// Layout constants
const (
	MinTerminalWidth  = 60
	MinTerminalHeight = 16

	// chromeHeight is the number of rows used by the outer border, header
	// and footer around the content area.
	chromeHeight = 7
)

// Color palette
var (
	PrimaryColor   = lipgloss.Color("#7D56F4") // Purple
	SecondaryColor = lipgloss.Color("#43BF6D") // Green
	WarningColor   = lipgloss.Color("#FFA500") // Orange
	ErrorColor     = lipgloss.Color("#FF5F5F") // Red
	BusyColor      = lipgloss.Color("#5FD7FF") // Cyan

	TextColor   = lipgloss.Color("#FFFFFF")
	SubtleColor = lipgloss.Color("#626262")
	BorderColor = PrimaryColor
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Italic(true)

	ColumnHeaderStyle = lipgloss.NewStyle().
				Foreground(SubtleColor).
				Bold(true).
				PaddingLeft(2)

	ListItemStyle = lipgloss.NewStyle().
			PaddingLeft(2).
			Foreground(TextColor)

	SelectedListItemStyle = lipgloss.NewStyle().
				Foreground(SecondaryColor).
				Bold(true)

	EmptyListStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Italic(true).
			PaddingLeft(2)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(BusyColor)

	// Inline panels shown below the list
	ConfirmPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(WarningColor).
				Padding(0, 2).
				MarginTop(1)

	InputPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(WarningColor).
			Padding(0, 2).
			MarginTop(1)

	BusyPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BusyColor).
			Padding(0, 2).
			MarginTop(1)

	ErrorPanelStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ErrorColor).
			Padding(0, 2).
			MarginTop(1)

	StatusStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			MarginTop(1)

	PanelTitleStyle = lipgloss.NewStyle().Bold(true)
	WarningStyle    = lipgloss.NewStyle().Foreground(ErrorColor)
	HighlightStyle  = lipgloss.NewStyle().Foreground(WarningColor).Bold(true)
	KeyHintStyle    = lipgloss.NewStyle().Foreground(SecondaryColor).Bold(true)
	CancelHintStyle = lipgloss.NewStyle().Foreground(ErrorColor).Bold(true)
)

// RenderTitle renders a screen title
func RenderTitle(text string) string {
	return TitleStyle.Render(text)
}

// RenderListItem renders a row with a selection marker
func RenderListItem(text string, selected bool) string {
	if selected {
		return SelectedListItemStyle.Render("> " + text)
	}
	return ListItemStyle.Render(text)
}

// BuildHeaderContent creates header content with the app name, version and
// the command being driven.
func BuildHeaderContent(command string) string {
	left := lipgloss.NewStyle().
		Foreground(TextColor).
		Bold(true).
		Render(AppName + " " + version.Short())

	right := lipgloss.NewStyle().
		Foreground(SubtleColor).
		Render(command)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

// RenderApplicationContainer wraps a screen with the bordered full-terminal
// frame: header on top, help footer pinned at the bottom.
func RenderApplicationContainer(content, header, footer string, width, height int) string {
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}
	if height < MinTerminalHeight {
		height = MinTerminalHeight
	}

	headerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderForeground(BorderColor).
		Width(width-4).
		Padding(0, 1)

	footerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Top: "─"}).
		BorderForeground(BorderColor).
		Foreground(SubtleColor).
		Width(width-4).
		Padding(0, 1)

	contentStyle := lipgloss.NewStyle().
		Width(width-4).
		Height(height-chromeHeight).
		Padding(0, 1)

	inner := lipgloss.JoinVertical(
		lipgloss.Left,
		headerStyle.Render(header),
		contentStyle.Render(content),
		footerStyle.Render(footer),
	)

	bordered := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(BorderColor).
		Width(width - 2).
		Height(height - 2).
		AlignVertical(lipgloss.Top).
		Render(inner)

	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, bordered)
}
