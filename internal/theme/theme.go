package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Header        *lipgloss.Style
	StatusInfo    *lipgloss.Style
	StatusError   *lipgloss.Style
	Item          *lipgloss.Style
	SelectedItem  *lipgloss.Style
	DimmedItem    *lipgloss.Style
	TabActive     *lipgloss.Style
	TabInactive   *lipgloss.Style
	PanelTitle    *lipgloss.Style
	PanelFocused  *lipgloss.Style
	PanelBlurred  *lipgloss.Style
	Prompt        *lipgloss.Style
	Placeholder   *lipgloss.Style
	DialogTitle   *lipgloss.Style
	DialogBody    *lipgloss.Style
	DialogDanger  *lipgloss.Style
	CompletionKey *lipgloss.Style
	CompletionDoc *lipgloss.Style
}

var defaultStyles = Styles{
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	StatusInfo: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	StatusError: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Item: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	SelectedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	DimmedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	TabActive: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true).Underline(true),
	),
	TabInactive: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	PanelTitle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	PanelFocused: ptr(
		lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("33")),
	),
	PanelBlurred: ptr(
		lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")),
	),
	Prompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	Placeholder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	DialogTitle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
	),
	DialogBody: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	),
	DialogDanger: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	CompletionKey: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
	),
	CompletionDoc: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
