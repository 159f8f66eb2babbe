package ui

import (
	"fmt"
	"strings"

	"featboard/internal/format/table"
	"featboard/internal/ui/editsession"
	"featboard/internal/ui/focus"
	"featboard/internal/ui/mode"
	"featboard/internal/ui/state"
	"github.com/charmbracelet/lipgloss"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	// header + tab row + status line.
	chromeHeight = 3
	minNavWidth  = 24
)

func (m *Model) viewWidth() int {
	if m.width > 0 {
		return m.width
	}
	return defaultWidth
}

func (m *Model) viewHeight() int {
	if m.height > 0 {
		return m.height
	}
	return defaultHeight
}

// contentHeight is the line budget of the right-hand panel body.
func (m *Model) contentHeight() int {
	h := m.viewHeight() - chromeHeight
	if h < 1 {
		return 1
	}
	return h
}

// navHeight is the row budget of the navigator listing.
func (m *Model) navHeight() int {
	return m.contentHeight()
}

func (m *Model) navWidth() int {
	w := m.viewWidth() / 3
	if w < minNavWidth {
		w = minNavWidth
	}
	return w
}

// View is part of the tea.Model interface.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")

	if overlay := m.modes.Active(); overlay != nil {
		b.WriteString(m.overlayView(overlay))
	} else {
		left := m.navigatorView()
		right := m.contentView()
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right))
	}

	b.WriteString("\n")
	b.WriteString(m.statusView())
	return b.String()
}

func (m *Model) headerView() string {
	title := "featboard"
	if selected, ok := m.selectedFeature(); ok {
		title += "  •  " + selected.Name
	}
	return styles.Header.Render(title)
}

func (m *Model) statusView() string {
	if m.statusMsg == "" {
		return styles.StatusInfo.Render("/ commands  •  ? via /help")
	}
	if m.statusErr {
		return styles.StatusError.Render(m.statusMsg)
	}
	return styles.StatusInfo.Render(m.statusMsg)
}

func (m *Model) navigatorView() string {
	title := styles.PanelTitle.Render("Features")
	if m.focus.Current() == focus.PanelNavigator {
		title = styles.TabActive.Render("Features")
	}

	rows := make([][]string, 0, len(m.features))
	for _, f := range m.features {
		rows = append(rows, []string{f.Name, f.Status, fmt.Sprintf("%d", f.TaskCount)})
	}
	lines := table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignLeft, table.AlignRight})
	selIdx := m.featureSel.Index()
	for i := range lines {
		if i == selIdx {
			lines[i] = styles.SelectedItem.Render(lines[i])
			continue
		}
		lines[i] = styles.Item.Render(lines[i])
	}
	if len(lines) == 0 {
		lines = []string{styles.DimmedItem.Render("no features")}
	}
	visible := state.VisibleSlice(lines, m.navHeight(), m.navScroll)
	body := strings.Join(visible, "\n")
	return lipgloss.NewStyle().Width(m.navWidth()).Render(title + "\n" + body)
}

func (m *Model) contentView() string {
	tabs := m.tabsView()
	var lines []string
	if m.focus.Tab() == focus.TabTasks {
		lines = m.taskLines()
		lines = state.VisibleSlice(lines, m.contentHeight(), m.taskScroll)
	} else {
		lines = state.VisibleSlice(m.detailBody(), m.contentHeight(), m.detailScroll)
	}
	width := m.viewWidth() - m.navWidth() - 1
	if width < 20 {
		width = 20
	}
	return lipgloss.NewStyle().Width(width).Render(tabs + "\n" + strings.Join(lines, "\n"))
}

func (m *Model) tabsView() string {
	detail := styles.TabInactive.Render(" Detail ")
	tasks := styles.TabInactive.Render(" Tasks ")
	if m.focus.Tab() == focus.TabTasks {
		tasks = styles.TabActive.Render(" Tasks ")
	} else {
		detail = styles.TabActive.Render(" Detail ")
	}
	return detail + " " + tasks
}

// detailBody is the scrollable line buffer behind the detail tab. Help output
// replaces it until the next selection change.
func (m *Model) detailBody() []string {
	if len(m.helpLines) > 0 {
		return m.helpLines
	}
	if m.detail == nil {
		return []string{styles.DimmedItem.Render("no feature loaded")}
	}
	lines := []string{
		styles.PanelTitle.Render(m.detail.Name),
		styles.DimmedItem.Render("status: " + m.detail.Status),
		"",
	}
	for _, line := range strings.Split(m.detail.Description, "\n") {
		lines = append(lines, line)
	}
	if m.document != nil && m.document.FeatureID == m.detail.ID && m.document.Body != "" {
		lines = append(lines, "", styles.PanelTitle.Render("Document"), "")
		lines = append(lines, strings.Split(m.document.Body, "\n")...)
	}
	return lines
}

// taskLines renders every task at a fixed height so selection auto-scroll
// arithmetic holds.
func (m *Model) taskLines() []string {
	if m.detail == nil || len(m.detail.Tasks) == 0 {
		return []string{styles.DimmedItem.Render("no tasks")}
	}
	selIdx := m.taskSel.Index()
	lines := make([]string, 0, len(m.detail.Tasks)*taskLineHeight)
	for i, task := range m.detail.Tasks {
		marker := "  "
		style := styles.Item
		if i == selIdx && m.focus.Current() == focus.PanelTaskList {
			marker = "> "
			style = styles.SelectedItem
		}
		lines = append(lines, style.Render(marker+task.Title))
		lines = append(lines, styles.DimmedItem.Render("    ["+task.Status+"]"))
	}
	return lines
}

func (m *Model) overlayView(overlay mode.Overlay) string {
	switch o := overlay.(type) {
	case *mode.CommandPalette:
		return m.paletteView()
	case *mode.ConfirmDialog:
		return m.confirmView(o)
	case *mode.SetupWizard:
		return m.wizardView(o)
	case *mode.InlineEditor:
		return m.editorView(o)
	}
	return ""
}

func (m *Model) paletteView() string {
	if m.palette == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(styles.Prompt.Render("Command"))
	b.WriteString("\n")
	b.WriteString(m.palette.input.View())
	b.WriteString("\n\n")
	selIdx := m.palette.sel.Index()
	for i, item := range m.palette.items {
		label := styles.CompletionKey.Render(item.Label)
		if i == selIdx {
			label = styles.SelectedItem.Render(item.Label)
		}
		b.WriteString(label)
		b.WriteString("  ")
		b.WriteString(styles.CompletionDoc.Render(item.Description))
		b.WriteString("\n")
	}
	if len(m.palette.items) == 0 {
		b.WriteString(styles.DimmedItem.Render("no matching command"))
		b.WriteString("\n")
	}
	return padToHeight(b.String(), m.contentHeight()+1)
}

func (m *Model) confirmView(dialog *mode.ConfirmDialog) string {
	var b strings.Builder
	b.WriteString(styles.DialogTitle.Render("Confirm"))
	b.WriteString("\n\n")
	b.WriteString(styles.DialogBody.Render(dialog.Prompt))
	b.WriteString("\n\n")
	cancel := " Cancel "
	accept := " Delete "
	if m.confirmChoice == confirmAccept {
		b.WriteString(styles.DialogBody.Render(cancel))
		b.WriteString("  ")
		b.WriteString(styles.DialogDanger.Render("[" + accept + "]"))
	} else {
		b.WriteString(styles.SelectedItem.Render("[" + cancel + "]"))
		b.WriteString("  ")
		b.WriteString(styles.DialogBody.Render(accept))
	}
	b.WriteString("\n")
	return padToHeight(b.String(), m.contentHeight()+1)
}

func (m *Model) wizardView(overlay *mode.SetupWizard) string {
	if m.wizard == nil || overlay.Step >= len(m.wizard.steps) {
		return ""
	}
	step := m.wizard.steps[overlay.Step]
	var b strings.Builder
	b.WriteString(styles.DialogTitle.Render(fmt.Sprintf("%s (%d/%d)", step.title, overlay.Step+1, len(m.wizard.steps))))
	b.WriteString("\n\n")
	b.WriteString(styles.DialogBody.Render(step.prompt))
	b.WriteString("\n")
	b.WriteString(m.wizard.input.View())
	b.WriteString("\n")
	if m.wizard.errs != "" {
		b.WriteString(styles.StatusError.Render(m.wizard.errs))
		b.WriteString("\n")
	}
	return padToHeight(b.String(), m.contentHeight()+1)
}

func (m *Model) editorView(overlay *mode.InlineEditor) string {
	if m.editor == nil {
		return ""
	}
	var b strings.Builder
	if overlay.Kind == editsession.KindDocument {
		b.WriteString(styles.DialogTitle.Render("Edit document"))
		b.WriteString("\n\n")
		b.WriteString(m.editor.body.View())
	} else {
		b.WriteString(styles.DialogTitle.Render("Edit task"))
		b.WriteString("\n\n")
		b.WriteString(fieldLabel("Title", m.editor.field == fieldTitle))
		b.WriteString("\n")
		b.WriteString(m.editor.title.View())
		b.WriteString("\n")
		b.WriteString(fieldLabel("Description", m.editor.field == fieldDescription))
		b.WriteString("\n")
		b.WriteString(m.editor.desc.View())
		b.WriteString("\n")
		b.WriteString(fieldLabel("Acceptance criteria", m.editor.field == fieldCriteria))
		b.WriteString("\n")
		b.WriteString(m.editor.criteria.View())
	}
	b.WriteString("\n")
	if m.editor.errs != "" {
		b.WriteString(styles.StatusError.Render(m.editor.errs))
		b.WriteString("\n")
	}
	b.WriteString(styles.DimmedItem.Render("ctrl+s save  •  esc discard"))
	b.WriteString("\n")
	return padToHeight(b.String(), m.contentHeight()+1)
}

func fieldLabel(name string, active bool) string {
	if active {
		return styles.TabActive.Render(name)
	}
	return styles.TabInactive.Render(name)
}

func padToHeight(view string, height int) string {
	lines := strings.Split(strings.TrimRight(view, "\n"), "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
