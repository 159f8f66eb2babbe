package ui

import (
	"time"

	"featboard/internal/logging/events"
	"featboard/internal/ui/focus"
	"featboard/internal/ui/mode"
	"featboard/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

// taskLineHeight is the estimated render height per task row (title plus
// status line), used for selection auto-scroll.
const taskLineHeight = 2

// handleKeyMsg is the top of the input-routing order: interrupt first, then
// the active overlay (which owns all input), then Normal-mode navigation.
func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	if keyMsg.String() == "ctrl+c" {
		return m.handleInterrupt()
	}
	m.interruptArmed = time.Time{}

	if !m.modes.Normal() {
		switch overlay := m.modes.Active().(type) {
		case *mode.CommandPalette:
			return m.updatePalette(keyMsg)
		case *mode.ConfirmDialog:
			return m.updateConfirm(overlay, keyMsg)
		case *mode.SetupWizard:
			return m.updateWizard(overlay, keyMsg)
		case *mode.InlineEditor:
			return m.updateEditor(overlay, keyMsg)
		}
		return nil
	}

	switch keyMsg.String() {
	case "/":
		return m.openPalette()
	case "tab":
		m.focus.Advance()
	case "left":
		m.focus.StepLeft()
	case "right":
		m.focus.StepRight()
	case "up":
		return m.moveVertical(-1)
	case "down":
		return m.moveVertical(1)
	case "alt+up":
		return m.moveTask(-1)
	case "alt+down":
		return m.moveTask(1)
	case "enter":
		return m.activateSelection()
	case "e":
		return m.openTaskEditor()
	case "D":
		return m.openDocumentEditor()
	case "esc":
		m.statusMsg = ""
		m.statusErr = false
		m.helpLines = nil
	}
	return nil
}

// handleInterrupt implements the two-stage ctrl+c: the first press clears the
// pending input (palette query), an immediate repeat quits.
func (m *Model) handleInterrupt() tea.Cmd {
	now := m.now()
	if !m.interruptArmed.IsZero() && now.Sub(m.interruptArmed) <= interruptWindow {
		events.App.Quit("interrupt")
		return tea.Quit
	}
	m.interruptArmed = now
	events.UI.InterruptArmed()
	if _, ok := m.modes.Active().(*mode.CommandPalette); ok && m.palette != nil {
		m.palette.clearQuery()
		m.palette.refresh(m.completionContext())
	}
	m.setStatus("Press ctrl+c again to quit.")
	return nil
}

// moveVertical routes up/down by focus: selection move in the navigator,
// viewport scroll in the detail panel, selection move in the task list.
func (m *Model) moveVertical(delta int) tea.Cmd {
	switch m.focus.Current() {
	case focus.PanelNavigator:
		return m.moveFeatureSelection(delta)
	case focus.PanelDetail:
		m.detailScroll = state.ScrollBy(m.detailScroll, delta, len(m.detailBody()), m.contentHeight())
		events.UI.Scroll(focus.PanelDetail.String(), m.detailScroll)
	case focus.PanelTaskList:
		if m.taskSel.Move(delta) {
			events.UI.Selection(focus.PanelTaskList.String(), m.taskSel.Index())
		}
		m.syncTaskViewport()
	}
	return nil
}

func (m *Model) moveFeatureSelection(delta int) tea.Cmd {
	if !m.featureSel.Move(delta) {
		return nil
	}
	events.UI.Selection(focus.PanelNavigator.String(), m.featureSel.Index())
	m.syncNavViewport()
	m.helpLines = nil
	selected, ok := m.selectedFeature()
	if !ok {
		return nil
	}
	return m.loadDetailCmd(selected.ID)
}

// moveTask reorders the selected task within the feature and persists the
// new position as a single-field update.
func (m *Model) moveTask(delta int) tea.Cmd {
	if m.focus.Current() != focus.PanelTaskList || m.detail == nil {
		return nil
	}
	idx := m.taskSel.Index()
	target := idx + delta
	if idx == state.NoSelection || target < 0 || target >= len(m.detail.Tasks) {
		return nil
	}
	tasks := m.detail.Tasks
	tasks[idx], tasks[target] = tasks[target], tasks[idx]
	m.taskSel.Set(target)
	m.syncTaskViewport()
	moved := tasks[target]
	return m.saveTaskCmd(m.detail.ID, moved.ID, map[string]any{"position": target})
}

// activateSelection is the Normal-mode enter key: reload the selected
// feature from the navigator, cycle the selected task's status from the
// task list.
func (m *Model) activateSelection() tea.Cmd {
	switch m.focus.Current() {
	case focus.PanelNavigator:
		selected, ok := m.selectedFeature()
		if !ok {
			return nil
		}
		m.helpLines = nil
		return m.loadDetailCmd(selected.ID)
	case focus.PanelTaskList:
		task, ok := m.selectedTask()
		if !ok {
			return nil
		}
		next := nextTaskStatus(task.Status)
		return m.saveTaskCmd(m.detail.ID, task.ID, map[string]any{"status": next})
	}
	return nil
}

// nextTaskStatus cycles pending -> active -> done -> pending.
func nextTaskStatus(status string) string {
	switch status {
	case "pending":
		return "active"
	case "active":
		return "done"
	default:
		return "pending"
	}
}
