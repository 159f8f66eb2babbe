package ui

import (
	"featboard/internal/ui/mode"
	tea "github.com/charmbracelet/bubbletea"
)

// Confirm choices; cancel is the default so a stray enter cannot destroy
// anything.
const (
	confirmCancel = 0
	confirmAccept = 1
)

func (m *Model) openResetConfirm() tea.Cmd {
	dialog := &mode.ConfirmDialog{
		Target: "reset",
		Prompt: "Delete all local tracker state? This cannot be undone.",
	}
	if err := m.modes.Push(dialog); err != nil {
		return nil
	}
	m.confirmChoice = confirmCancel
	return nil
}

func (m *Model) updateConfirm(dialog *mode.ConfirmDialog, msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "n", "N":
		m.modes.Pop("cancel")
		m.setStatus("Cancelled.")
		return nil
	case "left", "right", "tab", "up", "down":
		m.confirmChoice = 1 - m.confirmChoice
		return nil
	case "y", "Y":
		m.confirmChoice = confirmAccept
		return m.affirmConfirm(dialog)
	case "enter":
		if m.confirmChoice != confirmAccept {
			m.modes.Pop("cancel")
			m.setStatus("Cancelled.")
			return nil
		}
		return m.affirmConfirm(dialog)
	}
	return nil
}

// affirmConfirm runs the guarded action. Only /reset is guarded today.
func (m *Model) affirmConfirm(dialog *mode.ConfirmDialog) tea.Cmd {
	dialog.Affirmed = true
	m.modes.Pop("affirm")
	switch dialog.Target {
	case "reset":
		if err := m.setupStore.Reset(); err != nil {
			m.setError("Reset failed: " + err.Error())
			return nil
		}
		m.initialized = false
		m.setStatus("Local state deleted. Run /init to set up again.")
	}
	return nil
}
