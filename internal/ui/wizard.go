package ui

import (
	"fmt"
	"strings"

	"featboard/internal/setup"
	"featboard/internal/ui/mode"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// wizardStep is one prompt in a setup flow. Validate runs before the value is
// committed; committing happens at the step boundary, so aborting a later
// step never rolls an earlier one back.
type wizardStep struct {
	key      string
	title    string
	prompt   string
	secret   bool
	validate func(string) error
}

type wizardForm struct {
	steps []wizardStep
	input textinput.Model
	errs  string
}

// initSteps is the first-run flow. The confirm step exists so the wizard has
// an explicit completion commit rather than finishing silently.
func initSteps() []wizardStep {
	return []wizardStep{
		{
			key:    "tool_path",
			title:  "Tracker tool",
			prompt: "Path to the tracker tool executable",
			validate: func(v string) error {
				if strings.TrimSpace(v) == "" {
					return fmt.Errorf("path must not be empty")
				}
				return nil
			},
		},
		{
			key:    "workspace",
			title:  "Workspace",
			prompt: "Workspace name shown in the header",
			validate: func(v string) error {
				if strings.TrimSpace(v) == "" {
					return fmt.Errorf("name must not be empty")
				}
				return nil
			},
		},
		{
			key:    setup.KeyInitialized,
			title:  "Finish",
			prompt: "Type 'yes' to finish setup",
			validate: func(v string) error {
				if !strings.EqualFold(strings.TrimSpace(v), "yes") {
					return fmt.Errorf("type 'yes' to confirm, esc to abort")
				}
				return nil
			},
		},
	}
}

// authSteps is the credential flow, reachable any time.
func authSteps() []wizardStep {
	return []wizardStep{
		{
			key:    "credential",
			title:  "Credentials",
			prompt: "API credential for the tracker tool",
			secret: true,
			validate: func(v string) error {
				if strings.TrimSpace(v) == "" {
					return fmt.Errorf("credential must not be empty")
				}
				return nil
			},
		},
	}
}

func newWizardForm(steps []wizardStep) *wizardForm {
	w := &wizardForm{steps: steps}
	w.arm(0)
	return w
}

func (w *wizardForm) arm(step int) {
	in := textinput.New()
	in.Prompt = "> "
	in.Placeholder = w.steps[step].prompt
	if w.steps[step].secret {
		in.EchoMode = textinput.EchoPassword
	}
	in.Focus()
	w.input = in
	w.errs = ""
}

func (m *Model) openWizard(steps []wizardStep) tea.Cmd {
	if err := m.modes.Push(&mode.SetupWizard{}); err != nil {
		return nil
	}
	m.wizard = newWizardForm(steps)
	return textinput.Blink
}

func (m *Model) updateWizard(overlay *mode.SetupWizard, msg tea.KeyMsg) tea.Cmd {
	if m.wizard == nil || overlay.Step >= len(m.wizard.steps) {
		m.modes.Pop("desync")
		m.wizard = nil
		return nil
	}
	switch msg.String() {
	case "esc":
		m.modes.Pop("abort")
		m.wizard = nil
		if overlay.Step > 0 {
			m.setStatus("Setup aborted. Completed steps were kept.")
		} else {
			m.setStatus("Setup aborted.")
		}
		return nil
	case "enter":
		return m.commitWizardStep(overlay)
	}
	var cmd tea.Cmd
	m.wizard.input, cmd = m.wizard.input.Update(msg)
	return cmd
}

// commitWizardStep validates, persists the step value, and advances. Each
// step's write is final the moment it commits.
func (m *Model) commitWizardStep(overlay *mode.SetupWizard) tea.Cmd {
	step := m.wizard.steps[overlay.Step]
	value := m.wizard.input.Value()
	if err := step.validate(value); err != nil {
		m.wizard.errs = err.Error()
		return nil
	}
	if err := m.setupStore.Commit(step.key, strings.TrimSpace(value)); err != nil {
		m.wizard.errs = "Could not save: " + err.Error()
		return nil
	}
	overlay.Step++
	if overlay.Step < len(m.wizard.steps) {
		m.wizard.arm(overlay.Step)
		return textinput.Blink
	}
	m.modes.Pop("complete")
	m.wizard = nil
	m.initialized = m.setupStore.Initialized()
	m.setStatus("Setup saved.")
	return nil
}
