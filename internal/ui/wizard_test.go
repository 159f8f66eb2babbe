package ui

import (
	"testing"

	"featboard/internal/ui/completion"
	"featboard/internal/ui/mode"
)

func openInitWizard(t *testing.T, m *Model) {
	t.Helper()
	pump(t, m, press(m, keyRune('/')))
	typeString(t, m, "init")
	pump(t, m, press(m, key("enter")))
	if _, ok := m.modes.Active().(*mode.SetupWizard); !ok {
		t.Fatalf("expected the setup wizard to open, got %+v", m.modes.Active())
	}
}

func TestWizardCommitsEachStep(t *testing.T) {
	m := startModel(t, seededStore())
	openInitWizard(t, m)

	typeString(t, m, "/usr/local/bin/featboard-tool")
	pump(t, m, press(m, key("enter")))

	values, err := m.setupStore.Values()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if values["tool_path"] != "/usr/local/bin/featboard-tool" {
		t.Fatalf("the first step must commit at its boundary, got %v", values)
	}
	if m.initialized {
		t.Fatalf("setup must not read as complete mid-wizard")
	}

	typeString(t, m, "demo")
	pump(t, m, press(m, key("enter")))
	typeString(t, m, "yes")
	pump(t, m, press(m, key("enter")))

	if !m.modes.Normal() {
		t.Fatalf("the wizard must close on completion")
	}
	if !m.initialized || !m.setupStore.Initialized() {
		t.Fatalf("completing the last step must mark setup done")
	}
}

func TestWizardAbortKeepsCompletedSteps(t *testing.T) {
	m := startModel(t, seededStore())
	openInitWizard(t, m)

	typeString(t, m, "/opt/tool")
	pump(t, m, press(m, key("enter")))
	pump(t, m, press(m, key("esc")))

	if !m.modes.Normal() {
		t.Fatalf("esc must abort the wizard")
	}
	values, _ := m.setupStore.Values()
	if values["tool_path"] != "/opt/tool" {
		t.Fatalf("aborting must not roll back committed steps, got %v", values)
	}
	if m.setupStore.Initialized() {
		t.Fatalf("an aborted wizard must not mark setup complete")
	}
}

func TestWizardRejectsEmptyInputInPlace(t *testing.T) {
	m := startModel(t, seededStore())
	openInitWizard(t, m)

	pump(t, m, press(m, key("enter")))
	overlay, ok := m.modes.Active().(*mode.SetupWizard)
	if !ok || overlay.Step != 0 {
		t.Fatalf("invalid input must keep the wizard on its step")
	}
	if m.wizard.errs == "" {
		t.Fatalf("expected an inline validation message")
	}
	values, _ := m.setupStore.Values()
	if len(values) != 0 {
		t.Fatalf("nothing may commit before validation passes, got %v", values)
	}
}

func TestAuthWizardDoesNotMarkInitialized(t *testing.T) {
	m := startModel(t, seededStore())
	pump(t, m, press(m, keyRune('/')))
	typeString(t, m, "auth")
	pump(t, m, press(m, key("enter")))
	typeString(t, m, "secret-token")
	pump(t, m, press(m, key("enter")))

	if !m.modes.Normal() {
		t.Fatalf("the credential wizard must close after its single step")
	}
	values, _ := m.setupStore.Values()
	if values["credential"] != "secret-token" {
		t.Fatalf("expected the credential committed, got %v", values)
	}
	if m.initialized || m.setupStore.Initialized() {
		t.Fatalf("a credential update alone must not hide /init")
	}

	pump(t, m, press(m, keyRune('/')))
	found := false
	for _, item := range m.palette.items {
		if item.Label == completion.CmdInit {
			found = true
		}
	}
	if !found {
		t.Fatalf("/init must still be offered after /auth alone")
	}
}
