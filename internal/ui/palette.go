package ui

import (
	"strings"

	"featboard/internal/logging/events"
	"featboard/internal/ui/completion"
	"featboard/internal/ui/mode"
	"featboard/internal/ui/state"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// paletteState couples the text input with the suggestion list derived from
// it. Suggestions are recomputed on every edit, never cached across opens.
type paletteState struct {
	input textinput.Model
	items []completion.Item
	sel   state.Selection
}

func newPaletteState(ctx completion.Context) *paletteState {
	in := textinput.New()
	in.Prompt = "/"
	in.Placeholder = "command"
	in.CharLimit = 64
	in.Focus()
	p := &paletteState{input: in}
	p.refresh(ctx)
	return p
}

func (p *paletteState) query() string {
	return "/" + strings.TrimPrefix(p.input.Value(), "/")
}

func (p *paletteState) refresh(ctx completion.Context) {
	p.items = completion.Suggest(p.query(), ctx)
	p.sel.Resize(len(p.items))
	p.sel.Set(0)
}

func (p *paletteState) clearQuery() {
	p.input.SetValue("")
}

func (p *paletteState) selected() (completion.Item, bool) {
	idx := p.sel.Index()
	if idx == state.NoSelection {
		return completion.Item{}, false
	}
	return p.items[idx], true
}

func (m *Model) completionContext() completion.Context {
	return completion.Context{Initialized: m.initialized}
}

func (m *Model) openPalette() tea.Cmd {
	if err := m.modes.Push(&mode.CommandPalette{}); err != nil {
		return nil
	}
	m.palette = newPaletteState(m.completionContext())
	return textinput.Blink
}

func (m *Model) closePalette(reason string) {
	m.modes.Pop(reason)
	m.palette = nil
}

func (m *Model) updatePalette(msg tea.KeyMsg) tea.Cmd {
	if m.palette == nil {
		m.modes.Pop("desync")
		return nil
	}
	switch msg.String() {
	case "esc":
		m.closePalette("cancel")
		return nil
	case "up":
		if m.palette.sel.Move(-1) {
			events.UI.Selection("palette", m.palette.sel.Index())
		}
		return nil
	case "down":
		if m.palette.sel.Move(1) {
			events.UI.Selection("palette", m.palette.sel.Index())
		}
		return nil
	case "tab":
		if item, ok := m.palette.selected(); ok {
			m.palette.input.SetValue(strings.TrimPrefix(item.Insert, "/"))
			m.palette.input.CursorEnd()
			m.palette.refresh(m.completionContext())
		}
		return nil
	case "enter":
		return m.commitPalette()
	}

	var cmd tea.Cmd
	m.palette.input, cmd = m.palette.input.Update(msg)
	m.palette.refresh(m.completionContext())
	return cmd
}

// commitPalette resolves the query to a command: an exact match wins, then
// the highlighted suggestion, otherwise the input is rejected in place.
func (m *Model) commitPalette() tea.Cmd {
	ctx := m.completionContext()
	query := m.palette.query()
	item, ok := completion.Exact(query, ctx)
	if !ok {
		item, ok = m.palette.selected()
	}
	if !ok {
		m.setError("Unknown command: " + query)
		return nil
	}
	m.closePalette("commit")
	return m.runCommand(item.Label)
}

func (m *Model) runCommand(label string) tea.Cmd {
	switch label {
	case completion.CmdHelp:
		m.helpLines = helpText()
		m.setStatus("")
	case completion.CmdFeatures:
		m.setStatus("Refreshing features...")
		return m.loadFeaturesCmd()
	case completion.CmdInit:
		return m.openWizard(initSteps())
	case completion.CmdAuth:
		return m.openWizard(authSteps())
	case completion.CmdReset:
		return m.openResetConfirm()
	case completion.CmdQuit:
		events.App.Quit("command")
		return tea.Quit
	}
	return nil
}

func helpText() []string {
	return []string{
		"Keys",
		"  up/down      move selection or scroll the focused panel",
		"  tab          cycle focus: navigator, detail, tasks",
		"  left/right   step focus between panels",
		"  enter        open feature / cycle task status",
		"  alt+up/down  reorder the selected task",
		"  e            edit the selected task",
		"  D            edit the feature document",
		"  ctrl+s       save the open editor",
		"  esc          dismiss editor, dialog, or status",
		"  ctrl+c       press twice to quit",
		"",
		"Commands",
		"  /help      this screen",
		"  /features  refresh the feature list",
		"  /init      first-run setup (hidden once initialized)",
		"  /auth      configure credentials",
		"  /reset     delete all local tracker state",
		"  /quit      exit",
	}
}
