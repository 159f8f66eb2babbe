package ui

import (
	"errors"
	"os"
	"os/exec"
	"strings"

	"featboard/internal/invoker"
	"featboard/internal/logging/events"
	"featboard/internal/ui/editsession"
	"featboard/internal/ui/mode"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// editor form fields, cycled with tab while a task draft is open.
const (
	fieldTitle = iota
	fieldDescription
	fieldCriteria
	fieldCount
)

// editorForm is the widget half of an inline edit: the draft itself lives in
// the edit session, the form only holds what the user is typing.
type editorForm struct {
	field    int
	title    textinput.Model
	desc     textinput.Model
	criteria textarea.Model
	body     textarea.Model
	errs     string
}

func newTaskForm(s *editsession.Session) *editorForm {
	task := s.Task()
	f := &editorForm{}
	f.title = textinput.New()
	f.title.Prompt = ""
	f.title.SetValue(task.Title)
	f.title.Focus()
	f.desc = textinput.New()
	f.desc.Prompt = ""
	f.desc.SetValue(task.Description)
	f.criteria = textarea.New()
	f.criteria.SetValue(strings.Join(task.Criteria, "\n"))
	return f
}

func newDocumentForm(s *editsession.Session) *editorForm {
	f := &editorForm{}
	f.body = textarea.New()
	f.body.SetValue(s.Body())
	f.body.Focus()
	return f
}

func (f *editorForm) cycleField() {
	switch f.field {
	case fieldTitle:
		f.title.Blur()
	case fieldDescription:
		f.desc.Blur()
	case fieldCriteria:
		f.criteria.Blur()
	}
	f.field = (f.field + 1) % fieldCount
	switch f.field {
	case fieldTitle:
		f.title.Focus()
	case fieldDescription:
		f.desc.Focus()
	case fieldCriteria:
		f.criteria.Focus()
	}
}

func (m *Model) openTaskEditor() tea.Cmd {
	task, ok := m.selectedTask()
	if !ok {
		m.setStatus("No task selected.")
		return nil
	}
	if err := m.modes.Push(&mode.InlineEditor{Kind: editsession.KindTask}); err != nil {
		return nil
	}
	m.edit = editsession.OpenTask(m.detail.ID, task)
	m.editor = newTaskForm(m.edit)
	events.Editor.Open(editsession.KindTask, task.ID)
	return textinput.Blink
}

// openDocumentEditor prefers the configured external editor; without one the
// inline textarea is the fallback, not an error.
func (m *Model) openDocumentEditor() tea.Cmd {
	selected, ok := m.selectedFeature()
	if !ok {
		m.setStatus("No feature selected.")
		return nil
	}
	body := ""
	if m.document != nil && m.document.FeatureID == selected.ID {
		body = m.document.Body
	}
	if m.editorProg != "" {
		return m.openExternalEditor(selected.ID, body)
	}
	if err := m.modes.Push(&mode.InlineEditor{Kind: editsession.KindDocument}); err != nil {
		return nil
	}
	m.edit = editsession.OpenDocument(selected.ID, body)
	m.editor = newDocumentForm(m.edit)
	events.Editor.Open(editsession.KindDocument, selected.ID)
	return textarea.Blink
}

func (m *Model) openExternalEditor(featureID, body string) tea.Cmd {
	tmp, err := os.CreateTemp("", "featboard-doc-*.md")
	if err != nil {
		m.setError("Could not stage document: " + err.Error())
		return nil
	}
	if _, err := tmp.WriteString(body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		m.setError("Could not stage document: " + err.Error())
		return nil
	}
	tmp.Close()
	m.edit = editsession.OpenDocument(featureID, body)
	m.externalPath = tmp.Name()
	m.externalBefore = body
	events.Editor.External(m.editorProg, tmp.Name())
	return tea.ExecProcess(exec.Command(m.editorProg, tmp.Name()), func(err error) tea.Msg {
		return externalEditorDoneMsg{err: err}
	})
}

// handleExternalEditorDoneMsg folds the edited file back into the draft and
// saves it. An unchanged file cancels the draft without a store call.
func (m *Model) handleExternalEditorDoneMsg(msg tea.Msg) tea.Cmd {
	done, ok := msg.(externalEditorDoneMsg)
	if !ok {
		return nil
	}
	path := m.externalPath
	before := m.externalBefore
	m.externalPath = ""
	m.externalBefore = ""
	defer os.Remove(path)

	if done.err != nil {
		if m.edit != nil {
			m.edit.Cancel()
		}
		m.setError("Editor failed: " + done.err.Error())
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if m.edit != nil {
			m.edit.Cancel()
		}
		m.setError("Could not read edited document: " + err.Error())
		return nil
	}
	if m.edit == nil {
		return nil
	}
	if string(data) == before {
		m.edit.Cancel()
		m.edit = nil
		m.setStatus("No changes.")
		return nil
	}
	m.edit.SetBody(string(data))
	return m.saveEditSession()
}

func (m *Model) updateEditor(overlay *mode.InlineEditor, msg tea.KeyMsg) tea.Cmd {
	if m.editor == nil || m.edit == nil {
		m.modes.Pop("desync")
		return nil
	}
	switch msg.String() {
	case "esc":
		events.Editor.Cancel(m.edit.Kind(), m.edit.FeatureID())
		m.edit.Cancel()
		m.edit = nil
		m.editor = nil
		m.modes.Pop("cancel")
		m.setStatus("Edit discarded.")
		return nil
	case "ctrl+s":
		m.foldFormIntoDraft(overlay)
		cmd := m.saveEditSession()
		if m.edit != nil && m.edit.Open() {
			// Validation failed; the draft and form stay up.
			return cmd
		}
		m.editor = nil
		m.modes.Pop("save")
		return cmd
	case "tab":
		if overlay.Kind == editsession.KindTask {
			m.editor.cycleField()
			return nil
		}
	}

	var cmd tea.Cmd
	if overlay.Kind == editsession.KindDocument {
		m.editor.body, cmd = m.editor.body.Update(msg)
		return cmd
	}
	switch m.editor.field {
	case fieldTitle:
		m.editor.title, cmd = m.editor.title.Update(msg)
	case fieldDescription:
		m.editor.desc, cmd = m.editor.desc.Update(msg)
	case fieldCriteria:
		m.editor.criteria, cmd = m.editor.criteria.Update(msg)
	}
	return cmd
}

// foldFormIntoDraft copies only fields the user actually changed, so the
// save diff stays minimal.
func (m *Model) foldFormIntoDraft(overlay *mode.InlineEditor) {
	if overlay.Kind == editsession.KindDocument {
		if m.editor.body.Value() != m.edit.Body() {
			m.edit.SetBody(m.editor.body.Value())
		}
		return
	}
	task := m.edit.Task()
	if v := m.editor.title.Value(); v != task.Title {
		m.edit.SetTitle(v)
	}
	if v := m.editor.desc.Value(); v != task.Description {
		m.edit.SetDescription(v)
	}
	lines := splitCriteria(m.editor.criteria.Value())
	if !sameLines(lines, task.Criteria) {
		m.edit.SetCriteria(lines)
	}
}

// saveEditSession drives the draft's save and dispatches the resulting store
// call. Validation errors keep the draft open; everything else closes it.
func (m *Model) saveEditSession() tea.Cmd {
	payload, err := m.edit.Save()
	if err != nil {
		var validation *invoker.ValidationError
		if errors.As(err, &validation) {
			if m.editor != nil {
				m.editor.errs = validation.Error()
			} else {
				m.setError(validation.Error())
			}
			return nil
		}
		m.edit = nil
		m.setError(err.Error())
		return nil
	}
	events.Editor.Save(payload.Kind, payload.FeatureID, fieldNames(payload.Fields))
	m.edit = nil
	if len(payload.Fields) == 0 {
		m.setStatus("No changes.")
		return nil
	}
	if payload.Kind == editsession.KindTask {
		return m.saveTaskCmd(payload.FeatureID, payload.TaskID, payload.Fields)
	}
	body, _ := payload.Fields["body"].(string)
	return m.saveDocumentCmd(payload.FeatureID, body)
}

func splitCriteria(value string) []string {
	var lines []string
	for _, line := range strings.Split(value, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func sameLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func fieldNames(fields map[string]any) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	return names
}
