package ui

import (
	"context"

	"featboard/internal/backend"
	"featboard/internal/feature"
	"featboard/internal/invoker"
	"featboard/internal/logging/events"
	"github.com/google/uuid"
	tea "github.com/charmbracelet/bubbletea"
)

// Async results carry the request id they were issued under so stale
// responses can be dropped without disturbing whatever mode is active.

type featuresLoadedMsg struct {
	reqID    string
	features []feature.Summary
	err      error
}

type detailLoadedMsg struct {
	reqID     string
	featureID string
	detail    feature.Detail
	err       error
}

type documentLoadedMsg struct {
	reqID     string
	featureID string
	document  feature.Document
	err       error
}

type taskSavedMsg struct {
	reqID     string
	featureID string
	taskID    string
	err       error
}

type documentSavedMsg struct {
	reqID     string
	featureID string
	err       error
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

type externalEditorDoneMsg struct {
	err error
}

func (m *Model) loadFeaturesCmd() tea.Cmd {
	id := uuid.NewString()
	m.reqList = id
	events.Command.Queue(id, invoker.ToolListFeatures)
	store := m.store
	return func() tea.Msg {
		features, err := store.List(context.Background())
		return featuresLoadedMsg{reqID: id, features: features, err: err}
	}
}

func (m *Model) loadDetailCmd(featureID string) tea.Cmd {
	id := uuid.NewString()
	m.reqDetail = id
	events.Command.Queue(id, invoker.ToolFeatureDetails)
	store := m.store
	return func() tea.Msg {
		detail, err := store.Detail(context.Background(), featureID)
		return detailLoadedMsg{reqID: id, featureID: featureID, detail: detail, err: err}
	}
}

func (m *Model) loadDocumentCmd(featureID string) tea.Cmd {
	id := uuid.NewString()
	m.reqDoc = id
	events.Command.Queue(id, invoker.ToolGetDocument)
	store := m.store
	return func() tea.Msg {
		doc, err := store.Document(context.Background(), featureID)
		return documentLoadedMsg{reqID: id, featureID: featureID, document: doc, err: err}
	}
}

func (m *Model) saveTaskCmd(featureID, taskID string, fields map[string]any) tea.Cmd {
	id := uuid.NewString()
	m.reqSave = id
	events.Command.Queue(id, invoker.ToolUpdateTask)
	store := m.store
	return func() tea.Msg {
		err := store.UpdateTask(context.Background(), featureID, taskID, fields)
		return taskSavedMsg{reqID: id, featureID: featureID, taskID: taskID, err: err}
	}
}

func (m *Model) saveDocumentCmd(featureID, body string) tea.Cmd {
	id := uuid.NewString()
	m.reqSave = id
	events.Command.Queue(id, invoker.ToolUpdateDocument)
	store := m.store
	return func() tea.Msg {
		err := store.UpdateDocument(context.Background(), featureID, body)
		return documentSavedMsg{reqID: id, featureID: featureID, err: err}
	}
}

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

func (m *Model) handleFeaturesLoadedMsg(msg tea.Msg) tea.Cmd {
	loaded, ok := msg.(featuresLoadedMsg)
	if !ok {
		return nil
	}
	if loaded.reqID != m.reqList {
		events.Command.Stale(loaded.reqID, invoker.ToolListFeatures)
		return nil
	}
	m.reqList = ""
	events.Command.Result(loaded.reqID, invoker.ToolListFeatures, loaded.err)
	if loaded.err != nil {
		m.setError(loaded.err.Error())
		return nil
	}
	hadSelection := m.featureSel.Index() != -1
	m.setFeatures(loaded.features)
	if len(loaded.features) == 0 {
		m.setStatus("No features yet.")
		return nil
	}
	if !hadSelection {
		return m.loadDetailCmd(loaded.features[0].ID)
	}
	return nil
}

func (m *Model) handleDetailLoadedMsg(msg tea.Msg) tea.Cmd {
	loaded, ok := msg.(detailLoadedMsg)
	if !ok {
		return nil
	}
	if loaded.reqID != m.reqDetail {
		events.Command.Stale(loaded.reqID, invoker.ToolFeatureDetails)
		return nil
	}
	m.reqDetail = ""
	events.Command.Result(loaded.reqID, invoker.ToolFeatureDetails, loaded.err)
	if loaded.err != nil {
		m.applyLoadError(loaded.err)
		m.detail = nil
		m.document = nil
		m.taskSel.Resize(0)
		return nil
	}
	detail := loaded.detail
	m.detail = &detail
	m.detailScroll = 0
	m.taskSel.Resize(len(detail.Tasks))
	m.syncTaskViewport()
	m.helpLines = nil
	return m.loadDocumentCmd(loaded.featureID)
}

func (m *Model) handleDocumentLoadedMsg(msg tea.Msg) tea.Cmd {
	loaded, ok := msg.(documentLoadedMsg)
	if !ok {
		return nil
	}
	if loaded.reqID != m.reqDoc {
		events.Command.Stale(loaded.reqID, invoker.ToolGetDocument)
		return nil
	}
	m.reqDoc = ""
	events.Command.Result(loaded.reqID, invoker.ToolGetDocument, loaded.err)
	if loaded.err != nil {
		// A feature without a document is a normal state, not worth a
		// status-line alarm unless the call itself failed.
		if _, notFound := loaded.err.(*invoker.NotFoundError); !notFound {
			m.setError(loaded.err.Error())
		}
		m.document = nil
		return nil
	}
	doc := loaded.document
	m.document = &doc
	return nil
}

func (m *Model) handleTaskSavedMsg(msg tea.Msg) tea.Cmd {
	saved, ok := msg.(taskSavedMsg)
	if !ok {
		return nil
	}
	if saved.reqID != m.reqSave {
		events.Command.Stale(saved.reqID, invoker.ToolUpdateTask)
		return nil
	}
	m.reqSave = ""
	events.Command.Result(saved.reqID, invoker.ToolUpdateTask, saved.err)
	if saved.err != nil {
		m.setError("Task save failed: " + saved.err.Error())
		return nil
	}
	m.setStatus("Task saved.")
	return m.loadDetailCmd(saved.featureID)
}

func (m *Model) handleDocumentSavedMsg(msg tea.Msg) tea.Cmd {
	saved, ok := msg.(documentSavedMsg)
	if !ok {
		return nil
	}
	if saved.reqID != m.reqSave {
		events.Command.Stale(saved.reqID, invoker.ToolUpdateDocument)
		return nil
	}
	m.reqSave = ""
	events.Command.Result(saved.reqID, invoker.ToolUpdateDocument, saved.err)
	if saved.err != nil {
		m.setError("Document save failed: " + saved.err.Error())
		return nil
	}
	m.setStatus("Document saved.")
	return m.loadDocumentCmd(saved.featureID)
}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

func (m *Model) handleBackendDoneMsg(tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

// applyBackendEvent merges an unsolicited refresh. It must be safe at any
// point in the state machine: only the listing cache and status line change,
// never the active mode.
func (m *Model) applyBackendEvent(evt backend.Event) {
	if evt.Err != nil {
		m.setError(evt.Err.Error())
		return
	}
	m.setFeatures(evt.Features)
	if m.statusErr {
		m.statusMsg = ""
		m.statusErr = false
	}
}

func (m *Model) applyLoadError(err error) {
	switch err.(type) {
	case *invoker.NotFoundError:
		m.setError(err.Error())
	default:
		m.setError(err.Error())
	}
}
