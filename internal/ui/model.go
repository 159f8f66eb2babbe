package ui

import (
	"context"
	"reflect"
	"time"

	"featboard/internal/backend"
	"featboard/internal/feature"
	"featboard/internal/setup"
	"featboard/internal/theme"
	"featboard/internal/ui/editsession"
	"featboard/internal/ui/focus"
	"featboard/internal/ui/mode"
	"featboard/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

var styles = theme.Default()

// Store is the slice of the feature client the UI depends on.
type Store interface {
	List(ctx context.Context) ([]feature.Summary, error)
	Detail(ctx context.Context, id string) (feature.Detail, error)
	UpdateTask(ctx context.Context, featureID, taskID string, fields map[string]any) error
	Document(ctx context.Context, featureID string) (feature.Document, error)
	UpdateDocument(ctx context.Context, featureID, body string) error
}

type msgHandler func(tea.Msg) tea.Cmd

// interruptWindow is how long a first ctrl+c stays armed before the quit
// confirmation lapses.
const interruptWindow = 2 * time.Second

// Model is the aggregate session state: mode stack, focus, scroll offsets,
// selections, caches, and the status line. It is the single mutable object;
// every component operates on views into it.
type Model struct {
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool

	store      Store
	backend    *backend.Watcher
	setupStore setup.Store
	editorProg string

	modes mode.Stack
	focus *focus.Controller

	features   []feature.Summary
	featureSel state.Selection
	navScroll  int

	detail       *feature.Detail
	detailScroll int
	helpLines    []string

	taskSel    state.Selection
	taskScroll int

	document *feature.Document

	palette *paletteState
	wizard  *wizardForm
	editor  *editorForm
	edit    *editsession.Session

	confirmChoice int

	statusMsg string
	statusErr bool

	reqList   string
	reqDetail string
	reqDoc    string
	reqSave   string

	interruptArmed time.Time
	now            func() time.Time

	externalPath   string
	externalBefore string

	initialized bool

	handlers map[reflect.Type]msgHandler
}

// NewModel initialises the session against a store and optional watcher.
func NewModel(store Store, setupStore setup.Store, editorProg string, width, height int, watcher *backend.Watcher) *Model {
	m := &Model{
		store:      store,
		backend:    watcher,
		setupStore: setupStore,
		editorProg: editorProg,
		now:        time.Now,
	}
	m.focus = focus.New(func(p focus.Panel) {
		switch p {
		case focus.PanelDetail:
			m.detailScroll = 0
		case focus.PanelTaskList:
			m.taskScroll = 0
		}
	})
	m.initialized = setupStore.Initialized()
	if width > 0 {
		m.width = width
		m.fixedWidth = true
	}
	if height > 0 {
		m.height = height
		m.fixedHeight = true
	}
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadFeaturesCmd()}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handler := m.handlerFor(msg); handler != nil {
		return m, handler(msg)
	}
	return m, nil
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):            m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}):     m.handleWindowSizeMsg,
		reflect.TypeOf(featuresLoadedMsg{}):     m.handleFeaturesLoadedMsg,
		reflect.TypeOf(detailLoadedMsg{}):       m.handleDetailLoadedMsg,
		reflect.TypeOf(documentLoadedMsg{}):     m.handleDocumentLoadedMsg,
		reflect.TypeOf(taskSavedMsg{}):          m.handleTaskSavedMsg,
		reflect.TypeOf(documentSavedMsg{}):      m.handleDocumentSavedMsg,
		reflect.TypeOf(backendEventMsg{}):       m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):        m.handleBackendDoneMsg,
		reflect.TypeOf(externalEditorDoneMsg{}): m.handleExternalEditorDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	sizeMsg, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = sizeMsg.Width
	}
	if !m.fixedHeight {
		m.height = sizeMsg.Height
	}
	return nil
}

// selectedFeature returns the summary under the navigator cursor.
func (m *Model) selectedFeature() (feature.Summary, bool) {
	idx := m.featureSel.Index()
	if idx == state.NoSelection || idx >= len(m.features) {
		return feature.Summary{}, false
	}
	return m.features[idx], true
}

// selectedTask returns the task under the task-list cursor.
func (m *Model) selectedTask() (feature.Task, bool) {
	if m.detail == nil {
		return feature.Task{}, false
	}
	idx := m.taskSel.Index()
	if idx == state.NoSelection || idx >= len(m.detail.Tasks) {
		return feature.Task{}, false
	}
	return m.detail.Tasks[idx], true
}

func (m *Model) setStatus(msg string) {
	m.statusMsg = msg
	m.statusErr = false
}

func (m *Model) setError(msg string) {
	m.statusMsg = msg
	m.statusErr = true
}

// setFeatures folds a fresh listing in while keeping the selection pinned to
// the same feature id when it survives the refresh.
func (m *Model) setFeatures(features []feature.Summary) {
	var selectedID string
	if current, ok := m.selectedFeature(); ok {
		selectedID = current.ID
	}
	m.features = features
	m.featureSel.Resize(len(features))
	if selectedID != "" {
		for i, f := range features {
			if f.ID == selectedID {
				m.featureSel.Set(i)
				break
			}
		}
	}
	m.syncNavViewport()
}

func (m *Model) syncNavViewport() {
	idx := m.featureSel.Index()
	if idx == state.NoSelection {
		m.navScroll = 0
		return
	}
	m.navScroll = state.EnsureVisible(m.navScroll, m.navHeight(), idx, 1, len(m.features))
}

func (m *Model) syncTaskViewport() {
	idx := m.taskSel.Index()
	if idx == state.NoSelection {
		m.taskScroll = 0
		return
	}
	total := 0
	if m.detail != nil {
		total = len(m.detail.Tasks) * taskLineHeight
	}
	m.taskScroll = state.EnsureVisible(m.taskScroll, m.contentHeight(), idx*taskLineHeight, taskLineHeight, total)
}
