package ui

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"featboard/internal/backend"
	"featboard/internal/feature"
	"featboard/internal/invoker"
	"featboard/internal/setup"
	tea "github.com/charmbracelet/bubbletea"
)

type taskCall struct {
	featureID string
	taskID    string
	fields    map[string]any
}

type docCall struct {
	featureID string
	body      string
}

// fakeStore implements Store in-memory and records every mutation.
type fakeStore struct {
	mu sync.Mutex

	features []feature.Summary
	details  map[string]feature.Detail
	docs     map[string]feature.Document

	listErr   error
	detailErr error

	taskCalls []taskCall
	docCalls  []docCall
}

func (f *fakeStore) List(context.Context) ([]feature.Summary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]feature.Summary(nil), f.features...), nil
}

func (f *fakeStore) Detail(_ context.Context, id string) (feature.Detail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.detailErr != nil {
		return feature.Detail{}, f.detailErr
	}
	d, ok := f.details[id]
	if !ok {
		return feature.Detail{}, &invoker.NotFoundError{Kind: "feature", ID: id}
	}
	return d, nil
}

func (f *fakeStore) UpdateTask(_ context.Context, featureID, taskID string, fields map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.taskCalls = append(f.taskCalls, taskCall{featureID: featureID, taskID: taskID, fields: fields})
	return nil
}

func (f *fakeStore) Document(_ context.Context, featureID string) (feature.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.docs[featureID]
	if !ok {
		return feature.Document{}, &invoker.NotFoundError{Kind: "document", ID: featureID}
	}
	return d, nil
}

func (f *fakeStore) UpdateDocument(_ context.Context, featureID, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.docCalls = append(f.docCalls, docCall{featureID: featureID, body: body})
	return nil
}

func seededStore() *fakeStore {
	return &fakeStore{
		features: []feature.Summary{
			{ID: "f1", Name: "Search", Status: "active", TaskCount: 2},
			{ID: "f2", Name: "Billing", Status: "pending", TaskCount: 1},
		},
		details: map[string]feature.Detail{
			"f1": {
				ID: "f1", Name: "Search", Status: "active", Description: "Full text search.",
				Tasks: []feature.Task{
					{ID: "t1", Title: "Index documents", Status: "pending", Description: "Build the index."},
					{ID: "t2", Title: "Rank results", Status: "active", Description: "Score matches."},
				},
			},
			"f2": {ID: "f2", Name: "Billing", Status: "pending"},
		},
		docs: map[string]feature.Document{
			"f1": {FeatureID: "f1", Body: "Search design notes."},
		},
	}
}

func newTestModel(t *testing.T, store Store) *Model {
	t.Helper()
	setupStore := setup.Store{Path: filepath.Join(t.TempDir(), "setup")}
	return NewModel(store, setupStore, "", 80, 24, nil)
}

// pump executes commands and feeds the resulting messages back into the
// model, the way the runtime would, until the chain settles.
func pump(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 64 {
			t.Fatalf("command chain did not settle")
		}
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		msg := next()
		if msg == nil {
			continue
		}
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		if _, ok := msg.(tea.QuitMsg); ok {
			continue
		}
		_, cmd := m.Update(msg)
		queue = append(queue, cmd)
	}
}

// startModel drives Init to completion so the first feature and its detail
// are loaded.
func startModel(t *testing.T, store Store) *Model {
	t.Helper()
	m := newTestModel(t, store)
	pump(t, m, m.Init())
	return m
}

func TestInitLoadsFirstFeatureDetail(t *testing.T) {
	store := seededStore()
	m := startModel(t, store)
	if m.detail == nil || m.detail.ID != "f1" {
		t.Fatalf("expected detail for f1, got %+v", m.detail)
	}
	if m.document == nil || m.document.Body != "Search design notes." {
		t.Fatalf("expected document loaded, got %+v", m.document)
	}
}

func TestStaleDetailResultDropped(t *testing.T) {
	store := seededStore()
	m := startModel(t, store)

	first := m.loadDetailCmd("f1")
	firstMsg := first().(detailLoadedMsg)
	// A second request supersedes the first before it lands.
	second := m.loadDetailCmd("f2")
	secondMsg := second().(detailLoadedMsg)

	pump(t, m, func() tea.Msg { return secondMsg })
	if m.detail.ID != "f2" {
		t.Fatalf("expected f2 detail, got %s", m.detail.ID)
	}
	pump(t, m, func() tea.Msg { return firstMsg })
	if m.detail.ID != "f2" {
		t.Fatalf("stale result must not overwrite newer detail, got %s", m.detail.ID)
	}
}

func TestBackendEventPreservesSelectionByID(t *testing.T) {
	store := seededStore()
	m := startModel(t, store)
	m.featureSel.Set(1) // Billing

	m.applyBackendEvent(backend.Event{Features: []feature.Summary{
		{ID: "f3", Name: "Export", Status: "pending"},
		{ID: "f2", Name: "Billing", Status: "pending", TaskCount: 1},
		{ID: "f1", Name: "Search", Status: "active", TaskCount: 2},
	}})

	selected, ok := m.selectedFeature()
	if !ok || selected.ID != "f2" {
		t.Fatalf("expected selection pinned to f2, got %+v", selected)
	}
}

func TestBackendEventDoesNotTouchMode(t *testing.T) {
	store := seededStore()
	m := startModel(t, store)
	pump(t, m, press(m, keyRune('/')))
	if m.modes.Normal() {
		t.Fatalf("palette should be open")
	}
	m.applyBackendEvent(backend.Event{Features: store.features})
	if m.modes.Normal() || m.palette == nil {
		t.Fatalf("backend refresh must not close the active overlay")
	}
}

func TestListErrorSurfacesOnStatusLine(t *testing.T) {
	store := seededStore()
	store.listErr = fmt.Errorf("boom")
	m := newTestModel(t, store)
	pump(t, m, m.Init())
	if !m.statusErr || m.statusMsg == "" {
		t.Fatalf("expected error status, got %q (err=%v)", m.statusMsg, m.statusErr)
	}
}

func TestMissingDocumentIsSilent(t *testing.T) {
	store := seededStore()
	delete(store.docs, "f1")
	m := startModel(t, store)
	if m.statusErr {
		t.Fatalf("a missing document must not raise an error status: %q", m.statusMsg)
	}
	if m.document != nil {
		t.Fatalf("expected empty document state, got %+v", m.document)
	}
}

func TestWindowSizeTracksUnlessPinned(t *testing.T) {
	store := seededStore()
	m := NewModel(store, setup.Store{Path: filepath.Join(t.TempDir(), "setup")}, "", 0, 0, nil)
	pump(t, m, m.Init())
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.width != 120 || m.height != 40 {
		t.Fatalf("expected size to track the terminal, got %dx%d", m.width, m.height)
	}

	pinned := newTestModel(t, store)
	pinned.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	if pinned.width != 80 || pinned.height != 24 {
		t.Fatalf("pinned size must ignore resize, got %dx%d", pinned.width, pinned.height)
	}
}

// press routes a key through Update and returns the resulting command.
func press(m *Model, msg tea.KeyMsg) tea.Cmd {
	_, cmd := m.Update(msg)
	return cmd
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func typeString(t *testing.T, m *Model, s string) {
	t.Helper()
	for _, r := range s {
		pump(t, m, press(m, keyRune(r)))
	}
}

var specialKeys = map[string]tea.KeyMsg{
	"tab":    {Type: tea.KeyTab},
	"esc":    {Type: tea.KeyEsc},
	"enter":  {Type: tea.KeyEnter},
	"up":     {Type: tea.KeyUp},
	"down":   {Type: tea.KeyDown},
	"left":   {Type: tea.KeyLeft},
	"right":  {Type: tea.KeyRight},
	"ctrl+c": {Type: tea.KeyCtrlC},
	"ctrl+s": {Type: tea.KeyCtrlS},
	"alt+up":   {Type: tea.KeyUp, Alt: true},
	"alt+down": {Type: tea.KeyDown, Alt: true},
}

func key(name string) tea.KeyMsg {
	if msg, ok := specialKeys[name]; ok {
		return msg
	}
	return keyRune([]rune(name)[0])
}
