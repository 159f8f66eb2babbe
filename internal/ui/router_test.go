package ui

import (
	"fmt"
	"testing"
	"time"

	"featboard/internal/feature"
	"featboard/internal/ui/completion"
	"featboard/internal/ui/focus"
	tea "github.com/charmbracelet/bubbletea"
)

func TestTabCyclesFocusAndSyncsTab(t *testing.T) {
	m := startModel(t, seededStore())
	if m.focus.Current() != focus.PanelNavigator {
		t.Fatalf("focus must start on the navigator")
	}
	pump(t, m, press(m, key("tab")))
	if m.focus.Current() != focus.PanelDetail || m.focus.Tab() != focus.TabDetail {
		t.Fatalf("expected detail focus with detail tab, got %v/%v", m.focus.Current(), m.focus.Tab())
	}
	pump(t, m, press(m, key("tab")))
	if m.focus.Current() != focus.PanelTaskList || m.focus.Tab() != focus.TabTasks {
		t.Fatalf("expected task focus with tasks tab, got %v/%v", m.focus.Current(), m.focus.Tab())
	}
	pump(t, m, press(m, key("tab")))
	if m.focus.Current() != focus.PanelNavigator {
		t.Fatalf("tab must wrap back to the navigator")
	}
}

func TestEnteringDetailResetsItsScroll(t *testing.T) {
	m := startModel(t, seededStore())
	pump(t, m, press(m, key("tab")))
	m.detailScroll = 7
	pump(t, m, press(m, key("left")))
	pump(t, m, press(m, key("right")))
	if m.detailScroll != 0 {
		t.Fatalf("re-entering the detail panel must reset its scroll, got %d", m.detailScroll)
	}
}

func TestOverlayOwnsAllInput(t *testing.T) {
	m := startModel(t, seededStore())
	pump(t, m, press(m, keyRune('/')))
	if m.modes.Normal() {
		t.Fatalf("palette should be open")
	}
	before := m.focus.Current()
	for _, name := range []string{"left", "right"} {
		pump(t, m, press(m, key(name)))
	}
	pump(t, m, press(m, keyRune('e')))
	if m.focus.Current() != before {
		t.Fatalf("focus must not move while an overlay is active")
	}
	if m.edit != nil {
		t.Fatalf("the task editor must not open from inside the palette")
	}
}

func TestSecondOverlayRejected(t *testing.T) {
	m := startModel(t, seededStore())
	pump(t, m, press(m, keyRune('/')))
	if err := m.modes.Push(fakeOverlay{}); err == nil {
		t.Fatalf("a second overlay must be rejected")
	}
}

type fakeOverlay struct{}

func (fakeOverlay) Name() string { return "fake" }

func TestPaletteQueryFeaSelectsFeatures(t *testing.T) {
	m := startModel(t, seededStore())
	pump(t, m, press(m, keyRune('/')))
	typeString(t, m, "fea")
	if len(m.palette.items) == 0 {
		t.Fatalf("expected suggestions for 'fea'")
	}
	if m.palette.items[0].Label != completion.CmdFeatures {
		t.Fatalf("expected %s first, got %s", completion.CmdFeatures, m.palette.items[0].Label)
	}
	for i, item := range m.palette.items {
		if i == 0 && item.Label == completion.CmdQuit {
			t.Fatalf("/quit must never sort first")
		}
	}
}

func TestPaletteHidesInitOnceInitialized(t *testing.T) {
	m := startModel(t, seededStore())
	if err := m.setupStore.Commit("initialized", "yes"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m.initialized = m.setupStore.Initialized()
	pump(t, m, press(m, keyRune('/')))
	for _, item := range m.palette.items {
		if item.Label == completion.CmdInit {
			t.Fatalf("/init must be hidden once initialized")
		}
	}
}

func TestPaletteUnknownCommandRejectedInPlace(t *testing.T) {
	m := startModel(t, seededStore())
	pump(t, m, press(m, keyRune('/')))
	typeString(t, m, "zzz")
	pump(t, m, press(m, key("enter")))
	if m.modes.Normal() {
		t.Fatalf("an unknown command must keep the palette open")
	}
	if !m.statusErr {
		t.Fatalf("expected an error status for an unknown command")
	}
}

func TestConfirmEscMakesNoCall(t *testing.T) {
	m := startModel(t, seededStore())
	if err := m.setupStore.Commit("initialized", "yes"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m.initialized = true

	pump(t, m, press(m, keyRune('/')))
	typeString(t, m, "reset")
	pump(t, m, press(m, key("enter")))
	if m.modes.Normal() {
		t.Fatalf("expected the confirm dialog to open")
	}
	pump(t, m, press(m, key("esc")))
	if !m.modes.Normal() {
		t.Fatalf("esc must return to normal mode")
	}
	if !m.setupStore.Initialized() {
		t.Fatalf("cancelling the dialog must not touch stored state")
	}
}

func TestConfirmAffirmDestroysState(t *testing.T) {
	m := startModel(t, seededStore())
	if err := m.setupStore.Commit("initialized", "yes"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m.initialized = true

	pump(t, m, press(m, keyRune('/')))
	typeString(t, m, "reset")
	pump(t, m, press(m, key("enter")))
	pump(t, m, press(m, key("right"))) // move off the cancel default
	pump(t, m, press(m, key("enter")))
	if !m.modes.Normal() {
		t.Fatalf("affirming must close the dialog")
	}
	if m.setupStore.Initialized() || m.initialized {
		t.Fatalf("affirming must destroy stored state")
	}
}

func TestInterruptTwoStage(t *testing.T) {
	m := startModel(t, seededStore())
	at := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return at }

	pump(t, m, press(m, keyRune('/')))
	typeString(t, m, "fe")
	cmd := press(m, key("ctrl+c"))
	if cmd != nil {
		t.Fatalf("the first interrupt must not quit")
	}
	if m.palette == nil || m.palette.input.Value() != "" {
		t.Fatalf("the first interrupt must clear the palette query")
	}

	at = at.Add(interruptWindow / 2)
	cmd = press(m, key("ctrl+c"))
	if cmd == nil {
		t.Fatalf("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("a repeated interrupt inside the window must quit")
	}
}

func TestInterruptWindowLapses(t *testing.T) {
	m := startModel(t, seededStore())
	at := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return at }

	press(m, key("ctrl+c"))
	at = at.Add(interruptWindow + time.Second)
	if cmd := press(m, key("ctrl+c")); cmd != nil {
		t.Fatalf("a lapsed interrupt must re-arm instead of quitting")
	}
}

func TestEnterCyclesTaskStatus(t *testing.T) {
	store := seededStore()
	m := startModel(t, store)
	pump(t, m, press(m, key("tab")))
	pump(t, m, press(m, key("tab"))) // task list
	pump(t, m, press(m, key("enter")))

	if len(store.taskCalls) != 1 {
		t.Fatalf("expected one update call, got %d", len(store.taskCalls))
	}
	call := store.taskCalls[0]
	if call.taskID != "t1" || call.fields["status"] != "active" {
		t.Fatalf("expected t1 -> active, got %+v", call)
	}
}

func TestAltUpReordersTask(t *testing.T) {
	store := seededStore()
	m := startModel(t, store)
	pump(t, m, press(m, key("tab")))
	pump(t, m, press(m, key("tab")))
	pump(t, m, press(m, key("down"))) // select t2
	pump(t, m, press(m, key("alt+up")))

	if len(store.taskCalls) != 1 {
		t.Fatalf("expected one reorder call, got %d", len(store.taskCalls))
	}
	call := store.taskCalls[0]
	if call.taskID != "t2" || call.fields["position"] != 0 {
		t.Fatalf("expected t2 moved to position 0, got %+v", call)
	}
}

func TestNavigatorSelectionWrapsAndLoads(t *testing.T) {
	store := seededStore()
	m := startModel(t, store)
	pump(t, m, press(m, key("up"))) // wraps to the last feature
	if m.detail == nil || m.detail.ID != "f2" {
		t.Fatalf("expected wrap to f2, got %+v", m.detail)
	}
}

func TestSelectionAutoScrollWalk(t *testing.T) {
	store := seededStore()
	store.features = nil
	for i := 0; i < 20; i++ {
		store.features = append(store.features, feature.Summary{
			ID:   fmt.Sprintf("f%02d", i),
			Name: fmt.Sprintf("Feature %02d", i),
		})
	}
	m := newTestModel(t, store)
	m.height = chromeHeight + 5 // navigator viewport of 5 rows
	m.setFeatures(store.features)

	for i := 0; i < 19; i++ {
		m.featureSel.Move(1)
		m.syncNavViewport()
	}
	if got := m.navScroll; got != 15 {
		t.Fatalf("expected offset 15 after walking to the end, got %d", got)
	}
}
