// Package mode manages the transient overlay owning input: command palette,
// confirmation dialog, setup wizard, or inline editor. At most one overlay is
// active; the stack shape exists so deeper nesting stays a local change.
package mode

import (
	"errors"

	"featboard/internal/logging/events"
)

// Overlay is the closed set of non-Normal modes. New kinds are added here and
// matched exhaustively in the router.
type Overlay interface {
	Name() string
}

// CommandPalette is the slash-command suggestion overlay.
type CommandPalette struct{}

func (*CommandPalette) Name() string { return "palette" }

// ConfirmDialog guards a destructive action against accidental commits.
type ConfirmDialog struct {
	Target string
	Prompt string
	// Affirmed is flipped by the dialog's own input handling.
	Affirmed bool
}

func (*ConfirmDialog) Name() string { return "confirm" }

// SetupWizard walks first-run initialization step by step. Completed steps
// commit their side effects immediately; aborting does not roll them back.
type SetupWizard struct {
	Step int
}

func (*SetupWizard) Name() string { return "wizard" }

// InlineEditor hosts a draft edit session. Kind distinguishes the task-field
// editor from the free-form document editor.
type InlineEditor struct {
	Kind string
}

func (*InlineEditor) Name() string { return "editor" }

// ErrOverlayActive rejects opening a second overlay while one is up.
var ErrOverlayActive = errors.New("another overlay is already active")

// Stack tracks the active overlay. Empty means Normal.
type Stack struct {
	overlays []Overlay
}

// Active returns the overlay owning input, or nil in Normal mode.
func (s *Stack) Active() Overlay {
	if len(s.overlays) == 0 {
		return nil
	}
	return s.overlays[len(s.overlays)-1]
}

// Normal reports whether no overlay is active.
func (s *Stack) Normal() bool { return len(s.overlays) == 0 }

// Push activates an overlay. Exactly one may be active at a time.
func (s *Stack) Push(o Overlay) error {
	if o == nil {
		return errors.New("nil overlay")
	}
	if active := s.Active(); active != nil {
		events.Mode.Rejected(active.Name(), o.Name())
		return ErrOverlayActive
	}
	s.overlays = append(s.overlays, o)
	events.Mode.Push(o.Name())
	return nil
}

// Pop closes the active overlay. Popping in Normal mode is a no-op.
func (s *Stack) Pop(reason string) Overlay {
	if len(s.overlays) == 0 {
		return nil
	}
	top := s.overlays[len(s.overlays)-1]
	s.overlays = s.overlays[:len(s.overlays)-1]
	events.Mode.Pop(top.Name(), reason)
	return top
}
