// Package editsession holds the transient draft state for inline edits. A
// draft is decoupled from the persisted record: nothing reaches the store
// until an explicit save, and a cancelled draft leaves no trace.
package editsession

import (
	"strings"

	"featboard/internal/feature"
	"featboard/internal/invoker"
)

// Kind selects the draft shape.
const (
	KindTask     = "task"
	KindDocument = "document"
)

// Descriptions shorter than this are rejected before any store call.
const minDescriptionLen = 10

// Payload is the diff handed to the store on save: only changed fields.
type Payload struct {
	Kind      string
	FeatureID string
	TaskID    string
	Fields    map[string]any
}

// Session is an open draft. The zero value is closed.
type Session struct {
	kind      string
	featureID string

	origTask feature.Task
	workTask feature.Task

	origBody string
	workBody string

	dirty bool
	open  bool
}

// OpenTask snapshots a task into a fresh draft.
func OpenTask(featureID string, task feature.Task) *Session {
	return &Session{
		kind:      KindTask,
		featureID: featureID,
		origTask:  task.Clone(),
		workTask:  task.Clone(),
		open:      true,
	}
}

// OpenDocument snapshots a document body into a fresh draft.
func OpenDocument(featureID, body string) *Session {
	return &Session{
		kind:      KindDocument,
		featureID: featureID,
		origBody:  body,
		workBody:  body,
		open:      true,
	}
}

// Kind returns the draft shape.
func (s *Session) Kind() string { return s.kind }

// FeatureID returns the owning feature.
func (s *Session) FeatureID() string { return s.featureID }

// Open reports whether the session still owns a draft.
func (s *Session) Open() bool { return s != nil && s.open }

// Dirty reports whether any field diverged from the snapshot.
func (s *Session) Dirty() bool { return s != nil && s.dirty }

// Task returns the working copy of the task draft.
func (s *Session) Task() feature.Task { return s.workTask.Clone() }

// Body returns the working copy of the document draft.
func (s *Session) Body() string { return s.workBody }

// SetTitle updates the task title draft.
func (s *Session) SetTitle(title string) {
	s.workTask.Title = title
	s.dirty = true
}

// SetDescription updates the task description draft.
func (s *Session) SetDescription(desc string) {
	s.workTask.Description = desc
	s.dirty = true
}

// SetCriteria replaces the ordered acceptance-criteria lines.
func (s *Session) SetCriteria(lines []string) {
	s.workTask.Criteria = append([]string(nil), lines...)
	s.dirty = true
}

// SetBody updates the document body draft.
func (s *Session) SetBody(body string) {
	s.workBody = body
	s.dirty = true
}

// Cancel discards the working copy. No store interaction happens.
func (s *Session) Cancel() {
	s.open = false
}

// Save validates the working copy and returns the diff to hand to the store.
// Validation failures leave the session open; a successful save closes it
// immediately, before the store call settles, so a store failure surfaces on
// the status line rather than re-opening the editor.
func (s *Session) Save() (Payload, error) {
	if !s.Open() {
		return Payload{}, &invoker.ValidationError{Reason: "no draft open"}
	}
	switch s.kind {
	case KindTask:
		if strings.TrimSpace(s.workTask.Title) == "" {
			return Payload{}, &invoker.ValidationError{Field: "title", Reason: "must not be empty"}
		}
		if desc := strings.TrimSpace(s.workTask.Description); desc != "" && len(desc) < minDescriptionLen {
			return Payload{}, &invoker.ValidationError{Field: "description", Reason: "too short"}
		}
		payload := Payload{
			Kind:      KindTask,
			FeatureID: s.featureID,
			TaskID:    s.origTask.ID,
			Fields:    taskDiff(s.origTask, s.workTask),
		}
		s.open = false
		return payload, nil
	case KindDocument:
		payload := Payload{Kind: KindDocument, FeatureID: s.featureID, Fields: map[string]any{}}
		if s.workBody != s.origBody {
			payload.Fields["body"] = s.workBody
		}
		s.open = false
		return payload, nil
	default:
		return Payload{}, &invoker.ValidationError{Reason: "unknown draft kind"}
	}
}

// taskDiff lists only the fields that changed between snapshot and draft.
func taskDiff(orig, work feature.Task) map[string]any {
	fields := map[string]any{}
	if work.Title != orig.Title {
		fields["title"] = work.Title
	}
	if work.Description != orig.Description {
		fields["description"] = work.Description
	}
	if !equalLines(work.Criteria, orig.Criteria) {
		fields["criteria"] = append([]string(nil), work.Criteria...)
	}
	return fields
}

func equalLines(a, b []string) bool {
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
