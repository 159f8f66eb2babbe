package state

// NoSelection marks an empty list; every accessor treats it as "nothing to
// act on" rather than an error.
const NoSelection = -1

// Selection tracks a cursor into a list, wrapping on movement. A zero value
// is an empty selection.
type Selection struct {
	index  int
	length int
}

// NewSelection builds a selection over a list of the given length.
func NewSelection(length int) Selection {
	s := Selection{}
	s.Resize(length)
	return s
}

// Index returns the current position, or NoSelection when the list is empty.
func (s *Selection) Index() int {
	if s.length == 0 {
		return NoSelection
	}
	return s.index
}

// Len returns the tracked list length.
func (s *Selection) Len() int { return s.length }

// Resize re-bounds the selection after the underlying list changed, keeping
// the cursor on the same index when it still exists.
func (s *Selection) Resize(length int) {
	if length < 0 {
		length = 0
	}
	s.length = length
	if length == 0 {
		s.index = 0
		return
	}
	if s.index >= length {
		s.index = length - 1
	}
	if s.index < 0 {
		s.index = 0
	}
}

// Move shifts the cursor by delta, wrapping modulo the list length. Empty
// lists are a no-op.
func (s *Selection) Move(delta int) bool {
	if s.length == 0 {
		return false
	}
	next := (s.index + delta) % s.length
	if next < 0 {
		next += s.length
	}
	moved := next != s.index
	s.index = next
	return moved
}

// Set jumps to the given index, clamping into range. Empty lists ignore it.
func (s *Selection) Set(index int) {
	if s.length == 0 {
		s.index = 0
		return
	}
	if index < 0 {
		index = 0
	}
	if index >= s.length {
		index = s.length - 1
	}
	s.index = index
}
