// Package history keeps the undo snapshots of an edit session.
package history

import (
	"errors"

	"github.com/ironsheep/blur-faces-mcp/internal/raster"
)

// ErrEmpty is returned by Pop when there is nothing to undo.
var ErrEmpty = errors.New("nothing to undo")

// Stack is an unbounded last-in-first-out list of full-image snapshots.
//
// Entries are ordered most-recent-last. The stack takes ownership of every
// pushed buffer and never modifies it; callers must push a Snapshot, not the
// live buffer.
type Stack struct {
	entries []*raster.Buffer
}

// New returns an empty stack.
func New() *Stack {
	return &Stack{}
}

// Push appends a snapshot. Nil snapshots are ignored.
func (s *Stack) Push(snapshot *raster.Buffer) {
	if snapshot == nil {
		return
	}
	s.entries = append(s.entries, snapshot)
}

// Pop removes and returns the most recent snapshot, or ErrEmpty.
func (s *Stack) Pop() (*raster.Buffer, error) {
	n := len(s.entries)
	if n == 0 {
		return nil, ErrEmpty
	}
	top := s.entries[n-1]
	s.entries[n-1] = nil
	s.entries = s.entries[:n-1]
	return top, nil
}

// Len returns the number of stored snapshots.
func (s *Stack) Len() int {
	return len(s.entries)
}

// Clear drops every snapshot.
func (s *Stack) Clear() {
	s.entries = nil
}
