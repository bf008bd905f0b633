package store

import (
	"lifelog/src/calendar"
)

// AppState is the explicit application state shared by the use cases:
// the entity store and the date cursor. It replaces ambient globals.
type AppState struct {
	Store  *Store
	Cursor *calendar.Cursor
}

// NewAppState creates a fresh state whose cursor is gated by window
func NewAppState(window calendar.Window) *AppState {
	return &AppState{
		Store:  New(),
		Cursor: calendar.NewCursor(window),
	}
}

// Reset clears the snapshot and moves the cursor back to today
func (s *AppState) Reset() {
	s.Store.Clear()
	s.Cursor.Reset()
}
