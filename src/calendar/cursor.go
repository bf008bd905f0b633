package calendar

import (
	"sync"

	"lifelog/src/domain"
)

// CursorState is a snapshot of the cursor
type CursorState struct {
	DisplayedMonth domain.Date `json:"displayedMonth"`
	Selected       domain.Date `json:"selected"`
}

// Cursor tracks the displayed month and the selected date. It does not know
// about the entity store; selection is gated by the Window.
type Cursor struct {
	mu       sync.RWMutex
	window   Window
	month    domain.Date
	selected domain.Date
}

// NewCursor starts on today's month with today selected
func NewCursor(window Window) *Cursor {
	c := &Cursor{window: window}
	c.Reset()
	return c
}

// State returns the current displayed month and selection
func (c *Cursor) State() CursorState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return CursorState{DisplayedMonth: c.month, Selected: c.selected}
}

func (c *Cursor) DisplayedMonth() domain.Date {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.month
}

func (c *Cursor) Selected() domain.Date {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.selected
}

// ShiftMonth moves the displayed month by offset months. The selection is kept.
func (c *Cursor) ShiftMonth(offset int) CursorState {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.month = c.month.AddMonths(offset).StartOfMonth()
	return CursorState{DisplayedMonth: c.month, Selected: c.selected}
}

// ShowMonth displays the month containing d
func (c *Cursor) ShowMonth(d domain.Date) CursorState {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.month = d.StartOfMonth()
	return CursorState{DisplayedMonth: c.month, Selected: c.selected}
}

// Select moves the selection to d and displays its month.
// A date outside the window is ignored and false is returned.
func (c *Cursor) Select(d domain.Date) bool {
	if !c.window.IsSelectable(d) {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = d
	c.month = d.StartOfMonth()
	return true
}

// Reset goes back to today
func (c *Cursor) Reset() {
	today := c.window.today()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = today
	c.month = today.StartOfMonth()
}
