package calendar

import (
	"time"

	"lifelog/src/domain"
)

// DefaultServiceStart is the first date the service accepts
var DefaultServiceStart = domain.MustParseDate("2025-01-01")

// Window gates which dates can be selected: nothing after today and nothing
// before the service start date.
type Window struct {
	Start domain.Date
	Today func() domain.Date
}

// NewWindow returns a window whose "today" is resolved in loc
func NewWindow(start domain.Date, loc *time.Location) Window {
	if start.IsZero() {
		start = DefaultServiceStart
	}
	return Window{
		Start: start,
		Today: func() domain.Date { return domain.Today(loc) },
	}
}

// IsSelectable reports whether d lies inside [Start, today]
func (w Window) IsSelectable(d domain.Date) bool {
	if d.IsZero() || d.Before(w.start()) {
		return false
	}
	return !d.After(w.today())
}

// IsToday reports whether d is the current date
func (w Window) IsToday(d domain.Date) bool {
	return d.Compare(w.today()) == 0
}

// Clamp moves d into the window, used when restoring a stale selection
func (w Window) Clamp(d domain.Date) domain.Date {
	if d.IsZero() || d.After(w.today()) {
		return w.today()
	}
	if d.Before(w.start()) {
		return w.start()
	}
	return d
}

func (w Window) start() domain.Date {
	if w.Start.IsZero() {
		return DefaultServiceStart
	}
	return w.Start
}

func (w Window) today() domain.Date {
	if w.Today == nil {
		return domain.Today(time.Local)
	}
	return w.Today()
}

// CurrentDate is "today" as seen by the window
func (w Window) CurrentDate() domain.Date {
	return w.today()
}
