package usecase

import (
	"context"

	"lifelog/src/calendar"
	"lifelog/src/domain"
	"lifelog/src/query"
	"lifelog/src/store"
)

// maxCursorOffset limits a single month jump to a hundred years
const maxCursorOffset = 1200

// DayCell is one calendar cell with the records of its date
type DayCell struct {
	Date          domain.Date          `json:"date"`
	InMonth       bool                 `json:"inMonth"`
	Selectable    bool                 `json:"selectable"`
	Today         bool                 `json:"today"`
	Selected      bool                 `json:"selected"`
	JournalID     string               `json:"journalId,omitempty"`
	Feeling       domain.Feeling       `json:"feeling,omitempty"`
	Todos         query.BadgeSet       `json:"todos"`
	Anniversaries []domain.Anniversary `json:"anniversaries"`
}

// MonthView is the rendered calendar of one month
type MonthView struct {
	Month      string    `json:"month"`
	Padding    int       `json:"padding"`
	Generation uint64    `json:"generation"`
	Cells      []DayCell `json:"cells"`
}

// TodoView is a todo joined with its category
type TodoView struct {
	domain.Todo
	Category query.CategoryView `json:"category"`
}

// DayView is everything recorded on one date
type DayView struct {
	Date          domain.Date          `json:"date"`
	Selectable    bool                 `json:"selectable"`
	Journal       *domain.Journal      `json:"journal"`
	Todos         []TodoView           `json:"todos"`
	Categories    []query.CategoryView `json:"categories"`
	Anniversaries []domain.Anniversary `json:"anniversaries"`
}

// SelectResult reports whether the cursor accepted a selection
type SelectResult struct {
	calendar.CursorState
	Accepted bool `json:"accepted"`
}

// CalendarUsecase builds calendar views from the entity store and drives the date cursor
type CalendarUsecase interface {
	Month(ctx context.Context, month domain.Date, padding *bool) (*MonthView, error)
	DisplayedMonth(ctx context.Context, padding *bool) (*MonthView, error)
	Day(ctx context.Context, date domain.Date) (*DayView, error)
	Cursor() calendar.CursorState
	ShiftMonth(offset int) (calendar.CursorState, error)
	Select(date domain.Date) SelectResult
}

type calendarUsecase struct {
	loader         *store.Loader
	state          *store.AppState
	window         calendar.Window
	defaultPadding bool
	badgeLimit     int
}

// NewCalendarUsecase creates a new calendar usecase
func NewCalendarUsecase(loader *store.Loader, state *store.AppState, window calendar.Window, defaultPadding bool) CalendarUsecase {
	return &calendarUsecase{
		loader:         loader,
		state:          state,
		window:         window,
		defaultPadding: defaultPadding,
		badgeLimit:     query.DefaultBadgeLimit,
	}
}

// Month returns the grid of the month containing month with every cell filled
func (u *calendarUsecase) Month(ctx context.Context, month domain.Date, padding *bool) (*MonthView, error) {
	snap, err := u.loader.Ensure(ctx)
	if err != nil {
		return nil, err
	}

	usePadding := u.defaultPadding
	if padding != nil {
		usePadding = *padding
	}
	grid := calendar.Generate(month, calendar.LayoutFor(usePadding))

	// グリッド範囲のデータだけを先に絞り込む
	span := grid.Range()
	journals := query.JournalsBetween(snap.Journals, span)
	todos := query.TodosBetween(snap.Todos, span)
	idx := query.NewCategoryIndex(snap.Categories)
	selected := u.state.Cursor.Selected()

	view := &MonthView{
		Month:      grid.Month.MonthString(),
		Padding:    grid.Padding,
		Generation: snap.Generation,
		Cells:      make([]DayCell, 0, len(grid.Cells)),
	}
	for _, c := range grid.Cells {
		cell := DayCell{
			Date:          c.Date,
			InMonth:       c.InMonth,
			Selectable:    u.window.IsSelectable(c.Date),
			Today:         u.window.IsToday(c.Date),
			Selected:      c.Date == selected,
			Todos:         query.Badges(query.TodosOn(todos, c.Date), idx, u.badgeLimit),
			Anniversaries: query.AnniversariesOn(snap.Anniversaries, c.Date),
		}
		if j, ok := query.JournalOn(journals, c.Date); ok {
			cell.JournalID = j.ID
			cell.Feeling = j.Feeling()
		}
		view.Cells = append(view.Cells, cell)
	}
	return view, nil
}

// DisplayedMonth renders the month the cursor is on
func (u *calendarUsecase) DisplayedMonth(ctx context.Context, padding *bool) (*MonthView, error) {
	return u.Month(ctx, u.state.Cursor.DisplayedMonth(), padding)
}

// Day returns the journal, todos, categories and anniversaries of date
func (u *calendarUsecase) Day(ctx context.Context, date domain.Date) (*DayView, error) {
	if date.IsZero() {
		return nil, ErrInvalidDate
	}
	snap, err := u.loader.Ensure(ctx)
	if err != nil {
		return nil, err
	}

	idx := query.NewCategoryIndex(snap.Categories)
	view := &DayView{
		Date:          date,
		Selectable:    u.window.IsSelectable(date),
		Todos:         make([]TodoView, 0),
		Categories:    query.CategoriesOn(snap.Todos, snap.Categories, date),
		Anniversaries: query.AnniversariesOn(snap.Anniversaries, date),
	}
	if j, ok := query.JournalOn(snap.Journals, date); ok {
		view.Journal = &j
	}
	for _, t := range query.TodosOn(snap.Todos, date) {
		view.Todos = append(view.Todos, TodoView{Todo: t, Category: idx.ViewFor(t)})
	}
	return view, nil
}

// Cursor returns the displayed month and selected date
func (u *calendarUsecase) Cursor() calendar.CursorState {
	return u.state.Cursor.State()
}

// ShiftMonth moves the displayed month
func (u *calendarUsecase) ShiftMonth(offset int) (calendar.CursorState, error) {
	if offset < -maxCursorOffset || offset > maxCursorOffset {
		return calendar.CursorState{}, ErrInvalidCursorMovement
	}
	return u.state.Cursor.ShiftMonth(offset), nil
}

// Select moves the selection. A date outside the service window leaves the
// cursor as it was and reports Accepted=false.
func (u *calendarUsecase) Select(date domain.Date) SelectResult {
	accepted := u.state.Cursor.Select(date)
	return SelectResult{CursorState: u.state.Cursor.State(), Accepted: accepted}
}
