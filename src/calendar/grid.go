package calendar

import (
	"lifelog/src/domain"
)

// Layout selects how the month grid is aligned
type Layout int

const (
	// LayoutMonthOnly emits exactly the days of the month starting at day 1
	LayoutMonthOnly Layout = iota
	// LayoutSundayPadded left-pads with trailing days of the previous month so the
	// first cell falls on a Sunday
	LayoutSundayPadded
)

// Cell is one slot of the month grid
type Cell struct {
	Date    domain.Date `json:"date"`
	InMonth bool        `json:"inMonth"`
}

// Grid is the ordered cell sequence of one month
type Grid struct {
	Month   domain.Date `json:"month"`
	Padding int         `json:"padding"`
	Cells   []Cell      `json:"cells"`
}

// LayoutFor maps the padding flag used by config and query strings to a Layout
func LayoutFor(padding bool) Layout {
	if padding {
		return LayoutSundayPadded
	}
	return LayoutMonthOnly
}

// Generate builds the grid of the month containing ref.
// Cells are in ascending date order; padding cells (if any) come first.
func Generate(ref domain.Date, layout Layout) Grid {
	first := ref.StartOfMonth()
	days := domain.DaysInMonth(first.Year, first.Month)

	padding := 0
	if layout == LayoutSundayPadded {
		padding = int(first.Weekday())
	}

	cells := make([]Cell, 0, padding+days)
	for i := padding; i > 0; i-- {
		cells = append(cells, Cell{Date: first.AddDays(-i)})
	}
	for day := 1; day <= days; day++ {
		cells = append(cells, Cell{
			Date:    domain.Date{Year: first.Year, Month: first.Month, Day: day},
			InMonth: true,
		})
	}

	return Grid{Month: first, Padding: padding, Cells: cells}
}

// MonthDays returns only the in-month dates of a grid
func (g Grid) MonthDays() []domain.Date {
	days := make([]domain.Date, 0, len(g.Cells)-g.Padding)
	for _, c := range g.Cells {
		if c.InMonth {
			days = append(days, c.Date)
		}
	}
	return days
}

// Range is the inclusive span covered by the grid, padding included
func (g Grid) Range() domain.DateRange {
	if len(g.Cells) == 0 {
		return domain.DateRange{}
	}
	return domain.DateRange{From: g.Cells[0].Date, To: g.Cells[len(g.Cells)-1].Date}
}
