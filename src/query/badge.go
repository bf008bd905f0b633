package query

import (
	"fmt"

	"lifelog/src/domain"
)

// DefaultBadgeLimit is the number of todos shown in a calendar cell
const DefaultBadgeLimit = 2

// Badge is a todo shown inside a calendar cell
type Badge struct {
	TodoID   string        `json:"todoId"`
	Contents string        `json:"contents"`
	Status   domain.Status `json:"status"`
	Category CategoryView  `json:"category"`
}

// BadgeSet is the truncated todo list of one cell.
// len(Shown) + Overflow always equals Total.
type BadgeSet struct {
	Shown    []Badge `json:"shown"`
	Overflow int     `json:"overflow"`
	Total    int     `json:"total"`
}

// OverflowLabel renders the "+N" indicator, empty when nothing is hidden
func (b BadgeSet) OverflowLabel() string {
	if b.Overflow <= 0 {
		return ""
	}
	return fmt.Sprintf("+%d", b.Overflow)
}

// Badges truncates the todos of one day to limit entries.
// The input must already be filtered to that day; it is ordered here.
func Badges(dayTodos []domain.Todo, idx CategoryIndex, limit int) BadgeSet {
	if limit < 0 {
		limit = 0
	}
	ordered := make([]domain.Todo, len(dayTodos))
	copy(ordered, dayTodos)
	SortTodos(ordered)

	shown := len(ordered)
	if shown > limit {
		shown = limit
	}

	set := BadgeSet{
		Shown:    make([]Badge, 0, shown),
		Overflow: len(ordered) - shown,
		Total:    len(ordered),
	}
	for _, t := range ordered[:shown] {
		set.Shown = append(set.Shown, Badge{
			TodoID:   t.ID,
			Contents: t.Contents,
			Status:   t.Status,
			Category: idx.ViewFor(t),
		})
	}
	return set
}
