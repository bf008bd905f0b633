// Package query maps a date or date range to the journals, todos, anniversaries
// and categories that apply to it. All functions are pure and never modify
// their input slices.
package query

import (
	"sort"

	"lifelog/src/domain"
)

// JournalsOn returns the journals dated d
func JournalsOn(journals []domain.Journal, d domain.Date) []domain.Journal {
	return JournalsBetween(journals, domain.DayRange(d))
}

// JournalOn returns the journal of d, if any
func JournalOn(journals []domain.Journal, d domain.Date) (domain.Journal, bool) {
	for _, j := range journals {
		if j.Date == d {
			return j, true
		}
	}
	return domain.Journal{}, false
}

// JournalsBetween returns the journals inside r ordered by date
func JournalsBetween(journals []domain.Journal, r domain.DateRange) []domain.Journal {
	result := make([]domain.Journal, 0)
	for _, j := range journals {
		if r.Contains(j.Date) {
			result = append(result, j)
		}
	}
	sort.SliceStable(result, func(a, b int) bool {
		return result[a].Date.Before(result[b].Date)
	})
	return result
}

// TodosOn returns the todos whose start falls on d, ascending by start time
func TodosOn(todos []domain.Todo, d domain.Date) []domain.Todo {
	return TodosBetween(todos, domain.DayRange(d))
}

// TodosBetween returns the todos starting inside r, ascending by start time.
// Todos with the same start keep their input order.
func TodosBetween(todos []domain.Todo, r domain.DateRange) []domain.Todo {
	result := make([]domain.Todo, 0)
	for _, t := range todos {
		if r.Contains(t.StartDate()) {
			result = append(result, t)
		}
	}
	SortTodos(result)
	return result
}

// SortTodos orders todos ascending by start time in place
func SortTodos(todos []domain.Todo) {
	sort.SliceStable(todos, func(a, b int) bool {
		return todos[a].StartDateTime.Before(todos[b].StartDateTime)
	})
}

// AnniversariesOn returns the anniversaries recurring on d
func AnniversariesOn(anniversaries []domain.Anniversary, d domain.Date) []domain.Anniversary {
	result := make([]domain.Anniversary, 0)
	for _, a := range anniversaries {
		if a.OccursOn(d) {
			result = append(result, a)
		}
	}
	return result
}

// AnniversaryOccurrence is an anniversary placed on a concrete date
type AnniversaryOccurrence struct {
	Date        domain.Date        `json:"date"`
	Anniversary domain.Anniversary `json:"anniversary"`
}

// AnniversariesBetween places every anniversary on each date of r it recurs on
func AnniversariesBetween(anniversaries []domain.Anniversary, r domain.DateRange) []AnniversaryOccurrence {
	result := make([]AnniversaryOccurrence, 0)
	for _, d := range r.Days() {
		for _, a := range anniversaries {
			if a.OccursOn(d) {
				result = append(result, AnniversaryOccurrence{Date: d, Anniversary: a})
			}
		}
	}
	return result
}

// DuplicateJournalDates lists the dates that hold more than one journal
func DuplicateJournalDates(journals []domain.Journal) []domain.Date {
	seen := make(map[domain.Date]int, len(journals))
	var dups []domain.Date
	for _, j := range journals {
		seen[j.Date]++
		if seen[j.Date] == 2 {
			dups = append(dups, j.Date)
		}
	}
	return dups
}
