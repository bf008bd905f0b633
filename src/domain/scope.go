package domain

import (
	"errors"
	"strings"
)

// Scope is the span of a seek query around a date
type Scope string

const (
	ScopeDaily   Scope = "daily"
	ScopeWeekly  Scope = "weekly"
	ScopeMonthly Scope = "monthly"
)

// Scopes lists every scope in increasing span
var Scopes = []Scope{ScopeDaily, ScopeWeekly, ScopeMonthly}

var ErrInvalidScope = errors.New("scope must be daily, weekly or monthly")

// ParseScope is case-insensitive
func ParseScope(s string) (Scope, error) {
	scope := Scope(strings.ToLower(s))
	switch scope {
	case ScopeDaily, ScopeWeekly, ScopeMonthly:
		return scope, nil
	default:
		return "", ErrInvalidScope
	}
}

// RangeOf returns the day, Sunday-start week or month containing d
func (s Scope) RangeOf(d Date) DateRange {
	switch s {
	case ScopeWeekly:
		return WeekRange(d)
	case ScopeMonthly:
		return MonthRange(d)
	default:
		return DayRange(d)
	}
}
