package stats

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"lifelog/src/domain"
)

// Strategy is the period granularity of the statistics
type Strategy string

const (
	Monthly   Strategy = "MONTHLY"
	Quarterly Strategy = "QUARTERLY"
	Yearly    Strategy = "YEARLY"
)

var ErrInvalidStrategy = errors.New("strategy must be MONTHLY, QUARTERLY or YEARLY")
var ErrInvalidPeriod = errors.New("period does not match the strategy")

// ParseStrategy accepts the strategy name in any case; "" means MONTHLY
func ParseStrategy(s string) (Strategy, error) {
	if s == "" {
		return Monthly, nil
	}
	st := Strategy(strings.ToUpper(s))
	if !st.IsValid() {
		return "", ErrInvalidStrategy
	}
	return st, nil
}

func (s Strategy) IsValid() bool {
	return s == Monthly || s == Quarterly || s == Yearly
}

// MinJournals is the sample size below which a bucket is flagged as insufficient
func (s Strategy) MinJournals() int {
	switch s {
	case Quarterly:
		return 30
	case Yearly:
		return 100
	default:
		return 10
	}
}

// PeriodOf returns the bucket key of d: "2025-07", "2025-Q3" or "2025"
func (s Strategy) PeriodOf(d domain.Date) string {
	switch s {
	case Quarterly:
		return fmt.Sprintf("%04d-Q%d", d.Year, (int(d.Month)-1)/3+1)
	case Yearly:
		return fmt.Sprintf("%04d", d.Year)
	default:
		return d.MonthString()
	}
}

// RangeOf is the inverse of PeriodOf
func (s Strategy) RangeOf(period string) (domain.DateRange, error) {
	switch s {
	case Quarterly:
		parts := strings.SplitN(period, "-Q", 2)
		if len(parts) != 2 {
			return domain.DateRange{}, ErrInvalidPeriod
		}
		year, err := strconv.Atoi(parts[0])
		if err != nil {
			return domain.DateRange{}, ErrInvalidPeriod
		}
		q, err := strconv.Atoi(parts[1])
		if err != nil || q < 1 || q > 4 {
			return domain.DateRange{}, ErrInvalidPeriod
		}
		from := domain.Date{Year: year, Month: time.Month((q-1)*3 + 1), Day: 1}
		return domain.DateRange{From: from, To: from.AddMonths(2).EndOfMonth()}, nil
	case Yearly:
		year, err := strconv.Atoi(period)
		if err != nil || len(period) != 4 {
			return domain.DateRange{}, ErrInvalidPeriod
		}
		return domain.DateRange{
			From: domain.Date{Year: year, Month: time.January, Day: 1},
			To:   domain.Date{Year: year, Month: time.December, Day: 31},
		}, nil
	default:
		first, err := domain.ParseMonth(period)
		if err != nil {
			return domain.DateRange{}, ErrInvalidPeriod
		}
		return domain.MonthRange(first), nil
	}
}

// FeelingCount is one row of the feeling distribution
type FeelingCount struct {
	Feeling    domain.Feeling `json:"feeling"`
	Count      int            `json:"count"`
	Percentage float64        `json:"percentage"`
}

// StatusCount is one row of the todo status distribution
type StatusCount struct {
	Status     domain.Status `json:"status"`
	Count      int           `json:"count"`
	Percentage float64       `json:"percentage"`
}

// Summary holds the counters and both distributions of one set of records
type Summary struct {
	Period              string         `json:"period,omitempty"`
	TotalJournals       int            `json:"totalJournals"`
	TotalTodos          int            `json:"totalTodos"`
	CompletedTodos      int            `json:"completedTodos"`
	CompletionRate      float64        `json:"completionRate"`
	FeelingDistribution []FeelingCount `json:"feelingDistribution"`
	StatusDistribution  []StatusCount  `json:"statusDistribution"`
	MinJournals         int            `json:"minJournals"`
	Sufficient          bool           `json:"sufficient"`
}

// CompletionRate is DONE/total*100, and 0 for no todos
func CompletionRate(todos []domain.Todo) float64 {
	if len(todos) == 0 {
		return 0
	}
	return float64(countDone(todos)) / float64(len(todos)) * 100
}

func countDone(todos []domain.Todo) int {
	done := 0
	for _, t := range todos {
		if t.Status == domain.StatusDone {
			done++
		}
	}
	return done
}

// FeelingDistribution counts journals per feeling, most frequent first.
// Percentages are relative to all journals, including those without a feeling.
func FeelingDistribution(journals []domain.Journal) []FeelingCount {
	counts := make(map[domain.Feeling]int)
	for _, j := range journals {
		if f := j.Feeling(); f != "" {
			counts[f]++
		}
	}

	result := make([]FeelingCount, 0, len(domain.Feelings))
	for _, f := range domain.Feelings {
		result = append(result, FeelingCount{
			Feeling:    f,
			Count:      counts[f],
			Percentage: percentage(counts[f], len(journals)),
		})
	}
	sort.SliceStable(result, func(a, b int) bool {
		return result[a].Count > result[b].Count
	})
	return result
}

// StatusDistribution counts todos per status, most frequent first
func StatusDistribution(todos []domain.Todo) []StatusCount {
	counts := make(map[domain.Status]int)
	for _, t := range todos {
		counts[t.Status]++
	}

	result := make([]StatusCount, 0, len(domain.Statuses))
	for _, s := range domain.Statuses {
		result = append(result, StatusCount{
			Status:     s,
			Count:      counts[s],
			Percentage: percentage(counts[s], len(todos)),
		})
	}
	sort.SliceStable(result, func(a, b int) bool {
		return result[a].Count > result[b].Count
	})
	return result
}

func percentage(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}

// Summarize computes the statistics of the given records without bucketing
func Summarize(journals []domain.Journal, todos []domain.Todo, s Strategy) Summary {
	return Summary{
		TotalJournals:       len(journals),
		TotalTodos:          len(todos),
		CompletedTodos:      countDone(todos),
		CompletionRate:      CompletionRate(todos),
		FeelingDistribution: FeelingDistribution(journals),
		StatusDistribution:  StatusDistribution(todos),
		MinJournals:         s.MinJournals(),
		Sufficient:          len(journals) >= s.MinJournals(),
	}
}

// Aggregate buckets journals by date and todos by start date, one Summary per
// period that has any record, in ascending period order
func Aggregate(journals []domain.Journal, todos []domain.Todo, s Strategy) []Summary {
	journalsByPeriod := make(map[string][]domain.Journal)
	todosByPeriod := make(map[string][]domain.Todo)
	periods := make(map[string]struct{})

	for _, j := range journals {
		p := s.PeriodOf(j.Date)
		journalsByPeriod[p] = append(journalsByPeriod[p], j)
		periods[p] = struct{}{}
	}
	for _, t := range todos {
		p := s.PeriodOf(t.StartDate())
		todosByPeriod[p] = append(todosByPeriod[p], t)
		periods[p] = struct{}{}
	}

	keys := make([]string, 0, len(periods))
	for p := range periods {
		keys = append(keys, p)
	}
	// キーは年から始まるゼロ埋め形式なので文字列順がそのまま時系列順
	sort.Strings(keys)

	result := make([]Summary, 0, len(keys))
	for _, p := range keys {
		summary := Summarize(journalsByPeriod[p], todosByPeriod[p], s)
		summary.Period = p
		result = append(result, summary)
	}
	return result
}

// Compute returns the statistics of one period, e.g. "2025-Q3" for Quarterly
func Compute(journals []domain.Journal, todos []domain.Todo, s Strategy, period string) (Summary, error) {
	r, err := s.RangeOf(period)
	if err != nil {
		return Summary{}, err
	}

	var js []domain.Journal
	for _, j := range journals {
		if r.Contains(j.Date) {
			js = append(js, j)
		}
	}
	var ts []domain.Todo
	for _, t := range todos {
		if r.Contains(t.StartDate()) {
			ts = append(ts, t)
		}
	}

	summary := Summarize(js, ts, s)
	summary.Period = s.PeriodOf(r.From)
	return summary, nil
}
