// Package memory keeps every record in process memory. It backs the server
// when no database is configured and serves as the fake in tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"lifelog/src/domain"

	"github.com/google/uuid"
)

// JournalRepository is an in-memory domain.JournalRepository
type JournalRepository struct {
	mu       sync.RWMutex
	journals map[string]domain.Journal
}

// NewJournalRepository creates an empty journal repository
func NewJournalRepository() *JournalRepository {
	return &JournalRepository{journals: make(map[string]domain.Journal)}
}

// Create stores a journal under a new id. A second journal for the same date is refused.
func (r *JournalRepository) Create(_ context.Context, journal *domain.Journal) (*domain.Journal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.dateTakenLocked(journal.Date, "") {
		return nil, domain.ErrDuplicate
	}

	stored := cloneJournal(*journal)
	stored.ID = uuid.NewString()
	r.journals[stored.ID] = stored

	result := cloneJournal(stored)
	return &result, nil
}

func (r *JournalRepository) GetByID(_ context.Context, id string) (*domain.Journal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	j, ok := r.journals[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	result := cloneJournal(j)
	return &result, nil
}

func (r *JournalRepository) GetByDate(_ context.Context, date domain.Date) (*domain.Journal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, j := range r.journals {
		if j.Date == date {
			result := cloneJournal(j)
			return &result, nil
		}
	}
	return nil, domain.ErrNotFound
}

// List returns every journal ordered by date
func (r *JournalRepository) List(ctx context.Context) ([]domain.Journal, error) {
	return r.filter(func(domain.Journal) bool { return true }), nil
}

// ListBetween returns the journals dated inside the range ordered by date
func (r *JournalRepository) ListBetween(_ context.Context, dr domain.DateRange) ([]domain.Journal, error) {
	return r.filter(func(j domain.Journal) bool { return dr.Contains(j.Date) }), nil
}

func (r *JournalRepository) Update(_ context.Context, journal *domain.Journal) (*domain.Journal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.journals[journal.ID]; !ok {
		return nil, domain.ErrNotFound
	}
	if r.dateTakenLocked(journal.Date, journal.ID) {
		return nil, domain.ErrDuplicate
	}

	stored := cloneJournal(*journal)
	r.journals[stored.ID] = stored
	result := cloneJournal(stored)
	return &result, nil
}

func (r *JournalRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.journals[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.journals, id)
	return nil
}

func (r *JournalRepository) filter(keep func(domain.Journal) bool) []domain.Journal {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Journal, 0, len(r.journals))
	for _, j := range r.journals {
		if keep(j) {
			result = append(result, cloneJournal(j))
		}
	}
	sort.Slice(result, func(a, b int) bool {
		return result[a].Date.Before(result[b].Date)
	})
	return result
}

func (r *JournalRepository) dateTakenLocked(date domain.Date, selfID string) bool {
	for id, j := range r.journals {
		if id != selfID && j.Date == date {
			return true
		}
	}
	return false
}

func cloneJournal(j domain.Journal) domain.Journal {
	j.ImageIDs = append([]string{}, j.ImageIDs...)
	if j.WeatherComment != nil {
		w := *j.WeatherComment
		j.WeatherComment = &w
	}
	if j.FeelingComment != nil {
		f := *j.FeelingComment
		j.FeelingComment = &f
	}
	return j
}
