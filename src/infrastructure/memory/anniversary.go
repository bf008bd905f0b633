package memory

import (
	"context"
	"sort"
	"sync"

	"lifelog/src/domain"

	"github.com/google/uuid"
)

// AnniversaryRepository is an in-memory domain.AnniversaryRepository
type AnniversaryRepository struct {
	mu            sync.RWMutex
	anniversaries map[string]domain.Anniversary
}

// NewAnniversaryRepository creates an empty anniversary repository
func NewAnniversaryRepository() *AnniversaryRepository {
	return &AnniversaryRepository{anniversaries: make(map[string]domain.Anniversary)}
}

func (r *AnniversaryRepository) Create(_ context.Context, anniversary *domain.Anniversary) (*domain.Anniversary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *anniversary
	stored.ID = uuid.NewString()
	r.anniversaries[stored.ID] = stored
	return &stored, nil
}

func (r *AnniversaryRepository) GetByID(_ context.Context, id string) (*domain.Anniversary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.anniversaries[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &a, nil
}

// List returns every anniversary ordered by month and day
func (r *AnniversaryRepository) List(_ context.Context) ([]domain.Anniversary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Anniversary, 0, len(r.anniversaries))
	for _, a := range r.anniversaries {
		result = append(result, a)
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i].Date, result[j].Date
		if a.Month != b.Month {
			return a.Month < b.Month
		}
		if a.Day != b.Day {
			return a.Day < b.Day
		}
		return result[i].Name < result[j].Name
	})
	return result, nil
}

func (r *AnniversaryRepository) Update(_ context.Context, anniversary *domain.Anniversary) (*domain.Anniversary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.anniversaries[anniversary.ID]; !ok {
		return nil, domain.ErrNotFound
	}
	stored := *anniversary
	r.anniversaries[stored.ID] = stored
	return &stored, nil
}

func (r *AnniversaryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.anniversaries[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.anniversaries, id)
	return nil
}
