package memory

import (
	"context"
	"sort"
	"sync"

	"lifelog/src/domain"

	"github.com/google/uuid"
)

// CategoryRepository is an in-memory domain.CategoryRepository
type CategoryRepository struct {
	mu         sync.RWMutex
	categories map[string]domain.Category
}

// NewCategoryRepository creates an empty category repository
func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{categories: make(map[string]domain.Category)}
}

func (r *CategoryRepository) Create(_ context.Context, category *domain.Category) (*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *category
	stored.ID = uuid.NewString()
	r.categories[stored.ID] = stored
	return &stored, nil
}

func (r *CategoryRepository) GetByID(_ context.Context, id string) (*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.categories[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

// List returns categories ordered by orderNo; removed ones only when asked
func (r *CategoryRepository) List(_ context.Context, includeRemoved bool) ([]domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Category, 0, len(r.categories))
	for _, c := range r.categories {
		if includeRemoved || !c.Removed {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(a, b int) bool {
		if result[a].OrderNo != result[b].OrderNo {
			return result[a].OrderNo < result[b].OrderNo
		}
		return result[a].ID < result[b].ID
	})
	return result, nil
}

func (r *CategoryRepository) Update(_ context.Context, category *domain.Category) (*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.categories[category.ID]; !ok {
		return nil, domain.ErrNotFound
	}
	stored := *category
	r.categories[stored.ID] = stored
	return &stored, nil
}

// Remove flags the category as removed and keeps the record
func (r *CategoryRepository) Remove(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.categories[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.Removed = true
	r.categories[id] = c
	return nil
}

// UpdateOrder sets orderNo = position+1 for each listed id
func (r *CategoryRepository) UpdateOrder(_ context.Context, orderedIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range orderedIDs {
		if _, ok := r.categories[id]; !ok {
			return domain.ErrNotFound
		}
	}
	for i, id := range orderedIDs {
		c := r.categories[id]
		c.OrderNo = i + 1
		r.categories[id] = c
	}
	return nil
}
