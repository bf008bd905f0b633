package memory

import (
	"context"
	"sort"
	"sync"

	"lifelog/src/domain"

	"github.com/google/uuid"
)

// TodoRepository is an in-memory domain.TodoRepository
type TodoRepository struct {
	mu    sync.RWMutex
	todos map[string]domain.Todo
}

// NewTodoRepository creates an empty todo repository
func NewTodoRepository() *TodoRepository {
	return &TodoRepository{todos: make(map[string]domain.Todo)}
}

func (r *TodoRepository) Create(_ context.Context, todo *domain.Todo) (*domain.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *todo
	stored.ID = uuid.NewString()
	r.todos[stored.ID] = stored
	return &stored, nil
}

func (r *TodoRepository) GetByID(_ context.Context, id string) (*domain.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.todos[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

// List returns every todo ordered by start time
func (r *TodoRepository) List(_ context.Context) ([]domain.Todo, error) {
	return r.filter(func(domain.Todo) bool { return true }), nil
}

// ListBetween returns the todos whose start date is inside the range
func (r *TodoRepository) ListBetween(_ context.Context, dr domain.DateRange) ([]domain.Todo, error) {
	return r.filter(func(t domain.Todo) bool { return dr.Contains(t.StartDate()) }), nil
}

func (r *TodoRepository) Update(_ context.Context, todo *domain.Todo) (*domain.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.todos[todo.ID]; !ok {
		return nil, domain.ErrNotFound
	}
	stored := *todo
	r.todos[stored.ID] = stored
	return &stored, nil
}

func (r *TodoRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.todos[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.todos, id)
	return nil
}

func (r *TodoRepository) filter(keep func(domain.Todo) bool) []domain.Todo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Todo, 0, len(r.todos))
	for _, t := range r.todos {
		if keep(t) {
			result = append(result, t)
		}
	}
	sort.Slice(result, func(a, b int) bool {
		if !result[a].StartDateTime.Equal(result[b].StartDateTime) {
			return result[a].StartDateTime.Before(result[b].StartDateTime)
		}
		return result[a].RegisteredOn.Before(result[b].RegisteredOn)
	})
	return result
}
