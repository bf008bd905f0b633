package usecase

import (
	"context"
	"strings"
	"time"

	"lifelog/src/domain"
	"lifelog/src/query"
	"lifelog/src/store"
)

// CreateTodoRequest represents input for creating a todo.
// Times are naive wall-clock values (see domain.ParseDateTime).
type CreateTodoRequest struct {
	CategoryID    string
	Contents      string
	Memo          string
	IsPeriod      bool
	StartDateTime time.Time
	EndDateTime   time.Time
	Status        domain.Status
}

// UpdateTodoRequest represents input for updating a todo
type UpdateTodoRequest struct {
	CategoryID    *string
	Contents      *string
	Memo          *string
	IsPeriod      *bool
	StartDateTime *time.Time
	EndDateTime   *time.Time
	Status        *domain.Status
}

// TodoUsecase defines the interface for todo business logic
type TodoUsecase interface {
	CreateTodo(ctx context.Context, req CreateTodoRequest) (*domain.Todo, error)
	GetTodo(ctx context.Context, id string) (*domain.Todo, error)
	UpdateTodo(ctx context.Context, id string, req UpdateTodoRequest) (*domain.Todo, error)
	ChangeStatus(ctx context.Context, id string, status domain.Status) (*domain.Todo, error)
	CopyTodo(ctx context.Context, id string, date domain.Date) (*domain.Todo, error)
	DeleteTodo(ctx context.Context, id string) error
	FindTodos(ctx context.Context, scope domain.Scope, date domain.Date) ([]domain.Todo, error)
}

type todoUsecase struct {
	todoRepo     domain.TodoRepository
	categoryRepo domain.CategoryRepository
	store        *store.Store
}

// NewTodoUsecase creates a new todo usecase
func NewTodoUsecase(todoRepo domain.TodoRepository, categoryRepo domain.CategoryRepository, st *store.Store) TodoUsecase {
	return &todoUsecase{
		todoRepo:     todoRepo,
		categoryRepo: categoryRepo,
		store:        st,
	}
}

// CreateTodo creates a new todo. The category must exist and be selectable.
func (u *todoUsecase) CreateTodo(ctx context.Context, req CreateTodoRequest) (*domain.Todo, error) {
	status := req.Status
	if status == "" {
		status = domain.StatusNotStarted // デフォルト値
	}

	todo := &domain.Todo{
		CategoryID:    strings.TrimSpace(req.CategoryID),
		Contents:      strings.TrimSpace(req.Contents),
		Memo:          req.Memo,
		IsPeriod:      req.IsPeriod,
		StartDateTime: req.StartDateTime,
		EndDateTime:   req.EndDateTime,
		Status:        status,
		RegisteredOn:  time.Now(),
	}
	normalizeTodoTimes(todo)

	if err := validateTodo(todo); err != nil {
		return nil, err
	}
	if err := u.ensureSelectableCategory(ctx, todo.CategoryID); err != nil {
		return nil, err
	}

	created, err := u.todoRepo.Create(ctx, todo)
	if err != nil {
		return nil, err
	}
	invalidate(u.store)
	return created, nil
}

// GetTodo retrieves a todo by ID
func (u *todoUsecase) GetTodo(ctx context.Context, id string) (*domain.Todo, error) {
	todo, err := u.todoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, ErrTodoNotFound)
	}
	return todo, nil
}

// UpdateTodo updates an existing todo
func (u *todoUsecase) UpdateTodo(ctx context.Context, id string, req UpdateTodoRequest) (*domain.Todo, error) {
	existing, err := u.GetTodo(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *existing
	if req.CategoryID != nil {
		updated.CategoryID = strings.TrimSpace(*req.CategoryID)
	}
	if req.Contents != nil {
		updated.Contents = strings.TrimSpace(*req.Contents)
	}
	if req.Memo != nil {
		updated.Memo = *req.Memo
	}
	if req.IsPeriod != nil {
		updated.IsPeriod = *req.IsPeriod
	}
	if req.StartDateTime != nil {
		updated.StartDateTime = *req.StartDateTime
	}
	if req.EndDateTime != nil {
		updated.EndDateTime = *req.EndDateTime
	}
	if req.Status != nil {
		updated.Status = *req.Status
	}
	normalizeTodoTimes(&updated)

	if err := validateTodo(&updated); err != nil {
		return nil, err
	}
	// 削除済みカテゴリを参照し続けるのは許可、新たに付け替えるのは不可
	if updated.CategoryID != existing.CategoryID {
		if err := u.ensureSelectableCategory(ctx, updated.CategoryID); err != nil {
			return nil, err
		}
	}

	return u.update(ctx, &updated)
}

// ChangeStatus sets the status. Any status may follow any other.
func (u *todoUsecase) ChangeStatus(ctx context.Context, id string, status domain.Status) (*domain.Todo, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}
	existing, err := u.GetTodo(ctx, id)
	if err != nil {
		return nil, err
	}
	updated := *existing
	updated.Status = status
	return u.update(ctx, &updated)
}

// CopyTodo duplicates a todo onto another date keeping its times of day.
// The copy starts over as NOT_STARTED.
func (u *todoUsecase) CopyTodo(ctx context.Context, id string, date domain.Date) (*domain.Todo, error) {
	if date.IsZero() {
		return nil, ErrInvalidDate
	}
	source, err := u.GetTodo(ctx, id)
	if err != nil {
		return nil, err
	}

	// 期間の長さ（日数）を保ったまま移動する
	span := source.EndDateTime.Sub(source.StartDateTime)
	start := domain.MoveToDate(source.StartDateTime, date)

	copied := &domain.Todo{
		CategoryID:    source.CategoryID,
		Contents:      source.Contents,
		Memo:          source.Memo,
		IsPeriod:      source.IsPeriod,
		StartDateTime: start,
		EndDateTime:   start.Add(span),
		Status:        domain.StatusNotStarted,
		RegisteredOn:  time.Now(),
	}
	if err := u.ensureSelectableCategory(ctx, copied.CategoryID); err != nil {
		return nil, err
	}

	created, err := u.todoRepo.Create(ctx, copied)
	if err != nil {
		return nil, err
	}
	invalidate(u.store)
	return created, nil
}

// DeleteTodo permanently deletes a todo
func (u *todoUsecase) DeleteTodo(ctx context.Context, id string) error {
	if err := u.todoRepo.Delete(ctx, id); err != nil {
		return mapNotFound(err, ErrTodoNotFound)
	}
	invalidate(u.store)
	return nil
}

// FindTodos returns the todos starting in the day, week or month containing
// date, ascending by start time
func (u *todoUsecase) FindTodos(ctx context.Context, scope domain.Scope, date domain.Date) ([]domain.Todo, error) {
	if date.IsZero() {
		return nil, ErrInvalidDate
	}
	todos, err := u.todoRepo.ListBetween(ctx, scope.RangeOf(date))
	if err != nil {
		return nil, err
	}
	query.SortTodos(todos)
	return todos, nil
}

func (u *todoUsecase) update(ctx context.Context, todo *domain.Todo) (*domain.Todo, error) {
	updated, err := u.todoRepo.Update(ctx, todo)
	if err != nil {
		return nil, mapNotFound(err, ErrTodoNotFound)
	}
	invalidate(u.store)
	return updated, nil
}

func (u *todoUsecase) ensureSelectableCategory(ctx context.Context, categoryID string) error {
	if categoryID == "" {
		return ErrCategoryRequired
	}
	category, err := u.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return mapNotFound(err, ErrCategoryNotFound)
	}
	if category.Removed {
		return ErrCategoryRemoved
	}
	return nil
}

// normalizeTodoTimes collapses a point-in-time todo to a single instant
func normalizeTodoTimes(t *domain.Todo) {
	if !t.IsPeriod || t.EndDateTime.IsZero() {
		t.EndDateTime = t.StartDateTime
	}
}

// validateTodo validates the todo fields
func validateTodo(t *domain.Todo) error {
	if t.Contents == "" || tooLong(t.Contents, domain.MaxTodoContents) {
		return ErrInvalidTodoContents
	}
	if tooLong(t.Memo, domain.MaxTodoMemo) {
		return ErrInvalidTodoMemo
	}
	if !t.Status.IsValid() {
		return ErrInvalidStatus
	}
	if t.StartDateTime.IsZero() {
		return ErrInvalidTodoTime
	}
	if t.EndDateTime.Before(t.StartDateTime) {
		return ErrInvalidTodoPeriod
	}
	return nil
}
