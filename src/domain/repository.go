package domain

import "context"

// JournalRepository defines the interface for journal data operations.
// GetByDate returns ErrNotFound when no journal exists for the date.
type JournalRepository interface {
	Create(ctx context.Context, journal *Journal) (*Journal, error)
	GetByID(ctx context.Context, id string) (*Journal, error)
	GetByDate(ctx context.Context, date Date) (*Journal, error)
	List(ctx context.Context) ([]Journal, error)
	ListBetween(ctx context.Context, r DateRange) ([]Journal, error)
	Update(ctx context.Context, journal *Journal) (*Journal, error)
	Delete(ctx context.Context, id string) error
}

// TodoRepository defines the interface for todo data operations.
// ListBetween matches on the start date of each todo.
type TodoRepository interface {
	Create(ctx context.Context, todo *Todo) (*Todo, error)
	GetByID(ctx context.Context, id string) (*Todo, error)
	List(ctx context.Context) ([]Todo, error)
	ListBetween(ctx context.Context, r DateRange) ([]Todo, error)
	Update(ctx context.Context, todo *Todo) (*Todo, error)
	Delete(ctx context.Context, id string) error
}

// CategoryRepository defines the interface for category data operations.
// Remove is a soft delete.
type CategoryRepository interface {
	Create(ctx context.Context, category *Category) (*Category, error)
	GetByID(ctx context.Context, id string) (*Category, error)
	List(ctx context.Context, includeRemoved bool) ([]Category, error)
	Update(ctx context.Context, category *Category) (*Category, error)
	Remove(ctx context.Context, id string) error
	UpdateOrder(ctx context.Context, orderedIDs []string) error
}

// AnniversaryRepository defines the interface for anniversary data operations
type AnniversaryRepository interface {
	Create(ctx context.Context, anniversary *Anniversary) (*Anniversary, error)
	GetByID(ctx context.Context, id string) (*Anniversary, error)
	List(ctx context.Context) ([]Anniversary, error)
	Update(ctx context.Context, anniversary *Anniversary) (*Anniversary, error)
	Delete(ctx context.Context, id string) error
}

// ProfileRepository stores the singleton profile
type ProfileRepository interface {
	Get(ctx context.Context) (*Profile, error)
	Save(ctx context.Context, profile *Profile) (*Profile, error)
}
