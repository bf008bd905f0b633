package usecase

import (
	"context"
	"strings"

	"lifelog/src/domain"
	"lifelog/src/query"
	"lifelog/src/store"
)

// CreateCategoryRequest represents input for creating a category
type CreateCategoryRequest struct {
	Name      string
	ColorType domain.ColorType
}

// UpdateCategoryRequest represents input for updating a category
type UpdateCategoryRequest struct {
	Name      *string
	ColorType *domain.ColorType
}

// CategoryUsecase defines the interface for category business logic
type CategoryUsecase interface {
	CreateCategory(ctx context.Context, req CreateCategoryRequest) (*domain.Category, error)
	GetCategory(ctx context.Context, id string) (*domain.Category, error)
	ListCategories(ctx context.Context, includeRemoved bool) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, id string, req UpdateCategoryRequest) (*domain.Category, error)
	RemoveCategory(ctx context.Context, id string) error
	ReorderCategories(ctx context.Context, ids []string) ([]domain.Category, error)
}

type categoryUsecase struct {
	categoryRepo domain.CategoryRepository
	store        *store.Store
}

// NewCategoryUsecase creates a new category usecase
func NewCategoryUsecase(categoryRepo domain.CategoryRepository, st *store.Store) CategoryUsecase {
	return &categoryUsecase{
		categoryRepo: categoryRepo,
		store:        st,
	}
}

// CreateCategory appends a category at the end of the order
func (u *categoryUsecase) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*domain.Category, error) {
	category := &domain.Category{
		Name:      strings.TrimSpace(req.Name),
		ColorType: req.ColorType,
	}
	if err := validateCategory(category); err != nil {
		return nil, err
	}

	active, err := u.categoryRepo.List(ctx, false)
	if err != nil {
		return nil, err
	}
	if len(active) >= domain.MaxCategories {
		return nil, ErrCategoryLimit
	}

	// 表示順は末尾に追加
	maxOrder := 0
	for _, c := range active {
		if c.OrderNo > maxOrder {
			maxOrder = c.OrderNo
		}
	}
	category.OrderNo = maxOrder + 1

	created, err := u.categoryRepo.Create(ctx, category)
	if err != nil {
		return nil, err
	}
	invalidate(u.store)
	return created, nil
}

// GetCategory retrieves a category by ID, removed or not
func (u *categoryUsecase) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	category, err := u.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, ErrCategoryNotFound)
	}
	return category, nil
}

// ListCategories returns the selectable categories ordered by orderNo,
// or every category when includeRemoved is set
func (u *categoryUsecase) ListCategories(ctx context.Context, includeRemoved bool) ([]domain.Category, error) {
	categories, err := u.categoryRepo.List(ctx, includeRemoved)
	if err != nil {
		return nil, err
	}
	if !includeRemoved {
		return query.SelectableCategories(categories), nil
	}
	query.SortCategories(categories)
	return categories, nil
}

// UpdateCategory renames or recolors a category
func (u *categoryUsecase) UpdateCategory(ctx context.Context, id string, req UpdateCategoryRequest) (*domain.Category, error) {
	existing, err := u.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *existing
	if req.Name != nil {
		updated.Name = strings.TrimSpace(*req.Name)
	}
	if req.ColorType != nil {
		updated.ColorType = *req.ColorType
	}
	if err := validateCategory(&updated); err != nil {
		return nil, err
	}

	result, err := u.categoryRepo.Update(ctx, &updated)
	if err != nil {
		return nil, mapNotFound(err, ErrCategoryNotFound)
	}
	invalidate(u.store)
	return result, nil
}

// RemoveCategory soft-deletes a category. Todos keep referencing it.
func (u *categoryUsecase) RemoveCategory(ctx context.Context, id string) error {
	if err := u.categoryRepo.Remove(ctx, id); err != nil {
		return mapNotFound(err, ErrCategoryNotFound)
	}
	invalidate(u.store)
	return nil
}

// ReorderCategories assigns orderNo = position+1 following ids
func (u *categoryUsecase) ReorderCategories(ctx context.Context, ids []string) ([]domain.Category, error) {
	if len(ids) == 0 {
		return nil, ErrInvalidOrder
	}

	all, err := u.categoryRepo.List(ctx, true)
	if err != nil {
		return nil, err
	}
	known := make(map[string]bool, len(all))
	for _, c := range all {
		known[c.ID] = true
	}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if !known[id] || seen[id] {
			return nil, ErrInvalidOrder
		}
		seen[id] = true
	}

	if err := u.categoryRepo.UpdateOrder(ctx, ids); err != nil {
		return nil, err
	}
	invalidate(u.store)
	return u.ListCategories(ctx, false)
}

// validateCategory validates the category fields
func validateCategory(c *domain.Category) error {
	if c.Name == "" || tooLong(c.Name, domain.MaxCategoryName) {
		return ErrInvalidCategoryName
	}
	if !c.ColorType.IsValid() {
		return ErrInvalidColorType
	}
	return nil
}
