package usecase

import (
	"context"
	"strings"
	"time"

	"lifelog/src/domain"
	"lifelog/src/query"
	"lifelog/src/store"
)

// CreateAnniversaryRequest represents input for creating an anniversary
type CreateAnniversaryRequest struct {
	DateType domain.AnniversaryType
	Date     domain.Date
	Name     string
	Weight   domain.AnniversaryWeight
}

// UpdateAnniversaryRequest represents input for updating an anniversary
type UpdateAnniversaryRequest struct {
	DateType *domain.AnniversaryType
	Date     *domain.Date
	Name     *string
	Weight   *domain.AnniversaryWeight
}

// AnniversaryUsecase defines the interface for anniversary business logic
type AnniversaryUsecase interface {
	CreateAnniversary(ctx context.Context, req CreateAnniversaryRequest) (*domain.Anniversary, error)
	GetAnniversary(ctx context.Context, id string) (*domain.Anniversary, error)
	UpdateAnniversary(ctx context.Context, id string, req UpdateAnniversaryRequest) (*domain.Anniversary, error)
	DeleteAnniversary(ctx context.Context, id string) error
	FindAnniversaries(ctx context.Context, scope domain.Scope, date domain.Date) ([]query.AnniversaryOccurrence, error)
}

type anniversaryUsecase struct {
	anniversaryRepo domain.AnniversaryRepository
	store           *store.Store
}

// NewAnniversaryUsecase creates a new anniversary usecase
func NewAnniversaryUsecase(anniversaryRepo domain.AnniversaryRepository, st *store.Store) AnniversaryUsecase {
	return &anniversaryUsecase{
		anniversaryRepo: anniversaryRepo,
		store:           st,
	}
}

// CreateAnniversary creates a new anniversary
func (u *anniversaryUsecase) CreateAnniversary(ctx context.Context, req CreateAnniversaryRequest) (*domain.Anniversary, error) {
	weight := req.Weight
	if weight == "" {
		weight = domain.WeightMedium // デフォルト値
	}

	now := time.Now()
	anniversary := &domain.Anniversary{
		DateType:     req.DateType,
		Date:         req.Date,
		Name:         strings.TrimSpace(req.Name),
		Weight:       weight,
		RegisteredOn: now,
		ModifiedOn:   now,
	}
	if err := validateAnniversary(anniversary); err != nil {
		return nil, err
	}

	created, err := u.anniversaryRepo.Create(ctx, anniversary)
	if err != nil {
		return nil, err
	}
	invalidate(u.store)
	return created, nil
}

// GetAnniversary retrieves an anniversary by ID
func (u *anniversaryUsecase) GetAnniversary(ctx context.Context, id string) (*domain.Anniversary, error) {
	anniversary, err := u.anniversaryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, ErrAnniversaryNotFound)
	}
	return anniversary, nil
}

// UpdateAnniversary updates an existing anniversary
func (u *anniversaryUsecase) UpdateAnniversary(ctx context.Context, id string, req UpdateAnniversaryRequest) (*domain.Anniversary, error) {
	existing, err := u.GetAnniversary(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *existing
	if req.DateType != nil {
		updated.DateType = *req.DateType
	}
	if req.Date != nil {
		updated.Date = *req.Date
	}
	if req.Name != nil {
		updated.Name = strings.TrimSpace(*req.Name)
	}
	if req.Weight != nil {
		updated.Weight = *req.Weight
	}
	if err := validateAnniversary(&updated); err != nil {
		return nil, err
	}
	updated.ModifiedOn = time.Now()

	result, err := u.anniversaryRepo.Update(ctx, &updated)
	if err != nil {
		return nil, mapNotFound(err, ErrAnniversaryNotFound)
	}
	invalidate(u.store)
	return result, nil
}

// DeleteAnniversary permanently deletes an anniversary
func (u *anniversaryUsecase) DeleteAnniversary(ctx context.Context, id string) error {
	if err := u.anniversaryRepo.Delete(ctx, id); err != nil {
		return mapNotFound(err, ErrAnniversaryNotFound)
	}
	invalidate(u.store)
	return nil
}

// FindAnniversaries places the yearly anniversaries on the dates of the day,
// week or month containing date
func (u *anniversaryUsecase) FindAnniversaries(ctx context.Context, scope domain.Scope, date domain.Date) ([]query.AnniversaryOccurrence, error) {
	if date.IsZero() {
		return nil, ErrInvalidDate
	}
	all, err := u.anniversaryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return query.AnniversariesBetween(all, scope.RangeOf(date)), nil
}

// validateAnniversary validates the anniversary fields
func validateAnniversary(a *domain.Anniversary) error {
	if a.Date.IsZero() {
		return ErrInvalidDate
	}
	if a.Name == "" || tooLong(a.Name, domain.MaxAnniversaryName) {
		return ErrInvalidAnniversaryName
	}
	if !a.DateType.IsValid() {
		return ErrInvalidAnniversaryType
	}
	if !a.Weight.IsValid() {
		return ErrInvalidAnniversaryWeight
	}
	return nil
}
