package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"lifelog/src/calendar"
	"lifelog/src/domain"
	"lifelog/src/store"
)

// CreateJournalRequest represents input for creating a journal
type CreateJournalRequest struct {
	Date           domain.Date
	WeatherComment *domain.WeatherComment
	FeelingComment *domain.FeelingComment
	Contents       string
	ImageIDs       []string
	Memo           string
	Saved          bool
	Locked         bool
}

// UpdateJournalRequest represents input for updating a journal.
// Nil fields are left unchanged; ClearWeather/ClearFeeling drop the tag.
type UpdateJournalRequest struct {
	Date           *domain.Date
	WeatherComment *domain.WeatherComment
	ClearWeather   bool
	FeelingComment *domain.FeelingComment
	ClearFeeling   bool
	Contents       *string
	ImageIDs       []string
	Memo           *string
	Saved          *bool
	Locked         *bool
}

// JournalUsecase defines the interface for journal business logic
type JournalUsecase interface {
	CreateJournal(ctx context.Context, req CreateJournalRequest) (*domain.Journal, error)
	GetJournal(ctx context.Context, id string) (*domain.Journal, error)
	UpdateJournal(ctx context.Context, id string, req UpdateJournalRequest) (*domain.Journal, error)
	SetLocked(ctx context.Context, id string, locked bool) (*domain.Journal, error)
	ChangeImages(ctx context.Context, id string, imageIDs []string) (*domain.Journal, error)
	SaveJournal(ctx context.Context, id string) (*domain.Journal, error)
	DeleteJournal(ctx context.Context, id string) error
	FindJournals(ctx context.Context, scope domain.Scope, date domain.Date) ([]domain.Journal, error)
}

type journalUsecase struct {
	journalRepo domain.JournalRepository
	store       *store.Store
	window      calendar.Window
}

// NewJournalUsecase creates a new journal usecase
func NewJournalUsecase(journalRepo domain.JournalRepository, st *store.Store, window calendar.Window) JournalUsecase {
	return &journalUsecase{
		journalRepo: journalRepo,
		store:       st,
		window:      window,
	}
}

// CreateJournal creates the journal of a date. Only one journal may exist per date.
func (u *journalUsecase) CreateJournal(ctx context.Context, req CreateJournalRequest) (*domain.Journal, error) {
	journal := &domain.Journal{
		Date:           req.Date,
		WeatherComment: req.WeatherComment,
		FeelingComment: req.FeelingComment,
		Contents:       req.Contents,
		ImageIDs:       normalizeImageIDs(req.ImageIDs),
		Memo:           req.Memo,
		Saved:          req.Saved,
		Locked:         req.Locked,
	}
	if err := u.validate(journal); err != nil {
		return nil, err
	}

	// 同じ日付の日記が既にあれば作成しない
	if err := u.ensureDateFree(ctx, journal.Date, ""); err != nil {
		return nil, err
	}

	now := time.Now()
	journal.RegisteredOn = now
	journal.ModifiedOn = now

	created, err := u.journalRepo.Create(ctx, journal)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, ErrJournalAlreadyExists
		}
		return nil, err
	}
	invalidate(u.store)
	return created, nil
}

// GetJournal retrieves a journal by ID
func (u *journalUsecase) GetJournal(ctx context.Context, id string) (*domain.Journal, error) {
	journal, err := u.journalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, ErrJournalNotFound)
	}
	return journal, nil
}

// UpdateJournal updates an existing journal
func (u *journalUsecase) UpdateJournal(ctx context.Context, id string, req UpdateJournalRequest) (*domain.Journal, error) {
	existing, err := u.GetJournal(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *existing
	if req.Date != nil {
		updated.Date = *req.Date
	}
	if req.ClearWeather {
		updated.WeatherComment = nil
	} else if req.WeatherComment != nil {
		updated.WeatherComment = req.WeatherComment
	}
	if req.ClearFeeling {
		updated.FeelingComment = nil
	} else if req.FeelingComment != nil {
		updated.FeelingComment = req.FeelingComment
	}
	if req.Contents != nil {
		updated.Contents = *req.Contents
	}
	if req.ImageIDs != nil {
		updated.ImageIDs = normalizeImageIDs(req.ImageIDs)
	}
	if req.Memo != nil {
		updated.Memo = *req.Memo
	}
	if req.Saved != nil {
		updated.Saved = *req.Saved
	}
	if req.Locked != nil {
		updated.Locked = *req.Locked
	}

	if err := u.validate(&updated); err != nil {
		return nil, err
	}
	if updated.Date != existing.Date {
		if err := u.ensureDateFree(ctx, updated.Date, existing.ID); err != nil {
			return nil, err
		}
	}

	return u.update(ctx, &updated)
}

// SetLocked toggles the private flag
func (u *journalUsecase) SetLocked(ctx context.Context, id string, locked bool) (*domain.Journal, error) {
	return u.UpdateJournal(ctx, id, UpdateJournalRequest{Locked: &locked})
}

// ChangeImages replaces the image references
func (u *journalUsecase) ChangeImages(ctx context.Context, id string, imageIDs []string) (*domain.Journal, error) {
	if imageIDs == nil {
		imageIDs = []string{}
	}
	return u.UpdateJournal(ctx, id, UpdateJournalRequest{ImageIDs: imageIDs})
}

// SaveJournal marks a draft as saved
func (u *journalUsecase) SaveJournal(ctx context.Context, id string) (*domain.Journal, error) {
	saved := true
	return u.UpdateJournal(ctx, id, UpdateJournalRequest{Saved: &saved})
}

// DeleteJournal permanently deletes a journal
func (u *journalUsecase) DeleteJournal(ctx context.Context, id string) error {
	if err := u.journalRepo.Delete(ctx, id); err != nil {
		return mapNotFound(err, ErrJournalNotFound)
	}
	invalidate(u.store)
	return nil
}

// FindJournals returns the journals of the day, week or month containing date
func (u *journalUsecase) FindJournals(ctx context.Context, scope domain.Scope, date domain.Date) ([]domain.Journal, error) {
	if date.IsZero() {
		return nil, ErrInvalidDate
	}
	return u.journalRepo.ListBetween(ctx, scope.RangeOf(date))
}

func (u *journalUsecase) update(ctx context.Context, journal *domain.Journal) (*domain.Journal, error) {
	journal.ModifiedOn = time.Now()
	updated, err := u.journalRepo.Update(ctx, journal)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, ErrJournalAlreadyExists
		}
		return nil, mapNotFound(err, ErrJournalNotFound)
	}
	invalidate(u.store)
	return updated, nil
}

func (u *journalUsecase) ensureDateFree(ctx context.Context, date domain.Date, selfID string) error {
	other, err := u.journalRepo.GetByDate(ctx, date)
	switch {
	case err == nil && other.ID != selfID:
		return ErrJournalAlreadyExists
	case err == nil, errors.Is(err, domain.ErrNotFound):
		return nil
	default:
		return err
	}
}

// validate validates the journal fields
func (u *journalUsecase) validate(j *domain.Journal) error {
	if j.Date.IsZero() {
		return ErrInvalidDate
	}
	if !u.window.IsSelectable(j.Date) {
		return ErrDateOutOfWindow
	}
	if w := j.WeatherComment; w != nil {
		if !w.Weather.IsValid() {
			return ErrInvalidWeather
		}
		if tooLong(w.Comment, domain.MaxWeatherComment) {
			return ErrInvalidWeatherComment
		}
	}
	if f := j.FeelingComment; f != nil {
		if !f.Feeling.IsValid() {
			return ErrInvalidFeeling
		}
		if tooLong(f.Comment, domain.MaxFeelingComment) {
			return ErrInvalidFeelingComment
		}
	}
	if tooLong(j.Contents, domain.MaxJournalContents) {
		return ErrInvalidJournalContents
	}
	if tooLong(j.Memo, domain.MaxJournalMemo) {
		return ErrInvalidJournalMemo
	}
	if len(j.ImageIDs) > domain.MaxImagesPerJournal {
		return ErrTooManyImages
	}
	return nil
}

// normalizeImageIDs removes empty and duplicated references
func normalizeImageIDs(ids []string) []string {
	result := make([]string, 0, len(ids))
	seen := make(map[string]bool)
	for _, id := range ids {
		trimmed := strings.TrimSpace(id)
		if trimmed != "" && !seen[trimmed] {
			seen[trimmed] = true
			result = append(result, trimmed)
		}
	}
	return result
}
