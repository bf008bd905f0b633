package usecase

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"lifelog/src/calendar"
	"lifelog/src/domain"
	"lifelog/src/store"
)

var notificationTimePattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// SaveProfileRequest represents input for the personal part of the profile
type SaveProfileRequest struct {
	Name        string
	BirthDate   domain.Date
	PhoneNumber string
	Remark      string
}

// ChangeSettingsRequest represents input for the display settings
type ChangeSettingsRequest struct {
	NotificationTime *string
	IsDark           *bool
	FontType         *domain.FontType
}

// ProfileUsecase defines the interface for profile business logic
type ProfileUsecase interface {
	GetProfile(ctx context.Context) (*domain.Profile, error)
	SaveProfile(ctx context.Context, req SaveProfileRequest) (*domain.Profile, error)
	ChangeSettings(ctx context.Context, req ChangeSettingsRequest) (*domain.Profile, error)
}

type profileUsecase struct {
	profileRepo domain.ProfileRepository
	store       *store.Store
	window      calendar.Window
}

// NewProfileUsecase creates a new profile usecase
func NewProfileUsecase(profileRepo domain.ProfileRepository, st *store.Store, window calendar.Window) ProfileUsecase {
	return &profileUsecase{
		profileRepo: profileRepo,
		store:       st,
		window:      window,
	}
}

// GetProfile returns the singleton profile
func (u *profileUsecase) GetProfile(ctx context.Context) (*domain.Profile, error) {
	profile, err := u.profileRepo.Get(ctx)
	if err != nil {
		return nil, mapNotFound(err, ErrProfileNotFound)
	}
	return profile, nil
}

// SaveProfile creates or replaces the personal fields of the profile
func (u *profileUsecase) SaveProfile(ctx context.Context, req SaveProfileRequest) (*domain.Profile, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || tooLong(name, maxProfileName) {
		return nil, ErrInvalidProfileName
	}
	if tooLong(req.Remark, domain.MaxProfileRemark) {
		return nil, ErrInvalidRemark
	}
	if !req.BirthDate.IsZero() && req.BirthDate.After(u.window.CurrentDate()) {
		return nil, ErrInvalidBirthDate
	}

	profile, err := u.loadOrDefault(ctx)
	if err != nil {
		return nil, err
	}
	profile.Name = name
	profile.BirthDate = req.BirthDate
	profile.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	profile.Remark = req.Remark

	return u.save(ctx, profile)
}

// ChangeSettings updates notification time, dark mode and font
func (u *profileUsecase) ChangeSettings(ctx context.Context, req ChangeSettingsRequest) (*domain.Profile, error) {
	if req.NotificationTime != nil && !notificationTimePattern.MatchString(*req.NotificationTime) {
		return nil, ErrInvalidNotification
	}
	if req.FontType != nil && !req.FontType.IsValid() {
		return nil, ErrInvalidFontType
	}

	profile, err := u.loadOrDefault(ctx)
	if err != nil {
		return nil, err
	}
	if req.NotificationTime != nil {
		profile.NotificationTime = *req.NotificationTime
	}
	if req.IsDark != nil {
		profile.IsDark = *req.IsDark
	}
	if req.FontType != nil {
		profile.FontType = *req.FontType
	}

	return u.save(ctx, profile)
}

func (u *profileUsecase) save(ctx context.Context, profile *domain.Profile) (*domain.Profile, error) {
	profile.ModifiedOn = time.Now()
	saved, err := u.profileRepo.Save(ctx, profile)
	if err != nil {
		return nil, err
	}
	invalidate(u.store)
	return saved, nil
}

// loadOrDefault returns a copy of the stored profile, or a fresh one with
// default settings when none exists yet
func (u *profileUsecase) loadOrDefault(ctx context.Context) (*domain.Profile, error) {
	existing, err := u.profileRepo.Get(ctx)
	if err == nil {
		copied := *existing
		return &copied, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	return domain.NewProfile(), nil
}
