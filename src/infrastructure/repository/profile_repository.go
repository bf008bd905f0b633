package repository

import (
	"context"
	"errors"

	"lifelog/src/database"
	"lifelog/src/domain"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const profileColumns = `id, name, birth_date, phone_number, remark, password_hash,
	notification_time, is_dark, font_type, registered_on, modified_on`

// ProfileRepository stores the single profile row
type ProfileRepository struct {
	db     *database.DB
	logger *logrus.Logger
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *database.DB, logger *logrus.Logger) *ProfileRepository {
	return &ProfileRepository{db: db, logger: logger}
}

// Get returns the profile, domain.ErrNotFound before the first save
func (r *ProfileRepository) Get(ctx context.Context) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles ORDER BY registered_on LIMIT 1`

	var p domain.Profile
	var fontType string
	err := r.db.QueryRowContext(ctx, query).Scan(
		&p.ID, &p.Name, &p.BirthDate, &p.PhoneNumber, &p.Remark, &p.PasswordHash,
		&p.NotificationTime, &p.IsDark, &fontType, &p.RegisteredOn, &p.ModifiedOn,
	)
	if err != nil {
		return nil, translateError(err, "failed to get profile")
	}
	p.FontType = domain.FontType(fontType)
	return &p, nil
}

// Save inserts the profile or updates the existing row
func (r *ProfileRepository) Save(ctx context.Context, profile *domain.Profile) (*domain.Profile, error) {
	saved := *profile

	existing, err := r.Get(ctx)
	switch {
	case err == nil:
		saved.ID = existing.ID
		saved.RegisteredOn = existing.RegisteredOn
	case errors.Is(err, domain.ErrNotFound):
		if saved.ID == "" {
			saved.ID = uuid.NewString()
		}
	default:
		return nil, err
	}

	query := `
		INSERT INTO profiles (` + profileColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, birth_date = EXCLUDED.birth_date, phone_number = EXCLUDED.phone_number,
			remark = EXCLUDED.remark, password_hash = EXCLUDED.password_hash,
			notification_time = EXCLUDED.notification_time, is_dark = EXCLUDED.is_dark,
			font_type = EXCLUDED.font_type, modified_on = EXCLUDED.modified_on`

	_, err = r.db.ExecContext(ctx, query,
		saved.ID, saved.Name, saved.BirthDate, saved.PhoneNumber, saved.Remark, saved.PasswordHash,
		saved.NotificationTime, saved.IsDark, string(saved.FontType), saved.RegisteredOn, saved.ModifiedOn,
	)
	if err != nil {
		r.logger.WithError(err).Error("プロフィールの保存に失敗")
		return nil, translateError(err, "failed to save profile")
	}

	r.logger.WithField("profile_id", saved.ID).Info("プロフィールを保存しました")
	return &saved, nil
}
