package repository

import (
	"context"

	"lifelog/src/database"
	"lifelog/src/domain"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const anniversaryColumns = `id, date_type, date, name, weight, registered_on, modified_on`

// AnniversaryRepository implements domain.AnniversaryRepository on PostgreSQL
type AnniversaryRepository struct {
	db     *database.DB
	logger *logrus.Logger
}

// NewAnniversaryRepository creates a new anniversary repository
func NewAnniversaryRepository(db *database.DB, logger *logrus.Logger) *AnniversaryRepository {
	return &AnniversaryRepository{db: db, logger: logger}
}

// Create creates a new anniversary
func (r *AnniversaryRepository) Create(ctx context.Context, anniversary *domain.Anniversary) (*domain.Anniversary, error) {
	created := *anniversary
	created.ID = uuid.NewString()

	query := `INSERT INTO anniversaries (` + anniversaryColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query,
		created.ID, string(created.DateType), created.Date, created.Name, string(created.Weight),
		created.RegisteredOn, created.ModifiedOn,
	)
	if err != nil {
		r.logger.WithError(err).Error("記念日の作成に失敗")
		return nil, translateError(err, "failed to create anniversary")
	}

	r.logger.WithField("anniversary_id", created.ID).Info("記念日を作成しました")
	return &created, nil
}

// GetByID retrieves an anniversary by ID
func (r *AnniversaryRepository) GetByID(ctx context.Context, id string) (*domain.Anniversary, error) {
	query := `SELECT ` + anniversaryColumns + ` FROM anniversaries WHERE id = $1`
	anniversary, err := scanAnniversary(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translateError(err, "failed to get anniversary")
	}
	return anniversary, nil
}

// List returns every anniversary ordered by month and day
func (r *AnniversaryRepository) List(ctx context.Context) ([]domain.Anniversary, error) {
	query := `SELECT ` + anniversaryColumns + ` FROM anniversaries
		ORDER BY EXTRACT(MONTH FROM date), EXTRACT(DAY FROM date), name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.WithError(err).Error("記念日一覧の取得に失敗")
		return nil, translateError(err, "failed to list anniversaries")
	}
	defer rows.Close()

	anniversaries := make([]domain.Anniversary, 0)
	for rows.Next() {
		anniversary, err := scanAnniversary(rows)
		if err != nil {
			return nil, translateError(err, "failed to scan anniversary")
		}
		anniversaries = append(anniversaries, *anniversary)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err, "failed to iterate anniversaries")
	}
	return anniversaries, nil
}

// Update replaces every field of an anniversary
func (r *AnniversaryRepository) Update(ctx context.Context, anniversary *domain.Anniversary) (*domain.Anniversary, error) {
	query := `
		UPDATE anniversaries
		SET date_type = $2, date = $3, name = $4, weight = $5, modified_on = $6
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		anniversary.ID, string(anniversary.DateType), anniversary.Date, anniversary.Name,
		string(anniversary.Weight), anniversary.ModifiedOn,
	)
	if err != nil {
		r.logger.WithError(err).WithField("anniversary_id", anniversary.ID).Error("記念日の更新に失敗")
		return nil, translateError(err, "failed to update anniversary")
	}
	if err := expectOneRow(result, "update anniversary"); err != nil {
		return nil, err
	}

	updated := *anniversary
	return &updated, nil
}

// Delete permanently deletes an anniversary
func (r *AnniversaryRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM anniversaries WHERE id = $1`, id)
	if err != nil {
		r.logger.WithError(err).WithField("anniversary_id", id).Error("記念日の削除に失敗")
		return translateError(err, "failed to delete anniversary")
	}
	return expectOneRow(result, "delete anniversary")
}

func scanAnniversary(row rowScanner) (*domain.Anniversary, error) {
	var a domain.Anniversary
	var dateType, weight string
	err := row.Scan(&a.ID, &dateType, &a.Date, &a.Name, &weight, &a.RegisteredOn, &a.ModifiedOn)
	if err != nil {
		return nil, err
	}
	a.DateType = domain.AnniversaryType(dateType)
	a.Weight = domain.AnniversaryWeight(weight)
	return &a, nil
}
