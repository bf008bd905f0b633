package repository

import (
	"context"
	"database/sql"

	"lifelog/src/database"
	"lifelog/src/domain"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

const journalColumns = `id, date, weather, weather_comment, feeling, feeling_comment,
	contents, image_ids, memo, saved, locked, registered_on, modified_on`

// JournalRepository implements domain.JournalRepository on PostgreSQL
type JournalRepository struct {
	db     *database.DB
	logger *logrus.Logger
}

// NewJournalRepository creates a new journal repository
func NewJournalRepository(db *database.DB, logger *logrus.Logger) *JournalRepository {
	return &JournalRepository{db: db, logger: logger}
}

// Create creates a new journal. The unique index on date rejects a second
// journal for the same day with domain.ErrDuplicate.
func (r *JournalRepository) Create(ctx context.Context, journal *domain.Journal) (*domain.Journal, error) {
	created := *journal
	created.ID = uuid.NewString()
	weather, weatherComment := splitWeather(created.WeatherComment)
	feeling, feelingComment := splitFeeling(created.FeelingComment)

	query := `
		INSERT INTO journals (` + journalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.db.ExecContext(ctx, query,
		created.ID, created.Date, weather, weatherComment, feeling, feelingComment,
		created.Contents, pq.Array(nonNil(created.ImageIDs)), created.Memo, created.Saved, created.Locked,
		created.RegisteredOn, created.ModifiedOn,
	)
	if err != nil {
		r.logger.WithError(err).WithField("date", created.Date.String()).Error("日記の作成に失敗")
		return nil, translateError(err, "failed to create journal")
	}

	r.logger.WithField("journal_id", created.ID).Info("日記を作成しました")
	return &created, nil
}

// GetByID retrieves a journal by ID
func (r *JournalRepository) GetByID(ctx context.Context, id string) (*domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE id = $1`
	journal, err := scanJournal(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translateError(err, "failed to get journal")
	}
	return journal, nil
}

// GetByDate retrieves the journal of a date
func (r *JournalRepository) GetByDate(ctx context.Context, date domain.Date) (*domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE date = $1`
	journal, err := scanJournal(r.db.QueryRowContext(ctx, query, date))
	if err != nil {
		return nil, translateError(err, "failed to get journal by date")
	}
	return journal, nil
}

// List returns every journal ordered by date
func (r *JournalRepository) List(ctx context.Context) ([]domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals ORDER BY date`
	return r.list(ctx, query)
}

// ListBetween returns the journals dated inside the range
func (r *JournalRepository) ListBetween(ctx context.Context, dr domain.DateRange) ([]domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE date BETWEEN $1 AND $2 ORDER BY date`
	return r.list(ctx, query, dr.From, dr.To)
}

// Update replaces every field of a journal
func (r *JournalRepository) Update(ctx context.Context, journal *domain.Journal) (*domain.Journal, error) {
	weather, weatherComment := splitWeather(journal.WeatherComment)
	feeling, feelingComment := splitFeeling(journal.FeelingComment)

	query := `
		UPDATE journals
		SET date = $2, weather = $3, weather_comment = $4, feeling = $5, feeling_comment = $6,
			contents = $7, image_ids = $8, memo = $9, saved = $10, locked = $11, modified_on = $12
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		journal.ID, journal.Date, weather, weatherComment, feeling, feelingComment,
		journal.Contents, pq.Array(nonNil(journal.ImageIDs)), journal.Memo, journal.Saved, journal.Locked,
		journal.ModifiedOn,
	)
	if err != nil {
		r.logger.WithError(err).WithField("journal_id", journal.ID).Error("日記の更新に失敗")
		return nil, translateError(err, "failed to update journal")
	}
	if err := expectOneRow(result, "update journal"); err != nil {
		return nil, err
	}

	updated := *journal
	return &updated, nil
}

// Delete permanently deletes a journal
func (r *JournalRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM journals WHERE id = $1`, id)
	if err != nil {
		r.logger.WithError(err).WithField("journal_id", id).Error("日記の削除に失敗")
		return translateError(err, "failed to delete journal")
	}
	return expectOneRow(result, "delete journal")
}

func (r *JournalRepository) list(ctx context.Context, query string, args ...interface{}) ([]domain.Journal, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.WithError(err).Error("日記一覧の取得に失敗")
		return nil, translateError(err, "failed to list journals")
	}
	defer rows.Close()

	journals := make([]domain.Journal, 0)
	for rows.Next() {
		journal, err := scanJournal(rows)
		if err != nil {
			return nil, translateError(err, "failed to scan journal")
		}
		journals = append(journals, *journal)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err, "failed to iterate journals")
	}
	return journals, nil
}

func scanJournal(row rowScanner) (*domain.Journal, error) {
	var j domain.Journal
	var weather, feeling sql.NullString
	var weatherComment, feelingComment string
	var imageIDs pq.StringArray

	err := row.Scan(
		&j.ID, &j.Date, &weather, &weatherComment, &feeling, &feelingComment,
		&j.Contents, &imageIDs, &j.Memo, &j.Saved, &j.Locked, &j.RegisteredOn, &j.ModifiedOn,
	)
	if err != nil {
		return nil, err
	}

	if weather.Valid {
		j.WeatherComment = &domain.WeatherComment{Weather: domain.Weather(weather.String), Comment: weatherComment}
	}
	if feeling.Valid {
		j.FeelingComment = &domain.FeelingComment{Feeling: domain.Feeling(feeling.String), Comment: feelingComment}
	}
	j.ImageIDs = nonNil(imageIDs)
	return &j, nil
}

func splitWeather(w *domain.WeatherComment) (sql.NullString, string) {
	if w == nil {
		return sql.NullString{}, ""
	}
	return sql.NullString{String: string(w.Weather), Valid: true}, w.Comment
}

func splitFeeling(f *domain.FeelingComment) (sql.NullString, string) {
	if f == nil {
		return sql.NullString{}, ""
	}
	return sql.NullString{String: string(f.Feeling), Valid: true}, f.Comment
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
