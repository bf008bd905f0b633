package repository

import (
	"context"

	"lifelog/src/database"
	"lifelog/src/domain"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const todoColumns = `id, category_id, contents, memo, is_period, start_date_time, end_date_time, status, registered_on`

// TodoRepository implements domain.TodoRepository on PostgreSQL.
// start_date duplicates the day of start_date_time so range queries stay on DATE values.
type TodoRepository struct {
	db     *database.DB
	logger *logrus.Logger
}

// NewTodoRepository creates a new todo repository
func NewTodoRepository(db *database.DB, logger *logrus.Logger) *TodoRepository {
	return &TodoRepository{db: db, logger: logger}
}

// Create creates a new todo
func (r *TodoRepository) Create(ctx context.Context, todo *domain.Todo) (*domain.Todo, error) {
	created := *todo
	created.ID = uuid.NewString()

	query := `
		INSERT INTO todos (` + todoColumns + `, start_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		created.ID, created.CategoryID, created.Contents, created.Memo, created.IsPeriod,
		created.StartDateTime, created.EndDateTime, string(created.Status), created.RegisteredOn,
		created.StartDate(),
	)
	if err != nil {
		r.logger.WithError(err).Error("TODOの作成に失敗")
		return nil, translateError(err, "failed to create todo")
	}

	r.logger.WithField("todo_id", created.ID).Info("TODOを作成しました")
	return &created, nil
}

// GetByID retrieves a todo by ID
func (r *TodoRepository) GetByID(ctx context.Context, id string) (*domain.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE id = $1`
	todo, err := scanTodo(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translateError(err, "failed to get todo")
	}
	return todo, nil
}

// List returns every todo ordered by start time
func (r *TodoRepository) List(ctx context.Context) ([]domain.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos ORDER BY start_date_time, registered_on`
	return r.list(ctx, query)
}

// ListBetween returns the todos starting on a date inside the range
func (r *TodoRepository) ListBetween(ctx context.Context, dr domain.DateRange) ([]domain.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos
		WHERE start_date BETWEEN $1 AND $2
		ORDER BY start_date_time, registered_on`
	return r.list(ctx, query, dr.From, dr.To)
}

// Update replaces every field of a todo
func (r *TodoRepository) Update(ctx context.Context, todo *domain.Todo) (*domain.Todo, error) {
	query := `
		UPDATE todos
		SET category_id = $2, contents = $3, memo = $4, is_period = $5,
			start_date_time = $6, end_date_time = $7, status = $8, start_date = $9
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		todo.ID, todo.CategoryID, todo.Contents, todo.Memo, todo.IsPeriod,
		todo.StartDateTime, todo.EndDateTime, string(todo.Status), todo.StartDate(),
	)
	if err != nil {
		r.logger.WithError(err).WithField("todo_id", todo.ID).Error("TODOの更新に失敗")
		return nil, translateError(err, "failed to update todo")
	}
	if err := expectOneRow(result, "update todo"); err != nil {
		return nil, err
	}

	updated := *todo
	return &updated, nil
}

// Delete permanently deletes a todo
func (r *TodoRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		r.logger.WithError(err).WithField("todo_id", id).Error("TODOの削除に失敗")
		return translateError(err, "failed to delete todo")
	}
	return expectOneRow(result, "delete todo")
}

func (r *TodoRepository) list(ctx context.Context, query string, args ...interface{}) ([]domain.Todo, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.WithError(err).Error("TODO一覧の取得に失敗")
		return nil, translateError(err, "failed to list todos")
	}
	defer rows.Close()

	todos := make([]domain.Todo, 0)
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, translateError(err, "failed to scan todo")
		}
		todos = append(todos, *todo)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err, "failed to iterate todos")
	}
	return todos, nil
}

func scanTodo(row rowScanner) (*domain.Todo, error) {
	var t domain.Todo
	var status string
	err := row.Scan(
		&t.ID, &t.CategoryID, &t.Contents, &t.Memo, &t.IsPeriod,
		&t.StartDateTime, &t.EndDateTime, &status, &t.RegisteredOn,
	)
	if err != nil {
		return nil, err
	}
	t.Status = domain.Status(status)
	// TIMESTAMP列は壁時計時刻として扱う
	t.StartDateTime = domain.NaiveWallClock(t.StartDateTime)
	t.EndDateTime = domain.NaiveWallClock(t.EndDateTime)
	return &t, nil
}
