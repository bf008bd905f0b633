package repository

import (
	"context"
	"fmt"

	"lifelog/src/database"
	"lifelog/src/domain"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// CategoryRepository implements domain.CategoryRepository on PostgreSQL
type CategoryRepository struct {
	db     *database.DB
	logger *logrus.Logger
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *database.DB, logger *logrus.Logger) *CategoryRepository {
	return &CategoryRepository{db: db, logger: logger}
}

// Create creates a new category
func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	created := *category
	created.ID = uuid.NewString()

	query := `INSERT INTO categories (id, name, color_type, order_no, removed) VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query,
		created.ID, created.Name, string(created.ColorType), created.OrderNo, created.Removed)
	if err != nil {
		r.logger.WithError(err).Error("カテゴリの作成に失敗")
		return nil, translateError(err, "failed to create category")
	}

	r.logger.WithField("category_id", created.ID).Info("カテゴリを作成しました")
	return &created, nil
}

// GetByID retrieves a category by ID, removed or not
func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	query := `SELECT id, name, color_type, order_no, removed FROM categories WHERE id = $1`
	category, err := scanCategory(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translateError(err, "failed to get category")
	}
	return category, nil
}

// List returns categories ordered by order_no
func (r *CategoryRepository) List(ctx context.Context, includeRemoved bool) ([]domain.Category, error) {
	query := `SELECT id, name, color_type, order_no, removed FROM categories`
	if !includeRemoved {
		query += ` WHERE removed = FALSE`
	}
	query += ` ORDER BY order_no, name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.WithError(err).Error("カテゴリ一覧の取得に失敗")
		return nil, translateError(err, "failed to list categories")
	}
	defer rows.Close()

	categories := make([]domain.Category, 0)
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, translateError(err, "failed to scan category")
		}
		categories = append(categories, *category)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err, "failed to iterate categories")
	}
	return categories, nil
}

// Update replaces name, color and order of a category
func (r *CategoryRepository) Update(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	query := `UPDATE categories SET name = $2, color_type = $3, order_no = $4, removed = $5 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query,
		category.ID, category.Name, string(category.ColorType), category.OrderNo, category.Removed)
	if err != nil {
		r.logger.WithError(err).WithField("category_id", category.ID).Error("カテゴリの更新に失敗")
		return nil, translateError(err, "failed to update category")
	}
	if err := expectOneRow(result, "update category"); err != nil {
		return nil, err
	}

	updated := *category
	return &updated, nil
}

// Remove soft-deletes a category
func (r *CategoryRepository) Remove(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE categories SET removed = TRUE WHERE id = $1`, id)
	if err != nil {
		r.logger.WithError(err).WithField("category_id", id).Error("カテゴリの削除に失敗")
		return translateError(err, "failed to remove category")
	}
	return expectOneRow(result, "remove category")
}

// UpdateOrder sets order_no = position+1 for each id in a single transaction
func (r *CategoryRepository) UpdateOrder(ctx context.Context, orderedIDs []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for i, id := range orderedIDs {
		result, err := tx.ExecContext(ctx, `UPDATE categories SET order_no = $2 WHERE id = $1`, id, i+1)
		if err != nil {
			r.logger.WithError(err).WithField("category_id", id).Error("カテゴリの並び替えに失敗")
			return translateError(err, "failed to reorder categories")
		}
		if err := expectOneRow(result, "reorder category"); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reorder: %w", err)
	}
	return nil
}

func scanCategory(row rowScanner) (*domain.Category, error) {
	var c domain.Category
	var colorType string
	if err := row.Scan(&c.ID, &c.Name, &colorType, &c.OrderNo, &c.Removed); err != nil {
		return nil, err
	}
	c.ColorType = domain.ColorType(colorType)
	return &c, nil
}
