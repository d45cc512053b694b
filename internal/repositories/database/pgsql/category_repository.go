package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zhwei-dev/jizhang_backend/internal/apperrors"
	"github.com/zhwei-dev/jizhang_backend/internal/core/domain"
	portsrepo "github.com/zhwei-dev/jizhang_backend/internal/core/ports/repositories"
	"github.com/zhwei-dev/jizhang_backend/internal/models"
	"github.com/zhwei-dev/jizhang_backend/internal/utils/mapping"
)

const categoryColumns = `category_id, name, type, color, icon, parent_id, user_id, created_at, created_by, last_updated_at, last_updated_by`

type PgxCategoryRepository struct {
	BaseRepository
}

// newPgxCategoryRepository creates a new repository for category data.
func newPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepositoryFacade {
	return &PgxCategoryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

func scanCategory(row pgx.Row) (models.Category, error) {
	var cat models.Category
	err := row.Scan(
		&cat.CategoryID,
		&cat.Name,
		&cat.Type,
		&cat.Color,
		&cat.Icon,
		&cat.ParentID,
		&cat.UserID,
		&cat.CreatedAt,
		&cat.CreatedBy,
		&cat.LastUpdatedAt,
		&cat.LastUpdatedBy,
	)
	return cat, err
}

// SaveCategory inserts a new category row.
func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	modelCat := mapping.ToModelCategory(category)

	query := `
		INSERT INTO categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`

	_, err := r.Pool.Exec(ctx, query,
		modelCat.CategoryID,
		modelCat.Name,
		modelCat.Type,
		modelCat.Color,
		modelCat.Icon,
		modelCat.ParentID,
		modelCat.UserID,
		modelCat.CreatedAt,
		modelCat.CreatedBy,
		modelCat.LastUpdatedAt,
		modelCat.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save category %s: %w", modelCat.CategoryID, err)
	}
	return nil
}

// SaveCategories inserts a batch of categories in one database transaction so
// default-set seeding is all or nothing.
func (r *PgxCategoryRepository) SaveCategories(ctx context.Context, categories []domain.Category) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`

	for _, category := range categories {
		modelCat := mapping.ToModelCategory(category)
		if _, err := tx.Exec(ctx, query,
			modelCat.CategoryID,
			modelCat.Name,
			modelCat.Type,
			modelCat.Color,
			modelCat.Icon,
			modelCat.ParentID,
			modelCat.UserID,
			modelCat.CreatedAt,
			modelCat.CreatedBy,
			modelCat.LastUpdatedAt,
			modelCat.LastUpdatedBy,
		); err != nil {
			return fmt.Errorf("failed to save category %s in batch: %w", modelCat.CategoryID, err)
		}
	}

	return r.Commit(ctx, tx)
}

// FindCategoryByID retrieves a single category by its ID.
func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE category_id = $1;`

	modelCat, err := scanCategory(r.Pool.QueryRow(ctx, query, categoryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find category %s: %w", categoryID, err)
	}

	domainCat := mapping.ToDomainCategory(modelCat)
	return &domainCat, nil
}

// FindCategoriesByUser retrieves all of an owner's categories, optionally
// restricted to one transaction type. Parents sort before their children.
func (r *PgxCategoryRepository) FindCategoriesByUser(ctx context.Context, userID string, categoryType *domain.TransactionType) ([]domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE user_id = $1`
	args := []any{userID}

	if categoryType != nil {
		args = append(args, string(*categoryType))
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	query += " ORDER BY parent_id NULLS FIRST, name;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	modelCats, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Category, error) {
		return scanCategory(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan categories: %w", err)
	}

	domainCats := make([]domain.Category, len(modelCats))
	for i, m := range modelCats {
		domainCats[i] = mapping.ToDomainCategory(m)
	}
	return domainCats, nil
}

// ExistsByName reports whether the owner already has a category with the same
// (name, type, parent) tuple.
func (r *PgxCategoryRepository) ExistsByName(ctx context.Context, userID, name string, categoryType domain.TransactionType, parentID *string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM categories
			WHERE user_id = $1 AND name = $2 AND type = $3 AND parent_id IS NOT DISTINCT FROM $4
		);
	`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, userID, name, string(categoryType), parentID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check category existence: %w", err)
	}
	return exists, nil
}

// HasChildren reports whether any category has the given category as parent.
func (r *PgxCategoryRepository) HasChildren(ctx context.Context, categoryID string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM categories WHERE parent_id = $1);`, categoryID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check child categories: %w", err)
	}
	return exists, nil
}

// HasTransactions reports whether any transaction references the category.
func (r *PgxCategoryRepository) HasTransactions(ctx context.Context, categoryID string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM transactions WHERE category_id = $1);`, categoryID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check category transactions: %w", err)
	}
	return exists, nil
}

// UpdateCategory overwrites an existing category row. Type and parent are
// immutable and deliberately absent from the statement.
func (r *PgxCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	modelCat := mapping.ToModelCategory(category)

	query := `
		UPDATE categories SET
			name = $2,
			color = $3,
			icon = $4,
			last_updated_at = $5,
			last_updated_by = $6
		WHERE category_id = $1;
	`

	tag, err := r.Pool.Exec(ctx, query,
		modelCat.CategoryID,
		modelCat.Name,
		modelCat.Color,
		modelCat.Icon,
		modelCat.LastUpdatedAt,
		modelCat.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update category %s: %w", modelCat.CategoryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteCategory hard-deletes a category row.
func (r *PgxCategoryRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM categories WHERE category_id = $1;`, categoryID)
	if err != nil {
		return fmt.Errorf("failed to delete category %s: %w", categoryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
