package repositories

import (
	"context"

	"github.com/zhwei-dev/jizhang_backend/internal/core/domain"
)

// CategoryReader defines read operations for category data
type CategoryReader interface {
	// FindCategoryByID retrieves a single category by its ID.
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)

	// FindCategoriesByUser retrieves all of an owner's categories, optionally
	// restricted to one transaction type.
	FindCategoriesByUser(ctx context.Context, userID string, categoryType *domain.TransactionType) ([]domain.Category, error)

	// ExistsByName reports whether the owner already has a category with the
	// same (name, type, parentID) tuple.
	ExistsByName(ctx context.Context, userID, name string, categoryType domain.TransactionType, parentID *string) (bool, error)

	// HasChildren reports whether any category has the given category as parent.
	HasChildren(ctx context.Context, categoryID string) (bool, error)

	// HasTransactions reports whether any transaction references the category.
	HasTransactions(ctx context.Context, categoryID string) (bool, error)
}

// CategoryWriter defines write operations for category data
type CategoryWriter interface {
	// SaveCategory persists a new category.
	SaveCategory(ctx context.Context, category domain.Category) error

	// SaveCategories persists a batch of categories (default-set seeding).
	SaveCategories(ctx context.Context, categories []domain.Category) error

	// UpdateCategory overwrites an existing category row.
	UpdateCategory(ctx context.Context, category domain.Category) error

	// DeleteCategory hard-deletes a category row.
	DeleteCategory(ctx context.Context, categoryID string) error
}

// CategoryRepositoryFacade combines all category-related repository interfaces
type CategoryRepositoryFacade interface {
	CategoryReader
	CategoryWriter
}
