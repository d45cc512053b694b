package services

import (
	"context"

	"github.com/zhwei-dev/jizhang_backend/internal/core/domain"
	"github.com/zhwei-dev/jizhang_backend/internal/dto"
)

// CategoryReaderSvc defines read operations for the category tree
type CategoryReaderSvc interface {
	// GetCategoryByID retrieves a single category by its ID.
	GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)

	// ListCategories retrieves the owner's categories, optionally restricted
	// to one transaction type.
	ListCategories(ctx context.Context, userID string, categoryType *domain.TransactionType) ([]domain.Category, error)
}

// CategoryWriterSvc defines mutation operations for the category tree
type CategoryWriterSvc interface {
	// CreateCategory validates the two-level hierarchy and uniqueness rules
	// and persists a new category.
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, userID string) (*domain.Category, error)

	// UpdateCategory renames or restyles an owner's category.
	UpdateCategory(ctx context.Context, categoryID, userID string, req dto.UpdateCategoryRequest) (*domain.Category, error)

	// DeleteCategory hard-deletes a category that has no children and no
	// transactions referencing it.
	DeleteCategory(ctx context.Context, categoryID, userID string) error

	// InitializeDefaultCategories seeds the fixed default taxonomy for an
	// owner whose category set is empty; it is a no-op request error once any
	// category exists.
	InitializeDefaultCategories(ctx context.Context, userID string) ([]domain.Category, error)
}

// CategorySvcFacade combines all category service interfaces
type CategorySvcFacade interface {
	CategoryReaderSvc
	CategoryWriterSvc
}
