package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zhwei-dev/jizhang_backend/internal/apperrors"
	"github.com/zhwei-dev/jizhang_backend/internal/core/domain"
	portsrepo "github.com/zhwei-dev/jizhang_backend/internal/core/ports/repositories"
	portssvc "github.com/zhwei-dev/jizhang_backend/internal/core/ports/services"
	"github.com/zhwei-dev/jizhang_backend/internal/dto"
)

// CategoryService provides business logic for the owner-scoped two-level
// category taxonomy.
type CategoryService struct {
	BaseService
	categoryRepo portsrepo.CategoryRepositoryFacade
}

var _ portssvc.CategorySvcFacade = (*CategoryService)(nil)

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categoryRepo portsrepo.CategoryRepositoryFacade) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// CreateCategory validates the hierarchy and uniqueness rules and persists a
// new category. A child's parent must be an existing top-level category of the
// same type owned by the same user; the tree never exceeds two levels.
func (s *CategoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, userID string) (*domain.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name cannot be empty", apperrors.ErrValidation)
	}

	catType, ok := domain.ParseTransactionType(req.Type)
	if !ok {
		return nil, fmt.Errorf("%w: invalid category type: %s", apperrors.ErrValidation, req.Type)
	}

	if req.ParentID != nil {
		parent, err := s.categoryRepo.FindCategoryByID(ctx, *req.ParentID)
		if err != nil {
			return nil, fmt.Errorf("%w: parent category %s not found", apperrors.ErrValidation, *req.ParentID)
		}
		if parent.UserID != userID {
			return nil, fmt.Errorf("%w: parent category belongs to another user", apperrors.ErrForbidden)
		}
		if !parent.IsTopLevel() {
			return nil, fmt.Errorf("%w: parent must be a top-level category", apperrors.ErrValidation)
		}
		if parent.Type != catType {
			return nil, fmt.Errorf("%w: parent category type %s does not match %s", apperrors.ErrValidation, parent.Type, catType)
		}
	}

	exists, err := s.categoryRepo.ExistsByName(ctx, userID, name, catType, req.ParentID)
	if err != nil {
		return nil, fmt.Errorf("failed to check category uniqueness: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: category %q already exists", apperrors.ErrDuplicate, name)
	}

	now := time.Now()
	category := domain.Category{
		CategoryID: uuid.NewString(),
		Name:       name,
		Type:       catType,
		Color:      req.Color,
		Icon:       req.Icon,
		ParentID:   req.ParentID,
		UserID:     userID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &category, nil
}

// GetCategoryByID retrieves a single category by its ID.
func (s *CategoryService) GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}

// ListCategories retrieves the owner's categories, optionally restricted to
// one transaction type.
func (s *CategoryService) ListCategories(ctx context.Context, userID string, categoryType *domain.TransactionType) ([]domain.Category, error) {
	categories, err := s.categoryRepo.FindCategoriesByUser(ctx, userID, categoryType)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if categories == nil {
		return []domain.Category{}, nil
	}
	return categories, nil
}

// UpdateCategory renames or restyles an owner's category. Type and parent are
// immutable after creation.
func (s *CategoryService) UpdateCategory(ctx context.Context, categoryID, userID string, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find category for update: %w", err)
	}
	if category.UserID != userID {
		return nil, fmt.Errorf("%w: category belongs to another user", apperrors.ErrForbidden)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: category name cannot be empty", apperrors.ErrValidation)
		}
		if name != category.Name {
			exists, err := s.categoryRepo.ExistsByName(ctx, userID, name, category.Type, category.ParentID)
			if err != nil {
				return nil, fmt.Errorf("failed to check category uniqueness: %w", err)
			}
			if exists {
				return nil, fmt.Errorf("%w: category %q already exists", apperrors.ErrDuplicate, name)
			}
			category.Name = name
		}
	}
	if req.Color != nil {
		category.Color = *req.Color
	}
	if req.Icon != nil {
		category.Icon = *req.Icon
	}

	category.LastUpdatedAt = time.Now()
	category.LastUpdatedBy = userID

	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return category, nil
}

// DeleteCategory hard-deletes a category. Deletion is refused while child
// categories exist or transactions still reference it.
func (s *CategoryService) DeleteCategory(ctx context.Context, categoryID, userID string) error {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return fmt.Errorf("failed to find category for delete: %w", err)
	}
	if category.UserID != userID {
		return fmt.Errorf("%w: category belongs to another user", apperrors.ErrForbidden)
	}

	hasChildren, err := s.categoryRepo.HasChildren(ctx, categoryID)
	if err != nil {
		return fmt.Errorf("failed to check child categories: %w", err)
	}
	if hasChildren {
		return fmt.Errorf("%w: delete or move the children first", apperrors.ErrHasChildren)
	}

	hasTxns, err := s.categoryRepo.HasTransactions(ctx, categoryID)
	if err != nil {
		return fmt.Errorf("failed to check category transactions: %w", err)
	}
	if hasTxns {
		return fmt.Errorf("%w: reassign or delete the transactions first", apperrors.ErrCategoryInUse)
	}

	if err := s.categoryRepo.DeleteCategory(ctx, categoryID); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

// defaultCategorySpec describes one seeded category. Children reference their
// parent by name within the same seeding batch.
type defaultCategorySpec struct {
	name       string
	parentName string
	catType    domain.TransactionType
	color      string
	icon       string
}

var defaultCategories = []defaultCategorySpec{
	// Expense parents
	{name: "工资", catType: domain.Expense, color: "#34C759", icon: "💰"},
	{name: "云服务", catType: domain.Expense, color: "#FF9500", icon: "☁️"},
	{name: "运营成本", catType: domain.Expense, color: "#5856D6", icon: "🏢"},
	{name: "其他支出", catType: domain.Expense, color: "#8E8E93", icon: "📦"},

	// Income parents
	{name: "项目收入", catType: domain.Income, color: "#30D158", icon: "💼"},
	{name: "服务收入", catType: domain.Income, color: "#32ADE6", icon: "🔧"},
	{name: "其他收入", catType: domain.Income, color: "#64D2FF", icon: "🎁"},

	// Expense children
	{name: "月薪", parentName: "工资", catType: domain.Expense, color: "#34C759"},
	{name: "奖金", parentName: "工资", catType: domain.Expense, color: "#34C759"},
	{name: "AWS", parentName: "云服务", catType: domain.Expense, color: "#FF9500"},
	{name: "Vercel", parentName: "云服务", catType: domain.Expense, color: "#000000"},
	{name: "Supabase", parentName: "云服务", catType: domain.Expense, color: "#3ECF8E"},
	{name: "办公用品", parentName: "运营成本", catType: domain.Expense, color: "#5856D6"},
	{name: "差旅费", parentName: "运营成本", catType: domain.Expense, color: "#5856D6"},
}

// InitializeDefaultCategories seeds the fixed default taxonomy for an owner
// whose category set is still empty.
func (s *CategoryService) InitializeDefaultCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	existing, err := s.categoryRepo.FindCategoriesByUser(ctx, userID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing categories: %w", err)
	}
	if len(existing) > 0 {
		return nil, fmt.Errorf("%w: categories already initialized", apperrors.ErrDuplicate)
	}

	now := time.Now()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	parentIDsByName := make(map[string]string)
	categories := make([]domain.Category, 0, len(defaultCategories))
	for _, spec := range defaultCategories {
		category := domain.Category{
			CategoryID:  uuid.NewString(),
			Name:        spec.name,
			Type:        spec.catType,
			Color:       spec.color,
			Icon:        spec.icon,
			UserID:      userID,
			AuditFields: audit,
		}
		if spec.parentName == "" {
			parentIDsByName[spec.name] = category.CategoryID
		} else {
			parentID := parentIDsByName[spec.parentName]
			category.ParentID = &parentID
		}
		categories = append(categories, category)
	}

	if err := s.categoryRepo.SaveCategories(ctx, categories); err != nil {
		return nil, fmt.Errorf("failed to seed default categories: %w", err)
	}

	s.LogInfo(ctx, "seeded default categories", "user_id", userID, "count", len(categories))
	return categories, nil
}
