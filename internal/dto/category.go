package dto

import (
	"time"

	"github.com/zhwei-dev/jizhang_backend/internal/core/domain"
)

// CreateCategoryRequest defines the payload for creating a category.
// A nil ParentID creates a top-level category.
type CreateCategoryRequest struct {
	Name     string  `json:"name" binding:"required,max=64"`
	Type     string  `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	Color    string  `json:"color"`
	Icon     string  `json:"icon"`
	ParentID *string `json:"parentID"`
}

// UpdateCategoryRequest defines the partial-update payload for a category.
type UpdateCategoryRequest struct {
	Name  *string `json:"name" binding:"omitempty,max=64"`
	Color *string `json:"color"`
	Icon  *string `json:"icon"`
}

// CategoryResponse defines the API shape of a category.
type CategoryResponse struct {
	CategoryID string             `json:"categoryID"`
	Name       string             `json:"name"`
	Type       string             `json:"type"`
	Color      string             `json:"color,omitempty"`
	Icon       string             `json:"icon,omitempty"`
	ParentID   *string            `json:"parentID"`
	CreatedAt  time.Time          `json:"createdAt"`
	Children   []CategoryResponse `json:"children,omitempty"`
}

// ToCategoryResponse converts a domain.Category to its API shape.
func ToCategoryResponse(cat *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID: cat.CategoryID,
		Name:       cat.Name,
		Type:       string(cat.Type),
		Color:      cat.Color,
		Icon:       cat.Icon,
		ParentID:   cat.ParentID,
		CreatedAt:  cat.CreatedAt,
	}
}

// ToCategoryTreeResponse converts a flat category list into the two-level
// tree shape the UI renders: parents at the top, children nested.
func ToCategoryTreeResponse(categories []domain.Category) []CategoryResponse {
	parents := make([]CategoryResponse, 0, len(categories))
	childrenByParent := make(map[string][]CategoryResponse)

	for i := range categories {
		cat := &categories[i]
		if cat.IsTopLevel() {
			parents = append(parents, ToCategoryResponse(cat))
		} else {
			childrenByParent[*cat.ParentID] = append(childrenByParent[*cat.ParentID], ToCategoryResponse(cat))
		}
	}

	for i := range parents {
		parents[i].Children = childrenByParent[parents[i].CategoryID]
	}
	return parents
}
