package domain

// Category is a node in an owner-scoped, at most two-level taxonomy.
// A top-level category has ParentID == nil; a child category's parent must
// itself be top-level, so three or more levels never exist.
type Category struct {
	CategoryID string          `json:"categoryID"` // Primary Key (UUID)
	Name       string          `json:"name"`
	Type       TransactionType `json:"type"`
	Color      string          `json:"color,omitempty"`
	Icon       string          `json:"icon,omitempty"`
	ParentID   *string         `json:"parentID"` // nil for top-level categories
	UserID     string          `json:"userID"`   // Owner
	AuditFields
}

// IsTopLevel reports whether the category is a parent (first-level) node.
func (c Category) IsTopLevel() bool {
	return c.ParentID == nil
}
