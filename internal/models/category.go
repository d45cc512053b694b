package models

// Category is the database row shape for a category tree node.
// ParentID maps to a nullable self-referencing foreign key.
type Category struct {
	CategoryID string
	Name       string
	Type       string
	Color      string
	Icon       string
	ParentID   *string
	UserID     string
	AuditFields
}
