package category

import (
	categoryDatamodel "github.com/aditmayuda/expense-tracker/internal/core/datamodel/category"
)

type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	// UserID is nil for system-wide default categories.
	UserID    *int64 `json:"user_id,omitempty"`
	IsDefault bool   `json:"is_default"`
}

// DefaultCategoryNames is the fixed seed set. "Other" is the canonical
// reassignment target when a category is deleted.
var DefaultCategoryNames = []string{
	"Food", "Transport", "Housing", "Entertainment", "Healthcare",
	"Education", "Shopping", "Utilities", "Other",
}

// FallbackCategoryName is the preferred default when reassigning expenses of
// a deleted category.
const FallbackCategoryName = "Other"

func (c *Category) OwnedBy(userID int64) bool {
	return c.UserID != nil && *c.UserID == userID
}

func ToDataModel(c *Category) *categoryDatamodel.Category {
	return &categoryDatamodel.Category{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		UserID:      c.UserID,
		IsDefault:   c.IsDefault,
	}
}

func FromDataModel(c *categoryDatamodel.Category) *Category {
	return &Category{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		UserID:      c.UserID,
		IsDefault:   c.IsDefault,
	}
}

func FromDataModelSlice(records []*categoryDatamodel.Category) []*Category {
	result := make([]*Category, len(records))
	for i, record := range records {
		result[i] = FromDataModel(record)
	}
	return result
}
