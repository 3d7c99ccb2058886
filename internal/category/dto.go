package category

import (
	"strings"

	"github.com/aditmayuda/expense-tracker/internal"
)

type CreateCategoryDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (dto *CreateCategoryDTO) Validate() error {
	dto.Name = strings.TrimSpace(dto.Name)
	dto.Description = strings.TrimSpace(dto.Description)

	if dto.Name == "" {
		return internal.NewValidationError("category name is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

type UpdateCategoryDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (dto *UpdateCategoryDTO) Validate() error {
	dto.Name = strings.TrimSpace(dto.Name)
	dto.Description = strings.TrimSpace(dto.Description)

	if dto.Name == "" {
		return internal.NewValidationError("category name is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

type CategoriesResponse struct {
	Categories []*Category `json:"categories"`
}
