package store

import (
	"errors"

	"github.com/aditmayuda/expense-tracker/internal"
	"github.com/aditmayuda/expense-tracker/internal/category"
	categoryDatamodel "github.com/aditmayuda/expense-tracker/internal/core/datamodel/category"
	expenseDatamodel "github.com/aditmayuda/expense-tracker/internal/core/datamodel/expense"
	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) category.RepositoryAPI {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(c *categoryDatamodel.Category) error {
	return r.db.Create(c).Error
}

func (r *CategoryRepository) Update(c *categoryDatamodel.Category) (int64, error) {
	res := r.db.Model(&categoryDatamodel.Category{}).
		Where("category_id = ?", c.ID).
		Updates(map[string]interface{}{
			"name":        c.Name,
			"description": c.Description,
		})
	return res.RowsAffected, res.Error
}

// DeleteReassign resolves a default category, re-points the deleted
// category's expenses at it and removes the row, all inside one transaction.
// Preference order for the target: the default named "Other", then any
// default. Without any default the transaction rolls back and
// internal.ErrNoDefaultCategory is returned.
func (r *CategoryRepository) DeleteReassign(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		target, err := resolveDefault(tx)
		if err != nil {
			return err
		}

		if err := tx.Model(&expenseDatamodel.Expense{}).
			Where("category_id = ?", id).
			Update("category_id", target.ID).Error; err != nil {
			return err
		}

		res := tx.Where("category_id = ?", id).Delete(&categoryDatamodel.Category{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func resolveDefault(tx *gorm.DB) (*categoryDatamodel.Category, error) {
	var target categoryDatamodel.Category
	err := tx.Where("name = ? AND is_default = ?", category.FallbackCategoryName, true).
		First(&target).Error
	if err == nil {
		return &target, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	err = tx.Where("is_default = ?", true).First(&target).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, internal.ErrNoDefaultCategory
	}
	if err != nil {
		return nil, err
	}
	return &target, nil
}

func (r *CategoryRepository) GetByID(id int64) (*categoryDatamodel.Category, error) {
	var c categoryDatamodel.Category
	err := r.db.Where("category_id = ?", id).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepository) ListAll() ([]*categoryDatamodel.Category, error) {
	var categories []*categoryDatamodel.Category
	err := r.db.Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *CategoryRepository) ListForUser(userID int64) ([]*categoryDatamodel.Category, error) {
	var categories []*categoryDatamodel.Category
	err := r.db.Where("user_id = ? OR is_default = ?", userID, true).
		Order("name ASC").
		Find(&categories).Error
	return categories, err
}

// EnsureDefaults inserts the seed set only when no default category exists
// yet, so repeated startups never duplicate it.
func (r *CategoryRepository) EnsureDefaults(names []string) (int64, error) {
	var inserted int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&categoryDatamodel.Category{}).
			Where("is_default = ?", true).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		for _, name := range names {
			record := &categoryDatamodel.Category{
				Name:        name,
				Description: name + " expenses",
				IsDefault:   true,
			}
			if err := tx.Create(record).Error; err != nil {
				return err
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}
