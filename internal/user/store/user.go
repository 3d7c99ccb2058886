package store

import (
	"errors"

	categoryDatamodel "github.com/aditmayuda/expense-tracker/internal/core/datamodel/category"
	expenseDatamodel "github.com/aditmayuda/expense-tracker/internal/core/datamodel/expense"
	userDatamodel "github.com/aditmayuda/expense-tracker/internal/core/datamodel/user"
	"github.com/aditmayuda/expense-tracker/internal/user"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.RepositoryAPI {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(u *userDatamodel.User) error {
	return r.db.Create(u).Error
}

// Update overwrites username, password and email by id and reports how many
// rows it touched.
func (r *UserRepository) Update(u *userDatamodel.User) (int64, error) {
	res := r.db.Model(&userDatamodel.User{}).
		Where("user_id = ?", u.ID).
		Updates(map[string]interface{}{
			"username": u.Username,
			"password": u.Password,
			"email":    u.Email,
		})
	return res.RowsAffected, res.Error
}

// DeleteCascade removes the user's expenses, non-default categories and the
// user row inside one transaction. Default categories are left alone. The
// transaction rolls back unless all three statements succeed.
func (r *UserRepository) DeleteCascade(userID int64) (bool, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).
			Delete(&expenseDatamodel.Expense{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ? AND is_default = ?", userID, false).
			Delete(&categoryDatamodel.Category{}).Error; err != nil {
			return err
		}
		res := tx.Where("user_id = ?", userID).Delete(&userDatamodel.User{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *UserRepository) GetByID(id int64) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.Where("user_id = ?", id).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByUsername(username string) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.Where("LOWER(username) = LOWER(?)", username).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(email string) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.Where("LOWER(email) = LOWER(?)", email).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&userDatamodel.User{}).Count(&count).Error
	return count, err
}
