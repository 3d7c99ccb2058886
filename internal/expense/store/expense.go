package store

import (
	"errors"

	expenseDatamodel "github.com/aditmayuda/expense-tracker/internal/core/datamodel/expense"
	"github.com/aditmayuda/expense-tracker/internal/expense"
	"gorm.io/gorm"
)

const joinSelect = "expenses.*, categories.name AS category_name"
const joinCategories = "JOIN categories ON categories.category_id = expenses.category_id"

type ExpenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) expense.RepositoryAPI {
	return &ExpenseRepository{db: db}
}

func (r *ExpenseRepository) Create(e *expenseDatamodel.Expense) error {
	return r.db.Create(e).Error
}

// Update is scoped by both expense id and owner; it reports rows affected so
// the service can tell a wrong owner from success.
func (r *ExpenseRepository) Update(e *expenseDatamodel.Expense) (int64, error) {
	res := r.db.Model(&expenseDatamodel.Expense{}).
		Where("expense_id = ? AND user_id = ?", e.ID, e.UserID).
		Updates(map[string]interface{}{
			"category_id":  e.CategoryID,
			"amount_cents": e.AmountCents,
			"description":  e.Description,
			"expense_date": e.ExpenseDate,
		})
	return res.RowsAffected, res.Error
}

func (r *ExpenseRepository) Delete(expenseID, userID int64) (int64, error) {
	res := r.db.Where("expense_id = ? AND user_id = ?", expenseID, userID).
		Delete(&expenseDatamodel.Expense{})
	return res.RowsAffected, res.Error
}

func (r *ExpenseRepository) GetByID(expenseID, userID int64) (*expenseDatamodel.Expense, error) {
	var e expenseDatamodel.Expense
	err := r.db.Model(&expenseDatamodel.Expense{}).
		Select(joinSelect).
		Joins(joinCategories).
		Where("expenses.expense_id = ? AND expenses.user_id = ?", expenseID, userID).
		First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *ExpenseRepository) ListForUser(userID int64) ([]*expenseDatamodel.Expense, error) {
	var expenses []*expenseDatamodel.Expense
	err := r.db.Model(&expenseDatamodel.Expense{}).
		Select(joinSelect).
		Joins(joinCategories).
		Where("expenses.user_id = ?", userID).
		Order("expenses.expense_date DESC").
		Find(&expenses).Error
	return expenses, err
}

func (r *ExpenseRepository) ListForUserInDateRange(userID int64, start, end string) ([]*expenseDatamodel.Expense, error) {
	var expenses []*expenseDatamodel.Expense
	err := r.db.Model(&expenseDatamodel.Expense{}).
		Select(joinSelect).
		Joins(joinCategories).
		Where("expenses.user_id = ? AND expenses.expense_date BETWEEN ? AND ?", userID, start, end).
		Order("expenses.expense_date DESC").
		Find(&expenses).Error
	return expenses, err
}

func (r *ExpenseRepository) ListForUserByCategory(userID, categoryID int64) ([]*expenseDatamodel.Expense, error) {
	var expenses []*expenseDatamodel.Expense
	err := r.db.Model(&expenseDatamodel.Expense{}).
		Select(joinSelect).
		Joins(joinCategories).
		Where("expenses.user_id = ? AND expenses.category_id = ?", userID, categoryID).
		Order("expenses.expense_date DESC").
		Find(&expenses).Error
	return expenses, err
}
