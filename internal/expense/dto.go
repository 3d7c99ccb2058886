package expense

import (
	"strings"
	"time"

	"github.com/aditmayuda/expense-tracker/internal"
	"github.com/shopspring/decimal"
)

type CreateExpenseDTO struct {
	CategoryID  int64           `json:"category_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	ExpenseDate string          `json:"expense_date"`
}

func (dto *CreateExpenseDTO) Validate() error {
	dto.Description = strings.TrimSpace(dto.Description)
	dto.ExpenseDate = strings.TrimSpace(dto.ExpenseDate)

	if dto.CategoryID <= 0 {
		return internal.NewValidationError("category id is required", internal.ErrCodeValidationFailed)
	}
	if err := validateAmount(dto.Amount); err != nil {
		return err
	}
	if dto.Description == "" {
		return internal.NewValidationError("description is required", internal.ErrCodeValidationFailed)
	}
	if err := validateDate(dto.ExpenseDate); err != nil {
		return err
	}
	return nil
}

type UpdateExpenseDTO struct {
	CategoryID  int64           `json:"category_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	ExpenseDate string          `json:"expense_date"`
}

func (dto *UpdateExpenseDTO) Validate() error {
	dto.Description = strings.TrimSpace(dto.Description)
	dto.ExpenseDate = strings.TrimSpace(dto.ExpenseDate)

	if dto.CategoryID <= 0 {
		return internal.NewValidationError("category id is required", internal.ErrCodeValidationFailed)
	}
	if err := validateAmount(dto.Amount); err != nil {
		return err
	}
	if dto.Description == "" {
		return internal.NewValidationError("description is required", internal.ErrCodeValidationFailed)
	}
	if err := validateDate(dto.ExpenseDate); err != nil {
		return err
	}
	return nil
}

// validateAmount enforces the fixed-point contract: strictly positive and
// exactly representable at two fraction digits. Trailing zeros beyond that
// (25.100) are fine; real sub-cent precision (1.005) is not.
func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return internal.NewValidationError("amount must be greater than 0", internal.ErrCodeInvalidAmount)
	}
	if !amount.Equal(amount.Truncate(2)) {
		return internal.NewValidationError("amount must have at most 2 decimal places", internal.ErrCodeInvalidAmount)
	}
	return nil
}

func validateDate(date string) error {
	if date == "" {
		return internal.NewValidationError("expense date is required", internal.ErrCodeInvalidDate)
	}
	if _, err := time.Parse(DateLayout, date); err != nil {
		return internal.NewValidationError("expense date must be YYYY-MM-DD", internal.ErrCodeInvalidDate)
	}
	return nil
}

type ExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}
