package expense

import (
	"time"

	expenseDatamodel "github.com/aditmayuda/expense-tracker/internal/core/datamodel/expense"
	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-date form every expense date uses. Expense dates
// carry no time component.
const DateLayout = "2006-01-02"

type Expense struct {
	ID           int64           `json:"id"`
	UserID       int64           `json:"user_id"`
	CategoryID   int64           `json:"category_id"`
	CategoryName string          `json:"category_name,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description"`
	ExpenseDate  string          `json:"expense_date"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ToDataModel converts the exact decimal amount to integer cents for storage.
func ToDataModel(e *Expense) *expenseDatamodel.Expense {
	return &expenseDatamodel.Expense{
		ID:          e.ID,
		UserID:      e.UserID,
		CategoryID:  e.CategoryID,
		AmountCents: e.Amount.Shift(2).IntPart(),
		Description: e.Description,
		ExpenseDate: e.ExpenseDate,
		CreatedAt:   e.CreatedAt,
	}
}

func FromDataModel(e *expenseDatamodel.Expense) *Expense {
	return &Expense{
		ID:           e.ID,
		UserID:       e.UserID,
		CategoryID:   e.CategoryID,
		CategoryName: e.CategoryName,
		Amount:       decimal.New(e.AmountCents, -2),
		Description:  e.Description,
		ExpenseDate:  e.ExpenseDate,
		CreatedAt:    e.CreatedAt,
	}
}

func FromDataModelSlice(records []*expenseDatamodel.Expense) []*Expense {
	result := make([]*Expense, len(records))
	for i, record := range records {
		result[i] = FromDataModel(record)
	}
	return result
}
