package expense

import "time"

// Expense persists amounts as integer cents so SQL aggregation stays exact.
type Expense struct {
	ID          int64  `gorm:"primaryKey;column:expense_id"`
	UserID      int64  `gorm:"column:user_id;not null"`
	CategoryID  int64  `gorm:"column:category_id;not null"`
	AmountCents int64  `gorm:"column:amount_cents;not null"`
	Description string `gorm:"column:description"`
	// ExpenseDate is a calendar date in ISO form (YYYY-MM-DD), no time component.
	ExpenseDate string    `gorm:"column:expense_date;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`

	// CategoryName is populated by join queries only, never persisted.
	CategoryName string `gorm:"->;-:migration"`
}

func (Expense) TableName() string {
	return "expenses"
}
