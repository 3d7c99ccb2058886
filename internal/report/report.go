package report

import "github.com/shopspring/decimal"

// CategoryTotal is one row of a category-breakdown report.
type CategoryTotal struct {
	CategoryName string          `json:"category_name"`
	Total        decimal.Decimal `json:"total"`
}

// MonthlyTotal is one row of a monthly report. Months without expenses are
// omitted, not reported as zero.
type MonthlyTotal struct {
	Month int             `json:"month"`
	Total decimal.Decimal `json:"total"`
}

// CategoryCents and MonthCents are the raw aggregation rows the store
// produces; totals stay integer cents until the service layer converts them.
type CategoryCents struct {
	CategoryName string `db:"category_name"`
	TotalCents   int64  `db:"total_cents"`
}

type MonthCents struct {
	Month      int   `db:"month"`
	TotalCents int64 `db:"total_cents"`
}
