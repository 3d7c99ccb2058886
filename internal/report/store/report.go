package store

import (
	"fmt"

	"github.com/aditmayuda/expense-tracker/internal/report"
	"github.com/jmoiron/sqlx"
)

// ReportRepository runs the aggregate queries over raw SQL. All sums are over
// integer cents, so repeated aggregation never drifts.
type ReportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) report.RepositoryAPI {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) SummaryByCategory(userID int64, start, end string) ([]report.CategoryCents, error) {
	query := r.db.Rebind(`
		SELECT c.name AS category_name, SUM(e.amount_cents) AS total_cents
		FROM expenses e
		JOIN categories c ON e.category_id = c.category_id
		WHERE e.user_id = ? AND e.expense_date BETWEEN ? AND ?
		GROUP BY c.category_id, c.name
		ORDER BY total_cents DESC`)

	rows := []report.CategoryCents{}
	if err := r.db.Select(&rows, query, userID, start, end); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ReportRepository) MonthlyTotals(userID int64, year int) ([]report.MonthCents, error) {
	// Dates are stored as ISO YYYY-MM-DD text in SQLite and as DATE in
	// PostgreSQL; the month/year expressions differ per driver.
	var query string
	switch r.db.DriverName() {
	case "pgx", "postgres":
		query = r.db.Rebind(`
			SELECT CAST(EXTRACT(MONTH FROM CAST(e.expense_date AS date)) AS int) AS month,
			       SUM(e.amount_cents) AS total_cents
			FROM expenses e
			WHERE e.user_id = ? AND EXTRACT(YEAR FROM CAST(e.expense_date AS date)) = ?
			GROUP BY month
			ORDER BY month ASC`)

		rows := []report.MonthCents{}
		if err := r.db.Select(&rows, query, userID, year); err != nil {
			return nil, err
		}
		return rows, nil
	default:
		query = `
			SELECT CAST(strftime('%m', e.expense_date) AS INTEGER) AS month,
			       SUM(e.amount_cents) AS total_cents
			FROM expenses e
			WHERE e.user_id = ? AND strftime('%Y', e.expense_date) = ?
			GROUP BY month
			ORDER BY month ASC`

		rows := []report.MonthCents{}
		if err := r.db.Select(&rows, query, userID, fmt.Sprintf("%04d", year)); err != nil {
			return nil, err
		}
		return rows, nil
	}
}

func (r *ReportRepository) TotalInRange(userID int64, start, end string) (int64, error) {
	query := r.db.Rebind(`
		SELECT COALESCE(SUM(amount_cents), 0) AS total_cents
		FROM expenses
		WHERE user_id = ? AND expense_date BETWEEN ? AND ?`)

	var cents int64
	if err := r.db.Get(&cents, query, userID, start, end); err != nil {
		return 0, err
	}
	return cents, nil
}
