package report

import (
	"log/slog"
	"time"

	"github.com/aditmayuda/expense-tracker/internal"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type RepositoryAPI interface {
	SummaryByCategory(userID int64, start, end string) ([]CategoryCents, error)
	MonthlyTotals(userID int64, year int) ([]MonthCents, error)
	TotalInRange(userID int64, start, end string) (int64, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// SummaryByCategory groups the user's expenses in the inclusive date range by
// category, ordered by total descending.
func (s *Service) SummaryByCategory(userID int64, start, end string) ([]CategoryTotal, error) {
	if userID <= 0 {
		return nil, internal.NewValidationError("invalid user id", internal.ErrCodeValidationFailed)
	}
	if err := validateRange(start, end); err != nil {
		return nil, err
	}

	rows, err := s.repo.SummaryByCategory(userID, start, end)
	if err != nil {
		s.logger.Error("category summary: store failure", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to build category summary", err)
	}

	totals := make([]CategoryTotal, len(rows))
	for i, row := range rows {
		totals[i] = CategoryTotal{
			CategoryName: row.CategoryName,
			Total:        decimal.New(row.TotalCents, -2),
		}
	}
	return totals, nil
}

// MonthlyTotals groups the user's expenses of the given year by calendar
// month, ordered by month ascending. Empty months do not appear.
func (s *Service) MonthlyTotals(userID int64, year int) ([]MonthlyTotal, error) {
	if userID <= 0 {
		return nil, internal.NewValidationError("invalid user id", internal.ErrCodeValidationFailed)
	}
	if year < 1 {
		return nil, internal.NewValidationError("invalid year", internal.ErrCodeInvalidDate)
	}

	rows, err := s.repo.MonthlyTotals(userID, year)
	if err != nil {
		s.logger.Error("monthly totals: store failure", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to build monthly totals", err)
	}

	totals := make([]MonthlyTotal, len(rows))
	for i, row := range rows {
		totals[i] = MonthlyTotal{
			Month: row.Month,
			Total: decimal.New(row.TotalCents, -2),
		}
	}
	return totals, nil
}

// TotalInRange returns decimal zero, not an error, when nothing matches.
func (s *Service) TotalInRange(userID int64, start, end string) (decimal.Decimal, error) {
	if userID <= 0 {
		return decimal.Zero, internal.NewValidationError("invalid user id", internal.ErrCodeValidationFailed)
	}
	if err := validateRange(start, end); err != nil {
		return decimal.Zero, err
	}

	cents, err := s.repo.TotalInRange(userID, start, end)
	if err != nil {
		s.logger.Error("range total: store failure", "error", err, "user_id", userID)
		return decimal.Zero, internal.NewInternalError("failed to compute total", err)
	}
	return decimal.New(cents, -2), nil
}

func validateRange(start, end string) error {
	startDay, err := time.Parse(dateLayout, start)
	if err != nil {
		return internal.NewValidationError("start date must be YYYY-MM-DD", internal.ErrCodeInvalidDate)
	}
	endDay, err := time.Parse(dateLayout, end)
	if err != nil {
		return internal.NewValidationError("end date must be YYYY-MM-DD", internal.ErrCodeInvalidDate)
	}
	if endDay.Before(startDay) {
		return internal.NewValidationError("end date must not precede start date", internal.ErrCodeInvalidDate)
	}
	return nil
}
