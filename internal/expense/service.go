package expense

import (
	"log/slog"
	"time"

	"github.com/aditmayuda/expense-tracker/internal"
	expenseDatamodel "github.com/aditmayuda/expense-tracker/internal/core/datamodel/expense"
)

// RepositoryAPI is the store surface the expense service depends on. Every
// read and write is scoped by the owning user id; a row belonging to another
// user is indistinguishable from a missing row. Amount validation happens in
// the service, the repository does not re-check.
type RepositoryAPI interface {
	Create(e *expenseDatamodel.Expense) error
	Update(e *expenseDatamodel.Expense) (int64, error)
	Delete(expenseID, userID int64) (int64, error)
	GetByID(expenseID, userID int64) (*expenseDatamodel.Expense, error)
	ListForUser(userID int64) ([]*expenseDatamodel.Expense, error)
	ListForUserInDateRange(userID int64, start, end string) ([]*expenseDatamodel.Expense, error)
	ListForUserByCategory(userID, categoryID int64) ([]*expenseDatamodel.Expense, error)
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

func (s *Service) Create(userID int64, dto CreateExpenseDTO) (*Expense, error) {
	if userID <= 0 {
		return nil, internal.NewValidationError("invalid user id", internal.ErrCodeValidationFailed)
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	record := &expenseDatamodel.Expense{
		UserID:      userID,
		CategoryID:  dto.CategoryID,
		AmountCents: dto.Amount.Shift(2).IntPart(),
		Description: dto.Description,
		ExpenseDate: dto.ExpenseDate,
	}
	if err := s.repo.Create(record); err != nil {
		s.logger.Error("create expense: store failure", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to create expense", err)
	}

	s.logger.Info("expense created",
		"expense_id", record.ID,
		"user_id", userID,
		"amount", dto.Amount.StringFixed(2))
	return s.GetByID(record.ID, userID)
}

func (s *Service) Update(expenseID, userID int64, dto UpdateExpenseDTO) (*Expense, error) {
	if expenseID <= 0 || userID <= 0 {
		return nil, internal.NewValidationError("invalid id", internal.ErrCodeValidationFailed)
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	record := &expenseDatamodel.Expense{
		ID:          expenseID,
		UserID:      userID,
		CategoryID:  dto.CategoryID,
		AmountCents: dto.Amount.Shift(2).IntPart(),
		Description: dto.Description,
		ExpenseDate: dto.ExpenseDate,
	}
	affected, err := s.repo.Update(record)
	if err != nil {
		s.logger.Error("update expense: store failure", "error", err, "expense_id", expenseID)
		return nil, internal.NewInternalError("failed to update expense", err)
	}
	if affected == 0 {
		// Wrong owner or missing row, reported identically.
		return nil, internal.ErrExpenseNotFound
	}

	s.logger.Info("expense updated", "expense_id", expenseID, "user_id", userID)
	return s.GetByID(expenseID, userID)
}

func (s *Service) Delete(expenseID, userID int64) error {
	if expenseID <= 0 || userID <= 0 {
		return internal.NewValidationError("invalid id", internal.ErrCodeValidationFailed)
	}

	affected, err := s.repo.Delete(expenseID, userID)
	if err != nil {
		s.logger.Error("delete expense: store failure", "error", err, "expense_id", expenseID)
		return internal.NewInternalError("failed to delete expense", err)
	}
	if affected == 0 {
		return internal.ErrExpenseNotFound
	}

	s.logger.Info("expense deleted", "expense_id", expenseID, "user_id", userID)
	return nil
}

func (s *Service) GetByID(expenseID, userID int64) (*Expense, error) {
	if expenseID <= 0 || userID <= 0 {
		return nil, internal.NewValidationError("invalid id", internal.ErrCodeValidationFailed)
	}

	record, err := s.repo.GetByID(expenseID, userID)
	if err != nil {
		s.logger.Error("get expense: store failure", "error", err, "expense_id", expenseID)
		return nil, internal.NewInternalError("failed to get expense", err)
	}
	if record == nil {
		return nil, internal.ErrExpenseNotFound
	}
	return FromDataModel(record), nil
}

func (s *Service) ListForUser(userID int64) ([]*Expense, error) {
	if userID <= 0 {
		return nil, internal.NewValidationError("invalid user id", internal.ErrCodeValidationFailed)
	}

	records, err := s.repo.ListForUser(userID)
	if err != nil {
		s.logger.Error("list expenses: store failure", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to list expenses", err)
	}
	return FromDataModelSlice(records), nil
}

func (s *Service) ListForUserInDateRange(userID int64, start, end string) ([]*Expense, error) {
	if userID <= 0 {
		return nil, internal.NewValidationError("invalid user id", internal.ErrCodeValidationFailed)
	}
	if err := validateRange(start, end); err != nil {
		return nil, err
	}

	records, err := s.repo.ListForUserInDateRange(userID, start, end)
	if err != nil {
		s.logger.Error("list expenses in range: store failure", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to list expenses", err)
	}
	return FromDataModelSlice(records), nil
}

func (s *Service) ListForUserByCategory(userID, categoryID int64) ([]*Expense, error) {
	if userID <= 0 || categoryID <= 0 {
		return nil, internal.NewValidationError("invalid id", internal.ErrCodeValidationFailed)
	}

	records, err := s.repo.ListForUserByCategory(userID, categoryID)
	if err != nil {
		s.logger.Error("list expenses by category: store failure", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to list expenses", err)
	}
	return FromDataModelSlice(records), nil
}

func validateRange(start, end string) error {
	startDay, err := time.Parse(DateLayout, start)
	if err != nil {
		return internal.NewValidationError("start date must be YYYY-MM-DD", internal.ErrCodeInvalidDate)
	}
	endDay, err := time.Parse(DateLayout, end)
	if err != nil {
		return internal.NewValidationError("end date must be YYYY-MM-DD", internal.ErrCodeInvalidDate)
	}
	if endDay.Before(startDay) {
		return internal.NewValidationError("end date must not precede start date", internal.ErrCodeInvalidDate)
	}
	return nil
}
