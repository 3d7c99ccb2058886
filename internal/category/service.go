package category

import (
	"log/slog"

	"github.com/aditmayuda/expense-tracker/internal"
	categoryDatamodel "github.com/aditmayuda/expense-tracker/internal/core/datamodel/category"
)

// RepositoryAPI is the store surface the category service depends on.
// Lookups report absence as (nil, nil).
type RepositoryAPI interface {
	Create(c *categoryDatamodel.Category) error
	Update(c *categoryDatamodel.Category) (int64, error)
	// DeleteReassign moves every expense of the category onto a default
	// category and deletes the row, all in one transaction. It returns
	// internal.ErrNoDefaultCategory when no default category exists; the
	// category then survives untouched.
	DeleteReassign(id int64) error
	GetByID(id int64) (*categoryDatamodel.Category, error)
	ListAll() ([]*categoryDatamodel.Category, error)
	// ListForUser returns the user's own categories plus all defaults.
	ListForUser(userID int64) ([]*categoryDatamodel.Category, error)
	EnsureDefaults(names []string) (int64, error)
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

func (s *Service) Create(userID int64, dto CreateCategoryDTO) (*Category, error) {
	if userID <= 0 {
		return nil, internal.NewValidationError("invalid user id", internal.ErrCodeValidationFailed)
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	record := &categoryDatamodel.Category{
		Name:        dto.Name,
		Description: dto.Description,
		UserID:      &userID,
		IsDefault:   false,
	}
	if err := s.repo.Create(record); err != nil {
		s.logger.Error("create category: store failure", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to create category", err)
	}

	s.logger.Info("category created", "category_id", record.ID, "user_id", userID)
	return FromDataModel(record), nil
}

// Update renames a category owned by the calling user. Default categories are
// not editable through this path, regardless of caller.
func (s *Service) Update(id, userID int64, dto UpdateCategoryDTO) (*Category, error) {
	if id <= 0 || userID <= 0 {
		return nil, internal.NewValidationError("invalid id", internal.ErrCodeValidationFailed)
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	record, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("update category: lookup failed", "error", err, "category_id", id)
		return nil, internal.NewInternalError("failed to update category", err)
	}
	if record == nil {
		return nil, internal.ErrCategoryNotFound
	}
	if record.IsDefault {
		return nil, internal.ErrDefaultImmutable
	}
	if record.UserID == nil || *record.UserID != userID {
		// Another user's category looks like no category at all.
		return nil, internal.ErrCategoryNotFound
	}

	record.Name = dto.Name
	record.Description = dto.Description
	affected, err := s.repo.Update(record)
	if err != nil {
		s.logger.Error("update category: store failure", "error", err, "category_id", id)
		return nil, internal.NewInternalError("failed to update category", err)
	}
	if affected == 0 {
		return nil, internal.ErrCategoryNotFound
	}

	s.logger.Info("category updated", "category_id", id, "user_id", userID)
	return FromDataModel(record), nil
}

// Delete removes a non-default category owned by the calling user. Its
// expenses are reassigned to the default "Other" category (or any default)
// before the row goes; with no default category anywhere the whole operation
// fails.
func (s *Service) Delete(id, userID int64) error {
	if id <= 0 || userID <= 0 {
		return internal.NewValidationError("invalid id", internal.ErrCodeValidationFailed)
	}

	record, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("delete category: lookup failed", "error", err, "category_id", id)
		return internal.NewInternalError("failed to delete category", err)
	}
	if record == nil {
		return internal.ErrCategoryNotFound
	}
	if record.IsDefault {
		return internal.ErrDefaultImmutable
	}
	if record.UserID == nil || *record.UserID != userID {
		return internal.ErrCategoryNotFound
	}

	if err := s.repo.DeleteReassign(id); err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			s.logger.Warn("delete category rejected", "category_id", id, "code", appErr.Code)
			return appErr
		}
		s.logger.Error("delete category: store failure", "error", err, "category_id", id)
		return internal.NewInternalError("failed to delete category", err)
	}

	s.logger.Info("category deleted", "category_id", id, "user_id", userID)
	return nil
}

func (s *Service) GetByID(id int64) (*Category, error) {
	if id <= 0 {
		return nil, internal.NewValidationError("invalid category id", internal.ErrCodeValidationFailed)
	}

	record, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("get category: store failure", "error", err, "category_id", id)
		return nil, internal.NewInternalError("failed to get category", err)
	}
	if record == nil {
		return nil, internal.ErrCategoryNotFound
	}
	return FromDataModel(record), nil
}

func (s *Service) ListAll() ([]*Category, error) {
	records, err := s.repo.ListAll()
	if err != nil {
		s.logger.Error("list categories: store failure", "error", err)
		return nil, internal.NewInternalError("failed to list categories", err)
	}
	return FromDataModelSlice(records), nil
}

func (s *Service) ListForUser(userID int64) ([]*Category, error) {
	if userID <= 0 {
		return nil, internal.NewValidationError("invalid user id", internal.ErrCodeValidationFailed)
	}

	records, err := s.repo.ListForUser(userID)
	if err != nil {
		s.logger.Error("list user categories: store failure", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to list categories", err)
	}
	return FromDataModelSlice(records), nil
}

// EnsureDefaults seeds the fixed default category set. It is a no-op when any
// default category already exists.
func (s *Service) EnsureDefaults() error {
	inserted, err := s.repo.EnsureDefaults(DefaultCategoryNames)
	if err != nil {
		s.logger.Error("seed default categories: store failure", "error", err)
		return internal.NewInternalError("failed to seed default categories", err)
	}
	if inserted > 0 {
		s.logger.Info("default categories seeded", "count", inserted)
	}
	return nil
}
