package user

import (
	"log/slog"
	"strings"

	"github.com/aditmayuda/expense-tracker/internal"
	userDatamodel "github.com/aditmayuda/expense-tracker/internal/core/datamodel/user"
)

// RepositoryAPI is the store surface the user service depends on. Lookups
// report absence as (nil, nil); errors are store faults only.
type RepositoryAPI interface {
	Create(u *userDatamodel.User) error
	Update(u *userDatamodel.User) (int64, error)
	// DeleteCascade removes the user's expenses, the user's non-default
	// categories and the user row in one transaction. It reports whether the
	// user row existed.
	DeleteCascade(userID int64) (bool, error)
	GetByID(id int64) (*userDatamodel.User, error)
	GetByUsername(username string) (*userDatamodel.User, error)
	GetByEmail(email string) (*userDatamodel.User, error)
	Count() (int64, error)
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

func (s *Service) Register(dto RegisterDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByUsername(dto.Username)
	if err != nil {
		s.logger.Error("register: username lookup failed", "error", err)
		return nil, internal.NewInternalError("failed to register user", err)
	}
	if existing != nil {
		return nil, internal.ErrUsernameTaken
	}

	existing, err = s.repo.GetByEmail(dto.Email)
	if err != nil {
		s.logger.Error("register: email lookup failed", "error", err)
		return nil, internal.NewInternalError("failed to register user", err)
	}
	if existing != nil {
		return nil, internal.ErrEmailTaken
	}

	record := &userDatamodel.User{
		Username: dto.Username,
		Password: dto.Password,
		Email:    dto.Email,
	}
	if err := s.repo.Create(record); err != nil {
		s.logger.Error("register: create failed", "error", err, "username", dto.Username)
		return nil, internal.NewInternalError("failed to register user", err)
	}

	s.logger.Info("user registered", "user_id", record.ID, "username", record.Username)
	return FromDataModel(record), nil
}

// Authenticate resolves the username case-insensitively and compares the
// stored password with the supplied one, both trimmed. Unknown username and
// wrong password are reported identically.
func (s *Service) Authenticate(username, password string) (*User, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" || password == "" {
		return nil, internal.ErrInvalidCredentials
	}

	record, err := s.repo.GetByUsername(username)
	if err != nil {
		s.logger.Error("authenticate: lookup failed", "error", err)
		return nil, internal.NewInternalError("failed to authenticate", err)
	}
	if record == nil {
		return nil, internal.ErrInvalidCredentials
	}
	if strings.TrimSpace(record.Password) != password {
		return nil, internal.ErrInvalidCredentials
	}

	return FromDataModel(record), nil
}

func (s *Service) UpdateProfile(userID int64, dto UpdateProfileDTO) (*User, error) {
	if userID <= 0 {
		return nil, internal.NewValidationError("invalid user id", internal.ErrCodeValidationFailed)
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	// Same uniqueness vocabulary as Register; the user's own row is not a
	// collision.
	existing, err := s.repo.GetByUsername(dto.Username)
	if err != nil {
		s.logger.Error("update profile: username lookup failed", "error", err)
		return nil, internal.NewInternalError("failed to update user", err)
	}
	if existing != nil && existing.ID != userID {
		return nil, internal.ErrUsernameTaken
	}

	existing, err = s.repo.GetByEmail(dto.Email)
	if err != nil {
		s.logger.Error("update profile: email lookup failed", "error", err)
		return nil, internal.NewInternalError("failed to update user", err)
	}
	if existing != nil && existing.ID != userID {
		return nil, internal.ErrEmailTaken
	}

	record := &userDatamodel.User{
		ID:       userID,
		Username: dto.Username,
		Password: dto.Password,
		Email:    dto.Email,
	}
	affected, err := s.repo.Update(record)
	if err != nil {
		s.logger.Error("update profile: store failure", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to update user", err)
	}
	if affected == 0 {
		return nil, internal.ErrUserNotFound
	}

	s.logger.Info("user updated", "user_id", userID)
	return s.GetByID(userID)
}

// Delete removes the user together with all owned expenses and non-default
// categories. Default categories are never touched.
func (s *Service) Delete(userID int64) error {
	if userID <= 0 {
		return internal.NewValidationError("invalid user id", internal.ErrCodeValidationFailed)
	}

	found, err := s.repo.DeleteCascade(userID)
	if err != nil {
		s.logger.Error("delete user: cascade failed", "error", err, "user_id", userID)
		return internal.NewInternalError("failed to delete user", err)
	}
	if !found {
		return internal.ErrUserNotFound
	}

	s.logger.Info("user deleted", "user_id", userID)
	return nil
}

func (s *Service) GetByID(userID int64) (*User, error) {
	record, err := s.repo.GetByID(userID)
	if err != nil {
		s.logger.Error("get user: store failure", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to get user", err)
	}
	if record == nil {
		return nil, internal.ErrUserNotFound
	}
	return FromDataModel(record), nil
}

func (s *Service) GetByUsername(username string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, internal.NewValidationError("username is required", internal.ErrCodeValidationFailed)
	}

	record, err := s.repo.GetByUsername(username)
	if err != nil {
		s.logger.Error("get user by username: store failure", "error", err)
		return nil, internal.NewInternalError("failed to get user", err)
	}
	if record == nil {
		return nil, internal.ErrUserNotFound
	}
	return FromDataModel(record), nil
}

func (s *Service) Count() (int64, error) {
	count, err := s.repo.Count()
	if err != nil {
		s.logger.Error("count users: store failure", "error", err)
		return 0, internal.NewInternalError("failed to count users", err)
	}
	return count, nil
}
