package user_test

import (
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/aditmayuda/expense-tracker/internal"
	userDatamodel "github.com/aditmayuda/expense-tracker/internal/core/datamodel/user"
	"github.com/aditmayuda/expense-tracker/internal/user"
)

func TestUserService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Service Suite")
}

// Mock repository for testing
type mockUserRepository struct {
	users       map[int64]*userDatamodel.User
	nextID      int64
	createError error
	getError    error
	updateError error
	deleteError error

	cascadeCalls []int64
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users:  make(map[int64]*userDatamodel.User),
		nextID: 1,
	}
}

func (m *mockUserRepository) Create(u *userDatamodel.User) error {
	if m.createError != nil {
		return m.createError
	}
	u.ID = m.nextID
	m.nextID++
	u.CreatedAt = time.Now()
	stored := *u
	m.users[u.ID] = &stored
	return nil
}

func (m *mockUserRepository) Update(u *userDatamodel.User) (int64, error) {
	if m.updateError != nil {
		return 0, m.updateError
	}
	existing, ok := m.users[u.ID]
	if !ok {
		return 0, nil
	}
	existing.Username = u.Username
	existing.Password = u.Password
	existing.Email = u.Email
	return 1, nil
}

func (m *mockUserRepository) DeleteCascade(userID int64) (bool, error) {
	if m.deleteError != nil {
		return false, m.deleteError
	}
	m.cascadeCalls = append(m.cascadeCalls, userID)
	if _, ok := m.users[userID]; !ok {
		return false, nil
	}
	delete(m.users, userID)
	return true, nil
}

func (m *mockUserRepository) GetByID(id int64) (*userDatamodel.User, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}

func (m *mockUserRepository) GetByUsername(username string) (*userDatamodel.User, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	for _, u := range m.users {
		if strings.EqualFold(u.Username, username) {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepository) GetByEmail(email string) (*userDatamodel.User, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepository) Count() (int64, error) {
	if m.getError != nil {
		return 0, m.getError
	}
	return int64(len(m.users)), nil
}

var _ = Describe("UserService", func() {
	var (
		service  *user.Service
		mockRepo *mockUserRepository
	)

	BeforeEach(func() {
		mockRepo = newMockUserRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = user.NewService(mockRepo, logger)
	})

	Describe("Register", func() {
		It("should create a user and assign an id", func() {
			result, err := service.Register(user.RegisterDTO{
				Username: "alice",
				Password: "pw123",
				Email:    "a@x.com",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.ID).To(BeNumerically(">", 0))
			Expect(result.Username).To(Equal("alice"))
			Expect(result.CreatedAt).ToNot(BeZero())
		})

		It("should trim surrounding whitespace before storing", func() {
			result, err := service.Register(user.RegisterDTO{
				Username: "  alice  ",
				Password: " pw123 ",
				Email:    " a@x.com ",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Username).To(Equal("alice"))
			Expect(result.Email).To(Equal("a@x.com"))
		})

		It("should reject blank fields", func() {
			_, err := service.Register(user.RegisterDTO{Username: "   ", Password: "pw", Email: "a@x.com"})
			Expect(err).To(HaveOccurred())

			_, err = service.Register(user.RegisterDTO{Username: "alice", Password: "", Email: "a@x.com"})
			Expect(err).To(HaveOccurred())

			_, err = service.Register(user.RegisterDTO{Username: "alice", Password: "pw", Email: "  "})
			Expect(err).To(HaveOccurred())
		})

		It("should reject a username that differs only in case", func() {
			_, err := service.Register(user.RegisterDTO{Username: "alice", Password: "pw", Email: "a@x.com"})
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Register(user.RegisterDTO{Username: "ALICE", Password: "pw", Email: "b@x.com"})
			Expect(err).To(MatchError(internal.ErrUsernameTaken))
		})

		It("should reject a duplicate email", func() {
			_, err := service.Register(user.RegisterDTO{Username: "alice", Password: "pw", Email: "a@x.com"})
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Register(user.RegisterDTO{Username: "bob", Password: "pw", Email: "a@x.com"})
			Expect(err).To(MatchError(internal.ErrEmailTaken))
		})

		It("should not leak store failures", func() {
			mockRepo.getError = errors.New("connection refused")

			_, err := service.Register(user.RegisterDTO{Username: "alice", Password: "pw", Email: "a@x.com"})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeInternal))
		})
	})

	Describe("Authenticate", func() {
		BeforeEach(func() {
			_, err := service.Register(user.RegisterDTO{Username: "alice", Password: "pw123", Email: "a@x.com"})
			Expect(err).ToNot(HaveOccurred())
		})

		It("should return the user for correct credentials", func() {
			result, err := service.Authenticate("alice", "pw123")

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Username).To(Equal("alice"))
		})

		It("should resolve the username case-insensitively", func() {
			result, err := service.Authenticate("ALICE", "pw123")

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Username).To(Equal("alice"))
		})

		It("should trim both sides of the password comparison", func() {
			result, err := service.Authenticate("alice", "  pw123  ")

			Expect(err).ToNot(HaveOccurred())
			Expect(result).ToNot(BeNil())
		})

		It("should fail identically for unknown user and wrong password", func() {
			_, unknownErr := service.Authenticate("nobody", "pw123")
			_, wrongErr := service.Authenticate("alice", "wrong")

			Expect(unknownErr).To(MatchError(internal.ErrInvalidCredentials))
			Expect(wrongErr).To(MatchError(internal.ErrInvalidCredentials))
		})

		It("should reject blank credentials without touching the store", func() {
			mockRepo.getError = errors.New("should not be called")

			_, err := service.Authenticate("  ", "pw")
			Expect(err).To(MatchError(internal.ErrInvalidCredentials))
		})
	})

	Describe("UpdateProfile", func() {
		It("should overwrite username, password and email", func() {
			created, err := service.Register(user.RegisterDTO{Username: "alice", Password: "pw", Email: "a@x.com"})
			Expect(err).ToNot(HaveOccurred())

			updated, err := service.UpdateProfile(created.ID, user.UpdateProfileDTO{
				Username: "alice2",
				Password: "pw2",
				Email:    "a2@x.com",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(updated.Username).To(Equal("alice2"))
			Expect(updated.Email).To(Equal("a2@x.com"))
		})

		It("should report not-found for a missing user", func() {
			_, err := service.UpdateProfile(99, user.UpdateProfileDTO{
				Username: "ghost",
				Password: "pw",
				Email:    "g@x.com",
			})

			Expect(err).To(MatchError(internal.ErrUserNotFound))
		})

		It("should reject another user's username as a conflict", func() {
			_, err := service.Register(user.RegisterDTO{Username: "alice", Password: "pw", Email: "a@x.com"})
			Expect(err).ToNot(HaveOccurred())
			bob, err := service.Register(user.RegisterDTO{Username: "bob", Password: "pw", Email: "b@x.com"})
			Expect(err).ToNot(HaveOccurred())

			_, err = service.UpdateProfile(bob.ID, user.UpdateProfileDTO{
				Username: "ALICE",
				Password: "pw",
				Email:    "b@x.com",
			})
			Expect(err).To(MatchError(internal.ErrUsernameTaken))

			_, err = service.UpdateProfile(bob.ID, user.UpdateProfileDTO{
				Username: "bob",
				Password: "pw",
				Email:    "a@x.com",
			})
			Expect(err).To(MatchError(internal.ErrEmailTaken))
		})

		It("should not treat the user's own row as a collision", func() {
			created, err := service.Register(user.RegisterDTO{Username: "alice", Password: "pw", Email: "a@x.com"})
			Expect(err).ToNot(HaveOccurred())

			updated, err := service.UpdateProfile(created.ID, user.UpdateProfileDTO{
				Username: "alice",
				Password: "newpw",
				Email:    "a@x.com",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(updated.Username).To(Equal("alice"))
		})

		It("should reject a non-positive user id", func() {
			_, err := service.UpdateProfile(0, user.UpdateProfileDTO{
				Username: "alice",
				Password: "pw",
				Email:    "a@x.com",
			})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})
	})

	Describe("Delete", func() {
		It("should reject a non-positive id without touching the store", func() {
			err := service.Delete(0)

			Expect(err).To(HaveOccurred())
			Expect(mockRepo.cascadeCalls).To(BeEmpty())
		})

		It("should report not-found for a missing user", func() {
			err := service.Delete(42)
			Expect(err).To(MatchError(internal.ErrUserNotFound))
		})

		It("should delete an existing user through the cascade", func() {
			created, err := service.Register(user.RegisterDTO{Username: "alice", Password: "pw", Email: "a@x.com"})
			Expect(err).ToNot(HaveOccurred())

			Expect(service.Delete(created.ID)).To(Succeed())
			Expect(mockRepo.cascadeCalls).To(ConsistOf(created.ID))

			_, err = service.GetByID(created.ID)
			Expect(err).To(MatchError(internal.ErrUserNotFound))
		})
	})

	Describe("Count", func() {
		It("should count registered users", func() {
			_, err := service.Register(user.RegisterDTO{Username: "alice", Password: "pw", Email: "a@x.com"})
			Expect(err).ToNot(HaveOccurred())
			_, err = service.Register(user.RegisterDTO{Username: "bob", Password: "pw", Email: "b@x.com"})
			Expect(err).ToNot(HaveOccurred())

			count, err := service.Count()
			Expect(err).ToNot(HaveOccurred())
			Expect(count).To(Equal(int64(2)))
		})
	})
})
