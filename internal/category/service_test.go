package category_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/aditmayuda/expense-tracker/internal"
	"github.com/aditmayuda/expense-tracker/internal/category"
	categoryDatamodel "github.com/aditmayuda/expense-tracker/internal/core/datamodel/category"
)

func TestCategoryService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Category Service Suite")
}

// Mock repository for testing
type mockCategoryRepository struct {
	categories map[int64]*categoryDatamodel.Category
	nextID     int64

	createError   error
	getError      error
	updateError   error
	deleteError   error
	reassignCalls []int64
}

func newMockCategoryRepository() *mockCategoryRepository {
	return &mockCategoryRepository{
		categories: make(map[int64]*categoryDatamodel.Category),
		nextID:     1,
	}
}

func (m *mockCategoryRepository) add(c categoryDatamodel.Category) *categoryDatamodel.Category {
	c.ID = m.nextID
	m.nextID++
	m.categories[c.ID] = &c
	return &c
}

func (m *mockCategoryRepository) Create(c *categoryDatamodel.Category) error {
	if m.createError != nil {
		return m.createError
	}
	c.ID = m.nextID
	m.nextID++
	stored := *c
	m.categories[c.ID] = &stored
	return nil
}

func (m *mockCategoryRepository) Update(c *categoryDatamodel.Category) (int64, error) {
	if m.updateError != nil {
		return 0, m.updateError
	}
	existing, ok := m.categories[c.ID]
	if !ok {
		return 0, nil
	}
	existing.Name = c.Name
	existing.Description = c.Description
	return 1, nil
}

func (m *mockCategoryRepository) DeleteReassign(id int64) error {
	if m.deleteError != nil {
		return m.deleteError
	}
	m.reassignCalls = append(m.reassignCalls, id)
	delete(m.categories, id)
	return nil
}

func (m *mockCategoryRepository) GetByID(id int64) (*categoryDatamodel.Category, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	c, ok := m.categories[id]
	if !ok {
		return nil, nil
	}
	return c, nil
}

func (m *mockCategoryRepository) ListAll() ([]*categoryDatamodel.Category, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	out := make([]*categoryDatamodel.Category, 0, len(m.categories))
	for _, c := range m.categories {
		out = append(out, c)
	}
	return out, nil
}

func (m *mockCategoryRepository) ListForUser(userID int64) ([]*categoryDatamodel.Category, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	var out []*categoryDatamodel.Category
	for _, c := range m.categories {
		if c.IsDefault || (c.UserID != nil && *c.UserID == userID) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockCategoryRepository) EnsureDefaults(names []string) (int64, error) {
	if m.createError != nil {
		return 0, m.createError
	}
	for _, c := range m.categories {
		if c.IsDefault {
			return 0, nil
		}
	}
	for _, name := range names {
		m.add(categoryDatamodel.Category{
			Name:        name,
			Description: name + " expenses",
			IsDefault:   true,
		})
	}
	return int64(len(names)), nil
}

var _ = Describe("CategoryService", func() {
	var (
		service  *category.Service
		mockRepo *mockCategoryRepository
	)

	alice := int64(1)
	bob := int64(2)

	BeforeEach(func() {
		mockRepo = newMockCategoryRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = category.NewService(mockRepo, logger)
	})

	Describe("Create", func() {
		It("should create a user-owned, non-default category", func() {
			result, err := service.Create(alice, category.CreateCategoryDTO{
				Name:        "Gifts",
				Description: "Presents",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.ID).To(BeNumerically(">", 0))
			Expect(result.IsDefault).To(BeFalse())
			Expect(result.UserID).ToNot(BeNil())
			Expect(*result.UserID).To(Equal(alice))
		})

		It("should reject a blank name", func() {
			_, err := service.Create(alice, category.CreateCategoryDTO{Name: "   "})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})

		It("should never create a default category, whatever the dto says", func() {
			result, err := service.Create(alice, category.CreateCategoryDTO{Name: "Food"})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.IsDefault).To(BeFalse())
		})
	})

	Describe("Update", func() {
		var gifts *categoryDatamodel.Category

		BeforeEach(func() {
			gifts = mockRepo.add(categoryDatamodel.Category{Name: "Gifts", UserID: &alice})
		})

		It("should rename an owned category", func() {
			result, err := service.Update(gifts.ID, alice, category.UpdateCategoryDTO{
				Name:        "Presents",
				Description: "Birthday presents",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Name).To(Equal("Presents"))
		})

		It("should refuse to touch a default category", func() {
			food := mockRepo.add(categoryDatamodel.Category{Name: "Food", IsDefault: true})

			_, err := service.Update(food.ID, alice, category.UpdateCategoryDTO{Name: "Groceries"})

			Expect(err).To(MatchError(internal.ErrDefaultImmutable))
			Expect(mockRepo.categories[food.ID].Name).To(Equal("Food"))
		})

		It("should present another user's category as missing", func() {
			_, err := service.Update(gifts.ID, bob, category.UpdateCategoryDTO{Name: "Stolen"})

			Expect(err).To(MatchError(internal.ErrCategoryNotFound))
			Expect(mockRepo.categories[gifts.ID].Name).To(Equal("Gifts"))
		})

		It("should report a missing category", func() {
			_, err := service.Update(999, alice, category.UpdateCategoryDTO{Name: "Ghost"})
			Expect(err).To(MatchError(internal.ErrCategoryNotFound))
		})
	})

	Describe("Delete", func() {
		var gifts *categoryDatamodel.Category

		BeforeEach(func() {
			gifts = mockRepo.add(categoryDatamodel.Category{Name: "Gifts", UserID: &alice})
		})

		It("should delete an owned category through the reassigning path", func() {
			Expect(service.Delete(gifts.ID, alice)).To(Succeed())
			Expect(mockRepo.reassignCalls).To(ConsistOf(gifts.ID))
		})

		It("should refuse to delete a default category", func() {
			food := mockRepo.add(categoryDatamodel.Category{Name: "Food", IsDefault: true})

			err := service.Delete(food.ID, alice)

			Expect(err).To(MatchError(internal.ErrDefaultImmutable))
			Expect(mockRepo.reassignCalls).To(BeEmpty())
		})

		It("should present another user's category as missing", func() {
			err := service.Delete(gifts.ID, bob)

			Expect(err).To(MatchError(internal.ErrCategoryNotFound))
			Expect(mockRepo.reassignCalls).To(BeEmpty())
		})

		It("should pass through the no-default failure untouched", func() {
			mockRepo.deleteError = internal.ErrNoDefaultCategory

			err := service.Delete(gifts.ID, alice)

			Expect(err).To(MatchError(internal.ErrNoDefaultCategory))
		})

		It("should wrap plain store failures", func() {
			mockRepo.deleteError = errors.New("disk full")

			err := service.Delete(gifts.ID, alice)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeInternal))
		})
	})

	Describe("ListForUser", func() {
		It("should return defaults plus the user's own categories", func() {
			mockRepo.add(categoryDatamodel.Category{Name: "Food", IsDefault: true})
			mockRepo.add(categoryDatamodel.Category{Name: "Gifts", UserID: &alice})
			mockRepo.add(categoryDatamodel.Category{Name: "Bikes", UserID: &bob})

			result, err := service.ListForUser(alice)

			Expect(err).ToNot(HaveOccurred())
			names := make([]string, 0, len(result))
			for _, c := range result {
				names = append(names, c.Name)
			}
			Expect(names).To(ConsistOf("Food", "Gifts"))
		})
	})

	Describe("EnsureDefaults", func() {
		It("should seed the default set once", func() {
			Expect(service.EnsureDefaults()).To(Succeed())

			all, err := service.ListAll()
			Expect(err).ToNot(HaveOccurred())
			Expect(all).To(HaveLen(len(category.DefaultCategoryNames)))

			Expect(service.EnsureDefaults()).To(Succeed())
			all, err = service.ListAll()
			Expect(err).ToNot(HaveOccurred())
			Expect(all).To(HaveLen(len(category.DefaultCategoryNames)))
		})
	})
})
