package expense_test

import (
	"log/slog"
	"os"
	"sort"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"github.com/aditmayuda/expense-tracker/internal"
	expenseDatamodel "github.com/aditmayuda/expense-tracker/internal/core/datamodel/expense"
	"github.com/aditmayuda/expense-tracker/internal/expense"
)

func TestExpenseService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Expense Service Suite")
}

// Mock repository for testing. Ownership scoping mirrors the real store:
// a row with the wrong user id behaves like a missing row.
type mockExpenseRepository struct {
	expenses map[int64]*expenseDatamodel.Expense
	nextID   int64

	createError error
	getError    error
	writeError  error
}

func newMockExpenseRepository() *mockExpenseRepository {
	return &mockExpenseRepository{
		expenses: make(map[int64]*expenseDatamodel.Expense),
		nextID:   1,
	}
}

func (m *mockExpenseRepository) Create(e *expenseDatamodel.Expense) error {
	if m.createError != nil {
		return m.createError
	}
	e.ID = m.nextID
	m.nextID++
	stored := *e
	m.expenses[e.ID] = &stored
	return nil
}

func (m *mockExpenseRepository) Update(e *expenseDatamodel.Expense) (int64, error) {
	if m.writeError != nil {
		return 0, m.writeError
	}
	existing, ok := m.expenses[e.ID]
	if !ok || existing.UserID != e.UserID {
		return 0, nil
	}
	existing.CategoryID = e.CategoryID
	existing.AmountCents = e.AmountCents
	existing.Description = e.Description
	existing.ExpenseDate = e.ExpenseDate
	return 1, nil
}

func (m *mockExpenseRepository) Delete(expenseID, userID int64) (int64, error) {
	if m.writeError != nil {
		return 0, m.writeError
	}
	existing, ok := m.expenses[expenseID]
	if !ok || existing.UserID != userID {
		return 0, nil
	}
	delete(m.expenses, expenseID)
	return 1, nil
}

func (m *mockExpenseRepository) GetByID(expenseID, userID int64) (*expenseDatamodel.Expense, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	e, ok := m.expenses[expenseID]
	if !ok || e.UserID != userID {
		return nil, nil
	}
	return e, nil
}

func (m *mockExpenseRepository) ListForUser(userID int64) ([]*expenseDatamodel.Expense, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	var out []*expenseDatamodel.Expense
	for _, e := range m.expenses {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExpenseDate > out[j].ExpenseDate })
	return out, nil
}

func (m *mockExpenseRepository) ListForUserInDateRange(userID int64, start, end string) ([]*expenseDatamodel.Expense, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	var out []*expenseDatamodel.Expense
	for _, e := range m.expenses {
		if e.UserID == userID && e.ExpenseDate >= start && e.ExpenseDate <= end {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExpenseDate > out[j].ExpenseDate })
	return out, nil
}

func (m *mockExpenseRepository) ListForUserByCategory(userID, categoryID int64) ([]*expenseDatamodel.Expense, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	var out []*expenseDatamodel.Expense
	for _, e := range m.expenses {
		if e.UserID == userID && e.CategoryID == categoryID {
			out = append(out, e)
		}
	}
	return out, nil
}

var _ = Describe("ExpenseService", func() {
	var (
		service  *expense.Service
		mockRepo *mockExpenseRepository
	)

	alice := int64(1)
	bob := int64(2)

	validDTO := func() expense.CreateExpenseDTO {
		return expense.CreateExpenseDTO{
			CategoryID:  3,
			Amount:      decimal.RequireFromString("25.00"),
			Description: "Birthday present",
			ExpenseDate: "2024-06-15",
		}
	}

	BeforeEach(func() {
		mockRepo = newMockExpenseRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = expense.NewService(mockRepo, logger)
	})

	Describe("Create", func() {
		It("should persist the amount as exact cents", func() {
			result, err := service.Create(alice, validDTO())

			Expect(err).ToNot(HaveOccurred())
			Expect(result.ID).To(BeNumerically(">", 0))
			Expect(mockRepo.expenses[result.ID].AmountCents).To(Equal(int64(2500)))
			Expect(result.Amount.Equal(decimal.RequireFromString("25.00"))).To(BeTrue())
		})

		It("should keep fractional cents exact where floats would drift", func() {
			dto := validDTO()
			dto.Amount = decimal.RequireFromString("0.10")

			result, err := service.Create(alice, dto)

			Expect(err).ToNot(HaveOccurred())
			Expect(mockRepo.expenses[result.ID].AmountCents).To(Equal(int64(10)))
		})

		It("should reject a zero or negative amount", func() {
			dto := validDTO()
			dto.Amount = decimal.Zero
			_, err := service.Create(alice, dto)
			Expect(err).To(HaveOccurred())

			dto.Amount = decimal.RequireFromString("-5")
			_, err = service.Create(alice, dto)
			Expect(err).To(HaveOccurred())
		})

		It("should accept trailing zeros beyond two fraction digits", func() {
			dto := validDTO()
			dto.Amount = decimal.RequireFromString("25.100")

			result, err := service.Create(alice, dto)

			Expect(err).ToNot(HaveOccurred())
			Expect(mockRepo.expenses[result.ID].AmountCents).To(Equal(int64(2510)))
		})

		It("should reject more than two fraction digits", func() {
			dto := validDTO()
			dto.Amount = decimal.RequireFromString("1.005")

			_, err := service.Create(alice, dto)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidAmount))
		})

		It("should reject a malformed date", func() {
			dto := validDTO()
			dto.ExpenseDate = "15/06/2024"

			_, err := service.Create(alice, dto)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidDate))
		})

		It("should reject a blank description and missing category", func() {
			dto := validDTO()
			dto.Description = "   "
			_, err := service.Create(alice, dto)
			Expect(err).To(HaveOccurred())

			dto = validDTO()
			dto.CategoryID = 0
			_, err = service.Create(alice, dto)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Update", func() {
		var created *expense.Expense

		BeforeEach(func() {
			var err error
			created, err = service.Create(alice, validDTO())
			Expect(err).ToNot(HaveOccurred())
		})

		It("should overwrite every mutable field", func() {
			result, err := service.Update(created.ID, alice, expense.UpdateExpenseDTO{
				CategoryID:  4,
				Amount:      decimal.RequireFromString("12.34"),
				Description: "Bus ticket",
				ExpenseDate: "2024-07-01",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.CategoryID).To(Equal(int64(4)))
			Expect(result.Amount.Equal(decimal.RequireFromString("12.34"))).To(BeTrue())
			Expect(result.ExpenseDate).To(Equal("2024-07-01"))
		})

		It("should report another user's expense as missing", func() {
			_, err := service.Update(created.ID, bob, expense.UpdateExpenseDTO{
				CategoryID:  4,
				Amount:      decimal.RequireFromString("1.00"),
				Description: "Hijack",
				ExpenseDate: "2024-07-01",
			})

			Expect(err).To(MatchError(internal.ErrExpenseNotFound))
			Expect(mockRepo.expenses[created.ID].Description).To(Equal("Birthday present"))
		})
	})

	Describe("Delete", func() {
		It("should delete only the owner's expense", func() {
			created, err := service.Create(alice, validDTO())
			Expect(err).ToNot(HaveOccurred())

			Expect(service.Delete(created.ID, bob)).To(MatchError(internal.ErrExpenseNotFound))
			Expect(service.Delete(created.ID, alice)).To(Succeed())
			Expect(service.Delete(created.ID, alice)).To(MatchError(internal.ErrExpenseNotFound))
		})
	})

	Describe("GetByID", func() {
		It("should hide other users' expenses", func() {
			created, err := service.Create(alice, validDTO())
			Expect(err).ToNot(HaveOccurred())

			_, err = service.GetByID(created.ID, bob)
			Expect(err).To(MatchError(internal.ErrExpenseNotFound))
		})
	})

	Describe("ListForUserInDateRange", func() {
		It("should reject an inverted range", func() {
			_, err := service.ListForUserInDateRange(alice, "2024-07-01", "2024-06-01")

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidDate))
		})

		It("should include both boundary days", func() {
			for _, day := range []string{"2024-06-01", "2024-06-15", "2024-06-30", "2024-07-01"} {
				dto := validDTO()
				dto.ExpenseDate = day
				_, err := service.Create(alice, dto)
				Expect(err).ToNot(HaveOccurred())
			}

			result, err := service.ListForUserInDateRange(alice, "2024-06-01", "2024-06-30")

			Expect(err).ToNot(HaveOccurred())
			Expect(result).To(HaveLen(3))
		})
	})
})
