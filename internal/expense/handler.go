package expense

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/aditmayuda/expense-tracker/internal"
	"github.com/aditmayuda/expense-tracker/internal/transport"
	"github.com/aditmayuda/expense-tracker/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	Create(userID int64, dto CreateExpenseDTO) (*Expense, error)
	Update(expenseID, userID int64, dto UpdateExpenseDTO) (*Expense, error)
	Delete(expenseID, userID int64) error
	GetByID(expenseID, userID int64) (*Expense, error)
	ListForUser(userID int64) ([]*Expense, error)
	ListForUserInDateRange(userID int64, start, end string) ([]*Expense, error)
	ListForUserByCategory(userID, categoryID int64) ([]*Expense, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.LoggerWrapper()),
		Service:     service,
	}
}

func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	userID := internal.UserIDFromContext(r.Context())
	if userID <= 0 {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	e, err := h.Service.Create(userID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, e)
}

func (h *Handler) GetExpense(w http.ResponseWriter, r *http.Request) {
	userID := internal.UserIDFromContext(r.Context())
	if userID <= 0 {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	e, err := h.Service.GetByID(id, userID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, e)
}

// ListExpenses lists the caller's expenses, newest expense date first.
// Optional query filters: start+end (inclusive date range) or category_id.
func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	userID := internal.UserIDFromContext(r.Context())
	if userID <= 0 {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var (
		expenses []*Expense
		err      error
	)

	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")
	categoryStr := r.URL.Query().Get("category_id")

	switch {
	case start != "" || end != "":
		expenses, err = h.Service.ListForUserInDateRange(userID, start, end)
	case categoryStr != "":
		var categoryID int64
		categoryID, err = strconv.ParseInt(categoryStr, 10, 64)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid category ID")
			return
		}
		expenses, err = h.Service.ListForUserByCategory(userID, categoryID)
	default:
		expenses, err = h.Service.ListForUser(userID)
	}

	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ExpensesResponse{Expenses: expenses})
}

func (h *Handler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	userID := internal.UserIDFromContext(r.Context())
	if userID <= 0 {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var dto UpdateExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	e, err := h.Service.Update(id, userID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, e)
}

func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	userID := internal.UserIDFromContext(r.Context())
	if userID <= 0 {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.Service.Delete(id, userID); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		h.WriteError(w, http.StatusBadRequest, "invalid expense ID")
		return 0, false
	}
	return id, true
}
