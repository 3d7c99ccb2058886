package report

import (
	"net/http"
	"strconv"

	"github.com/aditmayuda/expense-tracker/internal"
	"github.com/aditmayuda/expense-tracker/internal/transport"
	"github.com/aditmayuda/expense-tracker/pkg/logger"
	"github.com/shopspring/decimal"
)

type ServiceAPI interface {
	SummaryByCategory(userID int64, start, end string) ([]CategoryTotal, error)
	MonthlyTotals(userID int64, year int) ([]MonthlyTotal, error)
	TotalInRange(userID int64, start, end string) (decimal.Decimal, error)
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

func (h *Handler) CategorySummary(w http.ResponseWriter, r *http.Request) {
	userID := internal.UserIDFromContext(r.Context())
	if userID <= 0 {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	totals, err := h.Service.SummaryByCategory(userID,
		r.URL.Query().Get("start"), r.URL.Query().Get("end"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"summary": totals})
}

func (h *Handler) MonthlyTotals(w http.ResponseWriter, r *http.Request) {
	userID := internal.UserIDFromContext(r.Context())
	if userID <= 0 {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid year")
		return
	}

	totals, svcErr := h.Service.MonthlyTotals(userID, year)
	if svcErr != nil {
		h.HandleServiceError(w, svcErr)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"months": totals})
}

func (h *Handler) Total(w http.ResponseWriter, r *http.Request) {
	userID := internal.UserIDFromContext(r.Context())
	if userID <= 0 {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	total, err := h.Service.TotalInRange(userID,
		r.URL.Query().Get("start"), r.URL.Query().Get("end"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"total": total.StringFixed(2)})
}
