package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/aditmayuda/expense-tracker/internal/transport/middleware"
)

func TestMiddleware(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Transport Middleware Suite")
}

var _ = Describe("RequestID", func() {
	var seenID string

	handler := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = middleware.RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	BeforeEach(func() {
		seenID = ""
	})

	It("should keep an incoming X-Request-ID and echo it back", func() {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "upstream-id-123")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		Expect(seenID).To(Equal("upstream-id-123"))
		Expect(rec.Header().Get("X-Request-ID")).To(Equal("upstream-id-123"))
	})

	It("should issue a fresh id when none arrives", func() {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		Expect(seenID).NotTo(BeEmpty())
		Expect(rec.Header().Get("X-Request-ID")).To(Equal(seenID))
	})

	It("should return an empty id outside a request", func() {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		Expect(middleware.RequestIDFromContext(req.Context())).To(BeEmpty())
	})
})
