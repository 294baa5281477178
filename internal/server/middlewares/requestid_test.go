package middlewares_test

import (
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/action-agent/internal/server/middlewares"
)

var _ = Describe("RequestID", func() {
	var router *gin.Engine

	BeforeEach(func() {
		router = gin.New()
		router.Use(middlewares.RequestID(), middlewares.Logger())
		router.GET("/id", func(c *gin.Context) {
			c.String(http.StatusOK, c.GetString(middlewares.RequestIDKey))
		})
	})

	It("keeps the caller's request id", func() {
		req := httptest.NewRequest(http.MethodGet, "/id", nil)
		req.Header.Set(middlewares.RequestIDHeader, "abc-123")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Header().Get(middlewares.RequestIDHeader)).To(Equal("abc-123"))
		Expect(w.Body.String()).To(Equal("abc-123"))
	})

	It("generates one when missing", func() {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/id", nil))

		id := w.Header().Get(middlewares.RequestIDHeader)
		Expect(id).To(HaveLen(36))
		Expect(w.Body.String()).To(Equal(id))
	})
})
