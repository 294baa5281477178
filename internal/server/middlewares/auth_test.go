package middlewares_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	v1 "github.com/kubev2v/action-agent/api/v1"
	"github.com/kubev2v/action-agent/internal/server/middlewares"
	srvErrors "github.com/kubev2v/action-agent/pkg/errors"
)

var _ = Describe("Authenticator", func() {
	var (
		secret []byte
		router *gin.Engine
	)

	sign := func(method jwt.SigningMethod, key any, claims jwt.RegisteredClaims) string {
		token, err := jwt.NewWithClaims(method, claims).SignedString(key)
		Expect(err).ToNot(HaveOccurred())
		return token
	}

	do := func(path, authorization string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if authorization != "" {
			req.Header.Set("Authorization", authorization)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	BeforeEach(func() {
		secret = []byte("top-secret")
		router = gin.New()
		group := router.Group("/api/v1")
		group.Use(middlewares.NewAuthenticator(secret, "/api/v1/health").Handler())
		group.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
		group.GET("/whoami", func(c *gin.Context) {
			c.String(http.StatusOK, c.GetString(middlewares.SubjectKey))
		})
	})

	It("accepts a valid token and exposes its subject", func() {
		token := sign(jwt.SigningMethodHS256, secret, jwt.RegisteredClaims{Subject: "runner-1"})

		w := do("/api/v1/whoami", "Bearer "+token)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(Equal("runner-1"))
	})

	// Given a request without an Authorization header
	// When it reaches a protected route
	// Then it is rejected with the AgentUnauthorized kind
	It("rejects a missing token", func() {
		w := do("/api/v1/whoami", "")

		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		var body v1.Error
		Expect(json.Unmarshal(w.Body.Bytes(), &body)).To(Succeed())
		Expect(body.Kind).To(Equal(srvErrors.KindAgentUnauthorized))
	})

	It("rejects a token signed with another secret", func() {
		token := sign(jwt.SigningMethodHS256, []byte("other"), jwt.RegisteredClaims{Subject: "runner-1"})
		Expect(do("/api/v1/whoami", "Bearer "+token).Code).To(Equal(http.StatusUnauthorized))
	})

	It("rejects an expired token", func() {
		token := sign(jwt.SigningMethodHS256, secret, jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		})
		Expect(do("/api/v1/whoami", "Bearer "+token).Code).To(Equal(http.StatusUnauthorized))
	})

	It("rejects a non bearer scheme", func() {
		Expect(do("/api/v1/whoami", "Basic dXNlcjpwYXNz").Code).To(Equal(http.StatusUnauthorized))
	})

	It("skips configured paths", func() {
		Expect(do("/api/v1/health", "").Code).To(Equal(http.StatusOK))
	})

	Describe("LoadSecret", func() {
		It("trims surrounding whitespace", func() {
			path := filepath.Join(GinkgoT().TempDir(), "secret")
			Expect(os.WriteFile(path, []byte("  abc\n"), 0o600)).To(Succeed())

			b, err := middlewares.LoadSecret(path)
			Expect(err).ToNot(HaveOccurred())
			Expect(string(b)).To(Equal("abc"))
		})

		It("fails on an empty file", func() {
			path := filepath.Join(GinkgoT().TempDir(), "secret")
			Expect(os.WriteFile(path, []byte("\n"), 0o600)).To(Succeed())

			_, err := middlewares.LoadSecret(path)
			Expect(err).To(HaveOccurred())
		})
	})
})
