package middlewares

import (
	"bytes"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	v1 "github.com/kubev2v/action-agent/api/v1"
	srvErrors "github.com/kubev2v/action-agent/pkg/errors"
)

// SubjectKey holds the token subject of an authenticated request.
const SubjectKey = "subject"

// Authenticator verifies HMAC signed bearer tokens.
type Authenticator struct {
	secret    []byte
	skipPaths map[string]bool
}

func NewAuthenticator(secret []byte, skipPaths ...string) *Authenticator {
	skip := make(map[string]bool, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = true
	}
	return &Authenticator{secret: secret, skipPaths: skip}
}

// LoadSecret reads the signing secret from path. Surrounding whitespace is ignored.
func LoadSecret(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading authentication secret: %w", err)
	}
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil, fmt.Errorf("authentication secret %s is empty", path)
	}
	return b, nil
}

func (a *Authenticator) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if a.skipPaths[c.FullPath()] {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
			a.reject(c, "missing bearer token")
			return
		}

		claims := &jwt.RegisteredClaims{}
		_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
			return a.secret, nil
		}, jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}))
		if err != nil {
			a.reject(c, err.Error())
			return
		}

		c.Set(SubjectKey, claims.Subject)
		c.Next()
	}
}

func (a *Authenticator) reject(c *gin.Context, reason string) {
	zap.S().Named("auth").Debugw("request rejected", "path", c.Request.URL.Path, "reason", reason)

	err := srvErrors.NewAgentUnauthorized()
	c.AbortWithStatusJSON(http.StatusUnauthorized, v1.Error{Error: err.Error(), Kind: err.Kind()})
}
