package server_test

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/action-agent/internal/config"
	"github.com/kubev2v/action-agent/internal/server"
	"github.com/kubev2v/action-agent/internal/server/middlewares"
)

var _ = Describe("HTTP Server", func() {
	var (
		cfg               *config.Configuration
		registerHandlerFn func(router *gin.RouterGroup)
		srv               *server.Server
	)

	start := func() {
		var err error
		srv, err = server.NewServer(cfg, registerHandlerFn)
		Expect(err).ToNot(HaveOccurred())

		go func() {
			_ = srv.Start(context.TODO())
		}()
		time.Sleep(100 * time.Millisecond)
	}

	BeforeEach(func() {
		registerHandlerFn = func(router *gin.RouterGroup) {
			router.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{"status": "ok"})
			})
			router.GET("/components", func(c *gin.Context) {
				c.JSON(200, gin.H{"components": []string{}})
			})
		}
	})

	AfterEach(func() {
		if srv != nil {
			srv.Stop(context.TODO())
			srv = nil
		}
	})

	Context("dev server mode", func() {
		BeforeEach(func() {
			cfg = config.NewConfigurationWithOptionsAndDefaults(
				config.WithServer(config.Server{ServerMode: server.DevServer, HTTPPort: 18080}),
			)
		})

		It("serves over HTTP", func() {
			start()

			resp, err := http.Get(fmt.Sprintf("http://localhost:%d/api/v1/health", cfg.Server.HTTPPort))
			Expect(err).ToNot(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(200))
			resp.Body.Close()
		})

		// Given a request without a request id
		// When it reaches an API route
		// Then the response carries a generated one
		It("assigns a request id", func() {
			start()

			resp, err := http.Get(fmt.Sprintf("http://localhost:%d/api/v1/health", cfg.Server.HTTPPort))
			Expect(err).ToNot(HaveOccurred())
			Expect(resp.Header.Get(middlewares.RequestIDHeader)).ToNot(BeEmpty())
			resp.Body.Close()
		})

		It("exposes prometheus metrics at the root", func() {
			start()

			// Arrange
			resp, err := http.Get(fmt.Sprintf("http://localhost:%d/api/v1/health", cfg.Server.HTTPPort))
			Expect(err).ToNot(HaveOccurred())
			resp.Body.Close()

			// Act & Assert
			Eventually(func() string {
				resp, err := http.Get(fmt.Sprintf("http://localhost:%d/metrics", cfg.Server.HTTPPort))
				if err != nil {
					return ""
				}
				defer resp.Body.Close()
				body, _ := io.ReadAll(resp.Body)
				return string(body)
			}).Should(ContainSubstring(`action_agent_http_requests_total{method="GET",route="/api/v1/health",status="200"}`))
		})

		It("returns 404 JSON for unknown routes", func() {
			start()

			resp, err := http.Get(fmt.Sprintf("http://localhost:%d/api/v1/nonexistent", cfg.Server.HTTPPort))
			Expect(err).ToNot(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(404))
			Expect(resp.Header.Get("Content-Type")).To(ContainSubstring("application/json"))
			resp.Body.Close()
		})
	})

	Context("authentication enabled", func() {
		var secret []byte

		BeforeEach(func() {
			secret = []byte("s3cr3t")
			secretFile := filepath.Join(GinkgoT().TempDir(), "secret")
			Expect(os.WriteFile(secretFile, append(secret, '\n'), 0o600)).To(Succeed())

			cfg = config.NewConfigurationWithOptionsAndDefaults(
				config.WithServer(config.Server{ServerMode: server.DevServer, HTTPPort: 18081}),
				config.WithAuth(config.Authentication{Enabled: true, SecretFilePath: secretFile}),
			)
		})

		get := func(path, token string) int {
			req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("http://localhost:%d%s", cfg.Server.HTTPPort, path), nil)
			Expect(err).ToNot(HaveOccurred())
			if token != "" {
				req.Header.Set("Authorization", "Bearer "+token)
			}
			resp, err := http.DefaultClient.Do(req)
			Expect(err).ToNot(HaveOccurred())
			resp.Body.Close()
			return resp.StatusCode
		}

		It("rejects requests without a token", func() {
			start()
			Expect(get("/api/v1/components", "")).To(Equal(401))
		})

		It("accepts requests signed with the configured secret", func() {
			start()

			token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
				Subject:   "tester",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			}).SignedString(secret)
			Expect(err).ToNot(HaveOccurred())

			Expect(get("/api/v1/components", token)).To(Equal(200))
		})

		It("protects the metrics endpoint", func() {
			start()
			Expect(get("/metrics", "")).To(Equal(401))

			token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
				Subject:   "scraper",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			}).SignedString(secret)
			Expect(err).ToNot(HaveOccurred())
			Expect(get("/metrics", token)).To(Equal(200))
		})

		It("leaves the health endpoint open", func() {
			start()
			Expect(get("/api/v1/health", "")).To(Equal(200))
		})

		It("fails to build when the secret file is missing", func() {
			cfg.Auth.SecretFilePath = "/does/not/exist"
			_, err := server.NewServer(cfg, registerHandlerFn)
			Expect(err).To(HaveOccurred())
		})
	})

	Context("production server mode", func() {
		var client *http.Client

		BeforeEach(func() {
			cfg = config.NewConfigurationWithOptionsAndDefaults(
				config.WithServer(config.Server{ServerMode: server.ProductionServer, HTTPPort: 18443}),
			)
			client = &http.Client{
				Transport: &http.Transport{
					TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
				},
			}
		})

		It("serves over HTTPS with TLS", func() {
			start()

			resp, err := client.Get(fmt.Sprintf("https://localhost:%d/api/v1/health", cfg.Server.HTTPPort))
			Expect(err).ToNot(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(200))
			Expect(resp.TLS).ToNot(BeNil())
			resp.Body.Close()
		})

		// Given a running production server
		// When we call Stop
		// Then subsequent requests should fail
		It("stops accepting requests after Stop", func() {
			start()

			// Act
			srv.Stop(context.TODO())
			srv = nil

			// Assert
			_, err := client.Get(fmt.Sprintf("https://localhost:%d/api/v1/health", cfg.Server.HTTPPort))
			Expect(err).To(HaveOccurred())
		})
	})
})
