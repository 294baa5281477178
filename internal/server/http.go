package server

import (
	"context"
	"crypto/rsa"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kubev2v/action-agent/internal/config"
	"github.com/kubev2v/action-agent/internal/metrics"
	"github.com/kubev2v/action-agent/internal/server/middlewares"
	"github.com/kubev2v/action-agent/pkg/certificates"
)

const (
	ProductionServer string = "prod"
	DevServer        string = "dev"
	apiV1            string = "/api/v1"
	metricsPath      string = "/metrics"
)

type Server struct {
	srv *http.Server
}

func NewServer(cfg *config.Configuration, registerHandlerFn func(router *gin.RouterGroup)) (*Server, error) {
	gin.SetMode(gin.DebugMode)
	if cfg.Server.ServerMode == ProductionServer {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()

	srv := &http.Server{
		Addr:              fmt.Sprintf("0.0.0.0:%d", cfg.Server.HTTPPort),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if cfg.Server.ServerMode == ProductionServer {
		cert, key, err := certificates.GenerateSelfSignedCertificate(time.Now().AddDate(1, 0, 0), certificateHosts()...)
		if err != nil {
			return nil, fmt.Errorf("failed to generate server's certificates: %w", err)
		}

		srv.TLSConfig = getTLSConfig(cert, key)
	}

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "endpoint not found"})
	})
	var auth []gin.HandlerFunc
	if cfg.Auth.Enabled {
		secret, err := middlewares.LoadSecret(cfg.Auth.SecretFilePath)
		if err != nil {
			return nil, err
		}
		auth = append(auth, middlewares.NewAuthenticator(secret, apiV1+"/health").Handler())
	}

	engine.GET(metricsPath, append(auth, gin.WrapH(metrics.Handler()))...)

	router := engine.Group(apiV1)

	router.Use(
		middlewares.RequestID(),
		middlewares.Logger(),
		middlewares.Metrics(),
		ginzap.RecoveryWithZap(zap.S().Desugar(), true),
	)
	router.Use(auth...)

	registerHandlerFn(router)

	return &Server{srv: srv}, nil
}

// Start starts the HTTP or HTTPS server based on TLS configuration.
// It returns nil once the server has been stopped.
func (r *Server) Start(ctx context.Context) error {
	var err error
	if r.srv.TLSConfig != nil {
		err = r.srv.ListenAndServeTLS("", "")
	} else {
		err = r.srv.ListenAndServe()
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (r *Server) Stop(ctx context.Context) {
	if err := r.srv.Shutdown(ctx); err != nil {
		zap.S().Errorw("server shutdown", "error", err)
	}
}

func getTLSConfig(cert *x509.Certificate, privateKey *rsa.PrivateKey) *tls.Config {
	return &tls.Config{
		Certificates: []tls.Certificate{{
			Certificate: [][]byte{cert.Raw},
			PrivateKey:  privateKey,
			Leaf:        cert,
		}},
		MinVersion: tls.VersionTLS12,
	}
}

func certificateHosts() []string {
	hosts := []string{"localhost", "127.0.0.1", "::1"}
	if name, err := os.Hostname(); err == nil && name != "" {
		hosts = append(hosts, name)
	}
	return hosts
}
