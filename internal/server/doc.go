// Package server provides the HTTP server of the action agent.
//
// The server runs gin in one of two modes: development (HTTP) and production
// (HTTPS with a self-signed certificate generated at startup).
//
// # Layout
//
//	┌───────────────────────────────────────────────────────────────┐
//	│                         HTTP Server                           │
//	├───────────────────────────────────────────────────────────────┤
//	│  GET /metrics            prometheus exposition, auth if on    │
//	├───────────────────────────────────────────────────────────────┤
//	│                       Router (/api/v1)                        │
//	│  ┌─────────────────────────────────────────────────────────┐  │
//	│  │  RequestID   X-Request-ID echo or new UUID              │  │
//	│  │  Logger      access log on the "http" logger            │  │
//	│  │  Metrics     request counter and latency per route      │  │
//	│  │  Recovery    panics become 500 responses                │  │
//	│  │  Auth        HMAC JWT bearer token (when enabled)       │  │
//	│  └─────────────────────────────────────────────────────────┘  │
//	│  Handlers registered via callback                             │
//	└───────────────────────────────────────────────────────────────┘
//
// /api/v1/health stays reachable without a token.
//
// # Server Lifecycle
//
//	srv, err := server.NewServer(cfg, h.RegisterRoutes)
//	go srv.Start(ctx)       // returns nil after Stop
//	srv.Stop(shutdownCtx)   // graceful shutdown
package server
