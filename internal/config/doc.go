// Package config defines the configuration structure of the action agent.
//
// Configuration is organized into sections (Server, Agent, Authentication) and
// uses optgen to generate functional option helpers.
//
// # Configuration Structure
//
//	Configuration
//	├── Server         - HTTP server settings
//	├── Agent          - Agent identity, workers and storage
//	├── Auth           - Authentication settings
//	├── LogFormat      - Logging format ("console" or "json")
//	└── LogLevel       - Logging verbosity
//
// # Server Configuration
//
//	┌──────────────────┬─────────┬────────────────────────────────────────┐
//	│ Field            │ Default │ Description                            │
//	├──────────────────┼─────────┼────────────────────────────────────────┤
//	│ ServerMode       │ "dev"   │ "prod" (HTTPS, self-signed) or "dev"   │
//	│ HTTPPort         │ 8089    │ HTTP server listen port                │
//	└──────────────────┴─────────┴────────────────────────────────────────┘
//
// # Agent Configuration
//
//	┌─────────────────┬──────────┬──────────────────────────────────────────┐
//	│ Field           │ Default  │ Description                              │
//	├─────────────────┼──────────┼──────────────────────────────────────────┤
//	│ ID              │ ""       │ Agent UUID, generated and persisted      │
//	│                 │          │ when empty                               │
//	│ Version         │ "v0.0.0" │ Agent version string                     │
//	│ NumWorkers      │ 10       │ Workers running action invocations       │
//	│ DataFolder      │ ""       │ DuckDB folder, empty means in-memory     │
//	│ FilesystemRoot  │ ""       │ Base of relative paths used by the       │
//	│                 │          │ filesystem component                     │
//	└─────────────────┴──────────┴──────────────────────────────────────────┘
//
// # Authentication Configuration
//
//	┌────────────────┬─────────┬─────────────────────────────────────────┐
//	│ Field          │ Default │ Description                             │
//	├────────────────┼─────────┼─────────────────────────────────────────┤
//	│ Enabled        │ false   │ Require a JWT bearer token on /api/v1   │
//	│ SecretFilePath │ ""      │ File holding the HMAC signing secret    │
//	└────────────────┴─────────┴─────────────────────────────────────────┘
//
// # Code Generation
//
//	//go:generate go run github.com/ecordell/optgen -output zz_generated.configuration.go . Configuration Server Agent Authentication
//
// Generated helpers include NewConfigurationWithOptionsAndDefaults, the With*
// options of every section and DebugMap.
//
// # Debug Logging
//
// SecretFilePath is tagged `debugmap:"hidden"`, every other field is visible:
//
//	zap.S().Infow("configuration loaded", "config", cfg.DebugMap())
package config
