package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/go-extras/cobraflags"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kubev2v/action-agent/internal/config"
	"github.com/kubev2v/action-agent/internal/handlers"
	"github.com/kubev2v/action-agent/internal/lifecycle"
	"github.com/kubev2v/action-agent/internal/models"
	"github.com/kubev2v/action-agent/internal/registry"
	"github.com/kubev2v/action-agent/internal/server"
	"github.com/kubev2v/action-agent/internal/services"
	"github.com/kubev2v/action-agent/internal/store"
	"github.com/kubev2v/action-agent/pkg/actions"
	"github.com/kubev2v/action-agent/pkg/actions/components"
	srvErrors "github.com/kubev2v/action-agent/pkg/errors"
	"github.com/kubev2v/action-agent/pkg/scheduler"
)

const shutdownTimeout = 10 * time.Second

func NewRunCommand(cfg *config.Configuration) *cobra.Command {
	requiredFlags := map[*pflag.Flag]bool{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the agent",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			initViper()
			cobraflags.PresetRequiredFlags(envPrefix, requiredFlags, cmd)
			return validateConfiguration(cfg)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cfg)
		},
	}

	registerFlags(cmd, cfg)

	return cmd
}

func registerFlags(cmd *cobra.Command, cfg *config.Configuration) {
	flags := cmd.Flags()

	// server
	flags.IntVar(&cfg.Server.HTTPPort, "server-http-port", cfg.Server.HTTPPort, "HTTP server listen port")
	flags.StringVar(&cfg.Server.ServerMode, "server-mode", cfg.Server.ServerMode, "Server mode: prod (HTTPS) or dev (HTTP)")

	// agent
	flags.StringVar(&cfg.Agent.ID, "agent-id", cfg.Agent.ID, "Agent UUID. Generated and persisted when empty")
	flags.StringVar(&cfg.Agent.Version, "version", cfg.Agent.Version, "Agent version")
	flags.IntVar(&cfg.Agent.NumWorkers, "num-workers", cfg.Agent.NumWorkers, "Number of workers running action invocations")
	flags.StringVar(&cfg.Agent.DataFolder, "data-folder", cfg.Agent.DataFolder, "Folder of the DuckDB database. Empty means in-memory")
	flags.StringVar(&cfg.Agent.FilesystemRoot, "filesystem-root", cfg.Agent.FilesystemRoot, "Base folder of relative paths used by the filesystem component")

	// authentication
	flags.BoolVar(&cfg.Auth.Enabled, "authentication-enabled", cfg.Auth.Enabled, "Require a JWT bearer token on the API")
	flags.StringVar(&cfg.Auth.SecretFilePath, "authentication-secret-filepath", cfg.Auth.SecretFilePath, "File holding the HMAC secret used to verify tokens")
}

func initViper() {
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
}

func validateConfiguration(cfg *config.Configuration) error {
	if cfg.Agent.ID != "" {
		if _, err := uuid.Parse(cfg.Agent.ID); err != nil {
			return fmt.Errorf("agent-id must be a valid UUID: %w", err)
		}
	}

	switch cfg.Server.ServerMode {
	case server.ProductionServer, server.DevServer:
	default:
		return fmt.Errorf("invalid server mode %q: must be %q or %q", cfg.Server.ServerMode, server.ProductionServer, server.DevServer)
	}

	if cfg.Server.HTTPPort < 1 || cfg.Server.HTTPPort > 65535 {
		return fmt.Errorf("invalid http-port %d: must be between 1 and 65535", cfg.Server.HTTPPort)
	}

	if cfg.Agent.NumWorkers < 1 {
		return fmt.Errorf("invalid num-workers %d: must be greater than 0", cfg.Agent.NumWorkers)
	}

	if cfg.Auth.Enabled && cfg.Auth.SecretFilePath == "" {
		return errors.New("authentication-secret-filepath must be set when authentication is enabled")
	}

	if !slices.Contains(validLogLevels, cfg.LogLevel) {
		return fmt.Errorf("invalid log-level %q: must be one of %s", cfg.LogLevel, strings.Join(validLogLevels, ", "))
	}

	if !slices.Contains(validLogFormats, cfg.LogFormat) {
		return fmt.Errorf("invalid log-format %q: must be one of %s", cfg.LogFormat, strings.Join(validLogFormats, ", "))
	}

	return nil
}

func run(cfg *config.Configuration) error {
	log := zap.S().Named("run")
	log.Infow("starting agent", "config", cfg.DebugMap())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbPath, err := store.DBPath(cfg.Agent.DataFolder)
	if err != nil {
		return err
	}
	db, err := store.NewDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database %s: %w", dbPath, err)
	}
	st := store.NewStore(db)
	defer func() {
		if err := st.Close(); err != nil {
			log.Warnw("closing database", "error", err)
		}
	}()

	if err := st.Migrate(ctx); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}

	agentID, err := resolveAgentID(ctx, st.Configuration(), cfg.Agent.ID)
	if err != nil {
		return err
	}

	types := actions.NewTypeRegistry()
	repo := actions.NewRepository(types)
	if err := components.Register(repo, cfg.Agent.FilesystemRoot); err != nil {
		return fmt.Errorf("registering components: %w", err)
	}
	if err := handlers.RegisterValidations(types); err != nil {
		return err
	}

	sched := scheduler.NewScheduler(cfg.Agent.NumWorkers)
	defer sched.Close()

	actionSrv := services.NewActionService(registry.New(repo), repo, sched)
	eventSrv := services.NewEventService(lifecycle.NewProcessor(st.EventLog()), actionSrv)
	reportSrv := services.NewReportService(st)

	h := handlers.New(handlers.AgentInfo{
		ID:        agentID,
		Version:   cfg.Agent.Version,
		StartedAt: time.Now(),
	}, actionSrv, eventSrv, reportSrv)

	srv, err := server.NewServer(cfg, h.RegisterRoutes)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infow("listening", "port", cfg.Server.HTTPPort, "mode", cfg.Server.ServerMode, "agent_id", agentID)
		return srv.Start(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		srv.Stop(shutdownCtx)
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server: %w", err)
	}

	log.Info("agent stopped")
	return nil
}

type agentConfigurationStore interface {
	Get(ctx context.Context) (*models.Configuration, error)
	Save(ctx context.Context, cfg *models.Configuration) error
}

// resolveAgentID returns the configured id, or the persisted one, or a new one.
// The result is persisted.
func resolveAgentID(ctx context.Context, st agentConfigurationStore, configured string) (string, error) {
	id := configured
	if id == "" {
		saved, err := st.Get(ctx)
		switch {
		case err == nil:
			return saved.AgentID, nil
		case srvErrors.IsResourceNotFoundError(err):
			id = uuid.NewString()
		default:
			return "", fmt.Errorf("reading agent configuration: %w", err)
		}
	}

	if err := st.Save(ctx, &models.Configuration{AgentID: id}); err != nil {
		return "", fmt.Errorf("saving agent configuration: %w", err)
	}
	return id, nil
}
