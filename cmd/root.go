package cmd

import (
	"fmt"
	"strings"

	"github.com/jzelinskie/cobrautil/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kubev2v/action-agent/internal/config"
)

const envPrefix = "AGENT"

var (
	validLogFormats = []string{"console", "json"}
	validLogLevels  = []string{"debug", "info", "warn", "error"}
)

// Execute builds the command tree and runs it.
func Execute() error {
	cfg := config.NewConfigurationWithOptionsAndDefaults()

	root := NewRootCommand(cfg)
	root.AddCommand(NewRunCommand(cfg))
	root.AddCommand(NewVersionCommand())

	return root.Execute()
}

func NewRootCommand(cfg *config.Configuration) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "action-agent",
		Short:         "Remote action agent for distributed test runs",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: cobrautil.CommandStack(
			cobrautil.SyncViperPreRunE(strings.ToLower(envPrefix)),
			func(cmd *cobra.Command, args []string) error {
				return setupLogging(cfg)
			},
		),
	}

	cmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, fmt.Sprintf("Log level: %s", strings.Join(validLogLevels, ", ")))
	cmd.PersistentFlags().StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, fmt.Sprintf("Log format: %s", strings.Join(validLogFormats, ", ")))

	return cmd
}

func setupLogging(cfg *config.Configuration) error {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log-level %q: %w", cfg.LogLevel, err)
	}

	var zcfg zap.Config
	switch cfg.LogFormat {
	case "json":
		zcfg = zap.NewProductionConfig()
	case "console":
		zcfg = zap.NewDevelopmentConfig()
	default:
		return fmt.Errorf("invalid log-format %q", cfg.LogFormat)
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zcfg.Build()
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	zap.ReplaceGlobals(logger)

	return nil
}
