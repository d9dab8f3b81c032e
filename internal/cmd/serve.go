package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/FileExplorer/internal/infrastructure/config"
	"github.com/GriffinCanCode/FileExplorer/internal/infrastructure/server"
)

// NewServeCommand creates the serve subcommand
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Start the explorer HTTP server.

Configuration comes from the environment (PORT, HOST, LOG_LEVEL,
TRAVERSAL_WORKERS, RESPONSE_CACHE_TTL, ...). Flags override it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			srv, err := server.NewServer(cfg)
			if err != nil {
				return fmt.Errorf("failed to create server: %w", err)
			}
			defer srv.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx)
		},
		SilenceUsage: true,
	}

	cmd.Flags().String("port", "", "Server port (overrides PORT)")
	cmd.Flags().String("host", "", "Bind address (overrides HOST)")
	cmd.Flags().Bool("dev", false, "Development logging (colored, debug level)")
	cmd.Flags().String("log-level", "", "Log level: debug, info, warn, error")
	cmd.Flags().Int("workers", 0, "Traversal worker count (overrides TRAVERSAL_WORKERS)")

	return cmd
}

// loadConfig reads the environment and applies any flags that were set
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("port") {
		cfg.Server.Port, _ = flags.GetString("port")
	}
	if flags.Changed("host") {
		cfg.Server.Host, _ = flags.GetString("host")
	}
	if flags.Changed("dev") {
		cfg.Logging.Development, _ = flags.GetBool("dev")
		if cfg.Logging.Development && !flags.Changed("log-level") {
			cfg.Logging.Level = "debug"
		}
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("workers") {
		cfg.Traversal.Workers, _ = flags.GetInt("workers")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func withContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
