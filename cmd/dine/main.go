package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/SageDevelopmentCode/dine-web/internal/cli"
	"github.com/SageDevelopmentCode/dine-web/internal/config"
	"github.com/SageDevelopmentCode/dine-web/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// commandState is the state shared by every subcommand once flags are parsed.
type commandState struct {
	cfg    config.Config
	logger *zap.Logger
}

func newRootCommand() *cobra.Command {
	state := &commandState{}

	root := &cobra.Command{
		Use:   "dine",
		Short: "Dine serves shareable food-allergy profiles",
		Long: `Dine aggregates a user's allergy, emergency, epinephrine,
school/work/events and travel cards into one read-only profile.

Configuration comes from the environment (PORT, DB_DRIVER, DB_PATH,
DATABASE_URL, LOG_LEVEL, LOG_FORMAT, DEFAULTS_CACHE_TTL); flags override it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			cfg, err = applyFlagOverrides(cmd, cfg)
			if err != nil {
				return err
			}
			logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return err
			}
			state.cfg = cfg
			state.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if state.logger != nil {
				_ = state.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.String("db-driver", "", "database driver: sqlite or postgres")
	flags.String("db-path", "", "SQLite database file")
	flags.String("database-url", "", "PostgreSQL connection string")
	flags.String("log-level", "", "log level: debug, info, warn or error")
	flags.String("log-format", "", "log format: json or console")

	root.AddCommand(
		newServeCommand(state),
		newProfileCommand(state),
		newSeedCommand(state),
	)
	return root
}

func newServeCommand(state *commandState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the profile HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.RunServeCommand(cmd.Context(), state.cfg, state.logger)
		},
	}
	cmd.Flags().String("port", "", "listen port")
	return cmd
}

func newProfileCommand(state *commandState) *cobra.Command {
	var domain string
	cmd := &cobra.Command{
		Use:   "profile <slug>",
		Short: "Print a profile as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.RunProfileCommand(cmd.Context(), state.cfg, state.logger, cmd.OutOrStdout(), args[0], domain)
		},
	}
	cmd.Flags().StringVar(&domain, "domain", "", "only print one card: allergy, emergency, epipen, school-work-events or travel")
	return cmd
}

func newSeedCommand(state *commandState) *cobra.Command {
	var options cli.SeedOptions
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write the default reference data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.RunSeedCommand(cmd.Context(), state.cfg, state.logger, cmd.OutOrStdout(), options)
		},
	}
	cmd.Flags().BoolVar(&options.Demo, "demo", false, "also create a demo profile and print its slug")
	cmd.Flags().StringVar(&options.DisplayName, "name", "", "display name of the demo profile")
	return cmd
}

// applyFlagOverrides replaces the environment values of every flag the user
// set explicitly.
func applyFlagOverrides(cmd *cobra.Command, cfg config.Config) (config.Config, error) {
	overrides := map[string]*string{
		"db-driver":    &cfg.DBDriver,
		"db-path":      &cfg.DBPath,
		"database-url": &cfg.DatabaseURL,
		"log-level":    &cfg.LogLevel,
		"log-format":   &cfg.LogFormat,
		"port":         &cfg.Port,
	}
	changed := false
	for name, target := range overrides {
		flag := cmd.Flags().Lookup(name)
		if flag == nil || !flag.Changed {
			continue
		}
		*target = flag.Value.String()
		changed = true
	}
	if !changed {
		return cfg, nil
	}
	cfg.DBDriver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
