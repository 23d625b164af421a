package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/phrazzld/taskboard/internal/config"
	"github.com/phrazzld/taskboard/internal/platform/logger"
	"github.com/phrazzld/taskboard/internal/platform/sqlstore"
	"github.com/spf13/cobra"
)

// rootOptions holds the flags shared by every command.
type rootOptions struct {
	configPath string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "taskboard",
		Short:         "Personal taskboard: swimlanes, projects and tasks over a JSON API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "",
		"path to a YAML config file (default ./config.yaml when present)")

	root.AddCommand(
		newServeCommand(opts),
		newMigrateCommand(opts),
		newSeedCommand(opts),
		newTreeCommand(opts),
	)
	return root
}

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}
}

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate [up|down|status|reset|version]",
		Short: "Apply or inspect database schema migrations",
		Long: "Apply or inspect database schema migrations. Without an argument\n" +
			"all pending migrations are applied.",
		Args: cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{
			sqlstore.MigrateUp,
			sqlstore.MigrateDown,
			sqlstore.MigrateStatus,
			sqlstore.MigrateReset,
			sqlstore.MigrateVersion,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			command := sqlstore.MigrateUp
			if len(args) == 1 {
				command = args[0]
			}

			env, err := openEnvironment(cmd.Context(), opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer env.close()

			return runMigrate(cmd.Context(), env, command, cmd.OutOrStdout())
		},
	}
}

func newSeedCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the sample board into an empty database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApplication(cmd.Context(), opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer app.cleanup()

			seeded, err := app.boardService.InitializeSampleData(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to seed sample data: %w", err)
			}
			if seeded {
				fmt.Fprintln(cmd.OutOrStdout(), "Sample board inserted.")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Board already has swimlanes; nothing inserted.")
			}
			return nil
		},
	}
}

func newTreeCommand(opts *rootOptions) *cobra.Command {
	var flat bool
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the board hierarchy with task stats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApplication(cmd.Context(), opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer app.cleanup()

			board, err := app.boardService.GetBoard(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load board: %w", err)
			}
			if flat {
				return printTaskList(cmd.OutOrStdout(), board)
			}
			return printBoard(cmd.OutOrStdout(), board)
		},
	}
	cmd.Flags().BoolVar(&flat, "flat", false, "print one line per task instead of the outline")
	return cmd
}

func runServe(cmd *cobra.Command, opts *rootOptions) error {
	app, err := openApplication(cmd.Context(), opts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	return app.Run(cmd.Context())
}

// environment is the configuration, logger and database every command needs.
type environment struct {
	config  *config.Config
	logger  *slog.Logger
	db      *sql.DB
	dialect sqlstore.Dialect
}

// openEnvironment loads configuration, sets up logging to logOut and
// connects to the database.
func openEnvironment(ctx context.Context, opts *rootOptions, logOut io.Writer) (*environment, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.SetupWithWriter(cfg.Server, logOut)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}
	l.Info("Configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("database_driver", cfg.Database.Driver))

	db, dialect, err := sqlstore.Open(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	l.Info("Database connection established", slog.String("dialect", string(dialect)))

	return &environment{config: cfg, logger: l, db: db, dialect: dialect}, nil
}

func (env *environment) close() {
	if err := env.db.Close(); err != nil {
		env.logger.Error("Error closing database connection", slog.String("error", err.Error()))
	}
}

// openApplication opens the environment, applies migrations when
// database.auto_migrate is set and wires the services.
func openApplication(ctx context.Context, opts *rootOptions, logOut io.Writer) (*application, error) {
	env, err := openEnvironment(ctx, opts, logOut)
	if err != nil {
		return nil, err
	}

	if env.config.Database.AutoMigrate {
		if err := runMigrate(ctx, env, sqlstore.MigrateUp, io.Discard); err != nil {
			env.close()
			return nil, err
		}
	}

	app, err := newApplication(env.config, env.logger, env.db, env.dialect)
	if err != nil {
		env.close()
		return nil, fmt.Errorf("failed to initialize application: %w", err)
	}
	return app, nil
}

// runMigrate executes a migration command. status and version are also
// printed to out.
func runMigrate(ctx context.Context, env *environment, command string, out io.Writer) error {
	migrator, err := sqlstore.NewMigrator(env.db, env.dialect, env.config.Database.URL, env.logger)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	switch command {
	case sqlstore.MigrateStatus:
		statuses, err := migrator.Status(ctx)
		if err != nil {
			return fmt.Errorf("failed to read migration status: %w", err)
		}
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "VERSION\tSOURCE\tAPPLIED")
		for _, s := range statuses {
			applied := "pending"
			if s.Applied {
				applied = s.AppliedAt.UTC().Format("2006-01-02 15:04:05")
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\n", s.Version, s.Source, applied)
		}
		return tw.Flush()

	case sqlstore.MigrateVersion:
		v, err := migrator.Version(ctx)
		if err != nil {
			return fmt.Errorf("failed to read migration version: %w", err)
		}
		fmt.Fprintf(out, "%d\n", v)
		return nil

	default:
		if err := migrator.Run(ctx, command); err != nil {
			return fmt.Errorf("migration %s failed: %w", command, err)
		}
		return nil
	}
}
