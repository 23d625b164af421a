package sqlstore

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/gofrs/flock"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/postgres/*.sql migrations/sqlite3/*.sql
var migrationsFS embed.FS

// lockRetryInterval is how often a blocked migration retries the lock file.
const lockRetryInterval = 100 * time.Millisecond

// Migration commands accepted by Migrator.Run.
const (
	MigrateUp      = "up"
	MigrateDown    = "down"
	MigrateStatus  = "status"
	MigrateReset   = "reset"
	MigrateVersion = "version"
)

// MigrationStatus describes one known migration.
type MigrationStatus struct {
	Version   int64
	Source    string
	Applied   bool
	AppliedAt time.Time
}

// Migrator applies the embedded schema migrations for one dialect.
type Migrator struct {
	provider *goose.Provider
	dialect  Dialect
	lockPath string
	logger   *slog.Logger
}

// NewMigrator creates a migrator for db. dsn is only used to find the lock
// file of a SQLite database; it may be empty for in-memory databases and
// PostgreSQL.
func NewMigrator(db *sql.DB, dialect Dialect, dsn string, logger *slog.Logger) (*Migrator, error) {
	if db == nil {
		return nil, fmt.Errorf("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	fsys, err := fs.Sub(migrationsFS, "migrations/"+string(dialect))
	if err != nil {
		return nil, fmt.Errorf("failed to locate %s migrations: %w", dialect, err)
	}

	provider, err := goose.NewProvider(dialect.gooseDialect(), db, fsys)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration provider: %w", err)
	}

	m := &Migrator{
		provider: provider,
		dialect:  dialect,
		logger:   logger.With(slog.String("component", "migrations")),
	}
	if dialect == DialectSQLite {
		if path := SQLiteFilePath(dsn); path != "" {
			m.lockPath = path + ".migrate.lock"
		}
	}
	return m, nil
}

// Up applies every pending migration.
func (m *Migrator) Up(ctx context.Context) error {
	return m.withLock(ctx, func() error {
		results, err := m.provider.Up(ctx)
		for _, r := range results {
			m.logResult(r)
		}
		if err != nil {
			return fmt.Errorf("migration command 'up' failed: %w", err)
		}
		if len(results) == 0 {
			m.logger.Debug("database schema is up to date")
		}
		return nil
	})
}

// Down rolls back the most recent migration.
func (m *Migrator) Down(ctx context.Context) error {
	return m.withLock(ctx, func() error {
		result, err := m.provider.Down(ctx)
		if result != nil {
			m.logResult(result)
		}
		if err != nil {
			return fmt.Errorf("migration command 'down' failed: %w", err)
		}
		return nil
	})
}

// Reset rolls back every applied migration.
func (m *Migrator) Reset(ctx context.Context) error {
	return m.withLock(ctx, func() error {
		results, err := m.provider.DownTo(ctx, 0)
		for _, r := range results {
			m.logResult(r)
		}
		if err != nil {
			return fmt.Errorf("migration command 'reset' failed: %w", err)
		}
		return nil
	})
}

// Status lists every known migration and whether it has been applied.
func (m *Migrator) Status(ctx context.Context) ([]MigrationStatus, error) {
	statuses, err := m.provider.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("migration command 'status' failed: %w", err)
	}

	out := make([]MigrationStatus, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, MigrationStatus{
			Version:   s.Source.Version,
			Source:    s.Source.Path,
			Applied:   s.State == goose.StateApplied,
			AppliedAt: s.AppliedAt,
		})
	}
	return out, nil
}

// Version returns the current schema version, 0 for an empty database.
func (m *Migrator) Version(ctx context.Context) (int64, error) {
	v, err := m.provider.GetDBVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("migration command 'version' failed: %w", err)
	}
	return v, nil
}

// Run executes a migration command by name, logging status and version
// results instead of returning them.
func (m *Migrator) Run(ctx context.Context, command string) error {
	log := m.logger.With(slog.String("command", command))
	start := time.Now()

	var err error
	switch command {
	case MigrateUp:
		err = m.Up(ctx)
	case MigrateDown:
		err = m.Down(ctx)
	case MigrateReset:
		err = m.Reset(ctx)
	case MigrateStatus:
		var statuses []MigrationStatus
		statuses, err = m.Status(ctx)
		for _, s := range statuses {
			log.Info("migration status",
				slog.Int64("version", s.Version),
				slog.String("source", s.Source),
				slog.Bool("applied", s.Applied))
		}
	case MigrateVersion:
		var v int64
		v, err = m.Version(ctx)
		if err == nil {
			log.Info("current database migration version", slog.Int64("version", v))
		}
	default:
		return fmt.Errorf(
			"unknown migration command: %s (expected up, down, reset, status or version)",
			command,
		)
	}

	if err != nil {
		log.Error("migration command failed",
			slog.String("error", err.Error()),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()))
		return err
	}
	log.Info("migration command executed successfully",
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))
	return nil
}

// withLock runs fn while holding the SQLite lock file, if there is one.
func (m *Migrator) withLock(ctx context.Context, fn func() error) error {
	if m.lockPath == "" {
		return fn()
	}

	lock := flock.New(m.lockPath)
	locked, err := lock.TryLockContext(ctx, lockRetryInterval)
	if err != nil {
		return fmt.Errorf("failed to acquire migration lock %s: %w", m.lockPath, err)
	}
	if !locked {
		return fmt.Errorf("migration lock %s is held by another process", m.lockPath)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			m.logger.Warn("failed to release migration lock",
				slog.String("path", m.lockPath),
				slog.String("error", err.Error()))
		}
	}()

	return fn()
}

func (m *Migrator) logResult(r *goose.MigrationResult) {
	attrs := []any{
		slog.String("direction", r.Direction),
		slog.Int64("duration_ms", r.Duration.Milliseconds()),
	}
	if r.Source != nil {
		attrs = append(attrs,
			slog.Int64("version", r.Source.Version),
			slog.String("source", r.Source.Path))
	}
	if r.Error != nil {
		m.logger.Error("migration failed", append(attrs, slog.String("error", r.Error.Error()))...)
		return
	}
	m.logger.Info("migration applied", attrs...)
}
