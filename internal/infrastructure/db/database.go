package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/bookly/crm-saas/configs"
)

// Database owns the Postgres pool the client store runs on.
type Database struct {
	DB     *sqlx.DB
	logger *logrus.Logger
}

// Connect opens the pool with the configured limits and pings it. ctx bounds the ping, so
// startup fails fast when Postgres is unreachable.
func Connect(ctx context.Context, cfg *configs.DatabaseConfig, logger *logrus.Logger) (*Database, error) {
	dbx, err := sqlx.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		dbx.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		dbx.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		dbx.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		dbx.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}

	if err := dbx.PingContext(ctx); err != nil {
		_ = dbx.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &Database{DB: dbx, logger: logger}, nil
}

func (d *Database) Ping(ctx context.Context) error {
	return d.DB.PingContext(ctx)
}

func (d *Database) Close() error {
	return d.DB.Close()
}

// Migrate applies the pending migrations found in dir and logs the schema version moved
// from and to. A dirty schema is reported with its version and needs manual repair.
func (d *Database) Migrate(dir string) error {
	driver, err := postgres.WithInstance(d.DB.DB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migrate driver: %w", err)
	}
	m, err := migrate.NewWithDatabaseInstance("file://"+dir, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	m.Log = migrateLogger{logger: d.logger}

	from, _, _ := m.Version()
	err = m.Up()
	var dirty migrate.ErrDirty
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		d.logf(logrus.Fields{"version": from}, "database schema is up to date")
		return nil
	case errors.As(err, &dirty):
		return fmt.Errorf("database schema is dirty at version %d: %w", dirty.Version, err)
	case err != nil:
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	to, _, _ := m.Version()
	d.logf(logrus.Fields{"from": from, "to": to}, "database schema migrated")
	return nil
}

func (d *Database) logf(fields logrus.Fields, msg string) {
	if d.logger != nil {
		d.logger.WithFields(fields).Info(msg)
	}
}

// migrateLogger forwards golang-migrate's progress lines to logrus at debug level.
type migrateLogger struct {
	logger *logrus.Logger
}

func (l migrateLogger) Printf(format string, v ...interface{}) {
	if l.logger == nil {
		return
	}
	l.logger.WithField("component", "migrate").Debug(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l migrateLogger) Verbose() bool {
	return l.logger != nil && l.logger.IsLevelEnabled(logrus.DebugLevel)
}
