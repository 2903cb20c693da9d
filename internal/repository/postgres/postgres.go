// Package postgres stores registrations in PostgreSQL through the pgx
// database/sql driver.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/nikolay-ai/hackevent/internal/migrations"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// DB wraps the pooled handle and implements domain.Database.
type DB struct {
	SqlDB *sql.DB
}

// New connects to the database at dsn and verifies it is reachable.
func New(ctx context.Context, dsn string) (*DB, error) {
	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	db := stdlib.OpenDB(*cfg)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 8*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{SqlDB: db}, nil
}

// Migrate creates or upgrades the registrations schema.
func (d *DB) Migrate(ctx context.Context) error {
	sub, err := fs.Sub(schemaFS, "schema")
	if err != nil {
		return fmt.Errorf("open schema: %w", err)
	}
	return migrations.Run(ctx, d.SqlDB, sub, migrations.Postgres)
}

func (d *DB) Ping(ctx context.Context) error {
	return d.SqlDB.PingContext(ctx)
}

func (d *DB) Close() error {
	return d.SqlDB.Close()
}

// Registrations returns the registration repository backed by this database.
func (d *DB) Registrations() *RegistrationRepository {
	return &RegistrationRepository{db: d.SqlDB}
}
