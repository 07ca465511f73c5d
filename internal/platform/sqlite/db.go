// Package sqlite provides the SQLite implementation of store.CardStore on
// top of the pure-Go modernc.org/sqlite driver and sqlx. It is used for local
// development and for database-backed tests that cannot rely on Docker.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/cards-api/internal/config"
	"github.com/phrazzld/cards-api/internal/platform/migrate"
	_ "modernc.org/sqlite"
)

// DriverName is the database/sql driver registered by modernc.org/sqlite.
const DriverName = "sqlite"

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrations is the embedded goose migration set for SQLite.
var Migrations = migrate.Source{Dialect: "sqlite3", FS: migrationsFS, Dir: "migrations"}

// Open opens (or creates) the database at cfg.URL with foreign keys and a
// busy timeout enabled. File databases also switch to WAL mode. An in-memory
// database is limited to one connection so every query sees the same data.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	path := strings.TrimSpace(cfg.URL)
	if path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	memory := path == MemoryPath

	db, err := sqlx.Open(DriverName, dsn(path, memory))
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	if memory {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
	} else {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime())
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	return db, nil
}

func dsn(path string, memory bool) string {
	pragmas := []string{"_pragma=foreign_keys(1)", "_pragma=busy_timeout(5000)"}
	if !memory {
		pragmas = append(pragmas, "_pragma=journal_mode(WAL)")
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + strings.Join(pragmas, "&")
}

// Migrate runs a goose command against the cards schema.
func Migrate(ctx context.Context, db *sql.DB, command string, logger *slog.Logger) error {
	return migrate.Run(ctx, db, Migrations, command, logger)
}
