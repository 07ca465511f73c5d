// Package migrate runs embedded goose migrations against a database/sql
// connection. Each store package embeds its own migration directory and
// dialect and calls Run.
package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
)

// Supported commands.
const (
	CommandUp      = "up"
	CommandDown    = "down"
	CommandStatus  = "status"
	CommandVersion = "version"
	CommandReset   = "reset"
)

// Commands lists every command accepted by Run.
var Commands = []string{CommandUp, CommandDown, CommandStatus, CommandVersion, CommandReset}

// goose keeps its dialect, base FS and logger in package state.
var mu sync.Mutex

// Source describes a set of embedded migrations.
type Source struct {
	// Dialect is the goose dialect name, e.g. "postgres" or "sqlite3".
	Dialect string
	// FS holds the migration files under Dir.
	FS  fs.FS
	Dir string
}

// IsCommand reports whether command is supported by Run.
func IsCommand(command string) bool {
	for _, c := range Commands {
		if c == command {
			return true
		}
	}
	return false
}

// Run executes a goose command against db using the migrations in src.
func Run(ctx context.Context, db *sql.DB, src Source, command string, logger *slog.Logger) error {
	if !IsCommand(command) {
		return fmt.Errorf("unsupported migration command %q", command)
	}
	if logger == nil {
		logger = slog.Default()
	}

	log := logger.With(
		"correlation_id", uuid.NewString(),
		"component", "migrations",
		"command", command,
		"dialect", src.Dialect,
	)

	mu.Lock()
	defer mu.Unlock()

	goose.SetLogger(&slogGooseLogger{logger: log})
	goose.SetBaseFS(src.FS)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(src.Dialect); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	log.Info("Starting migration operation")
	if err := goose.RunContext(ctx, command, db, src.Dir); err != nil {
		log.Error("Migration operation failed", "error", err)
		return fmt.Errorf("migration %s failed: %w", command, err)
	}
	log.Info("Migration operation completed")
	return nil
}

// slogGooseLogger adapts the goose logger interface to slog.
type slogGooseLogger struct {
	logger *slog.Logger
}

// Printf forwards goose progress messages at INFO level.
func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

// Fatalf logs at ERROR level. It does not exit; errors are returned to the
// caller by Run.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...))
}
