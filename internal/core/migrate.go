// AngelaMos | 2026
// migrate.go

package core

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

var ErrNoMigrations = errors.New("no migrations to roll back")

type Migration struct {
	Version int
	Name    string
	Up      string
	Down    string
}

// LoadMigrations reads the embedded NNNN_name_{up,down}.sql pairs sorted
// by version. A version missing either half is an error.
func LoadMigrations() ([]Migration, error) {
	entries, err := migrationFiles.ReadDir("migrations")
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}

	byVersion := make(map[int]*Migration)

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".sql") {
			continue
		}

		base := strings.TrimSuffix(name, ".sql")
		prefix, rest, ok := strings.Cut(base, "_")
		if !ok {
			continue
		}

		version, err := strconv.Atoi(prefix)
		if err != nil {
			continue
		}

		content, err := migrationFiles.ReadFile(path.Join("migrations", name))
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}

		m, exists := byVersion[version]
		if !exists {
			m = &Migration{Version: version}
			byVersion[version] = m
		}

		switch {
		case strings.HasSuffix(rest, "_up"):
			m.Name = strings.TrimSuffix(rest, "_up")
			m.Up = string(content)
		case strings.HasSuffix(rest, "_down"):
			m.Down = string(content)
		}
	}

	migrations := make([]Migration, 0, len(byVersion))
	for _, m := range byVersion {
		if m.Up == "" || m.Down == "" {
			return nil, fmt.Errorf("incomplete migration %d", m.Version)
		}
		migrations = append(migrations, *m)
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	return migrations, nil
}

// Migrate applies every pending migration, each in its own transaction,
// and returns how many were applied.
func Migrate(ctx context.Context, db *sqlx.DB) (int, error) {
	migrations, err := LoadMigrations()
	if err != nil {
		return 0, err
	}

	current, err := MigrationVersion(ctx, db)
	if err != nil {
		return 0, err
	}

	applied := 0
	for _, m := range migrations {
		if m.Version <= current {
			continue
		}

		err := InTx(ctx, db, func(tx *sqlx.Tx) error {
			if err := execScript(ctx, tx, m.Up); err != nil {
				return err
			}
			_, err := tx.ExecContext(ctx,
				tx.Rebind(`INSERT INTO schema_migrations (version, name) VALUES (?, ?)`),
				m.Version, m.Name,
			)
			return err
		})
		if err != nil {
			return applied, fmt.Errorf("apply migration %d: %w", m.Version, err)
		}
		applied++
	}

	return applied, nil
}

// Rollback reverts the most recently applied migration and returns its
// version.
func Rollback(ctx context.Context, db *sqlx.DB) (int, error) {
	migrations, err := LoadMigrations()
	if err != nil {
		return 0, err
	}

	current, err := MigrationVersion(ctx, db)
	if err != nil {
		return 0, err
	}
	if current == 0 {
		return 0, ErrNoMigrations
	}

	for _, m := range migrations {
		if m.Version != current {
			continue
		}

		err := InTx(ctx, db, func(tx *sqlx.Tx) error {
			if err := execScript(ctx, tx, m.Down); err != nil {
				return err
			}
			_, err := tx.ExecContext(ctx,
				tx.Rebind(`DELETE FROM schema_migrations WHERE version = ?`),
				m.Version,
			)
			return err
		})
		if err != nil {
			return 0, fmt.Errorf("rollback migration %d: %w", m.Version, err)
		}
		return m.Version, nil
	}

	return 0, fmt.Errorf("migration %d is applied but unknown", current)
}

// MigrationVersion returns the highest applied version, or 0 on a fresh
// database.
func MigrationVersion(ctx context.Context, db *sqlx.DB) (int, error) {
	if err := ensureMigrationsTable(ctx, db); err != nil {
		return 0, err
	}

	var version int
	err := db.GetContext(ctx, &version,
		`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`)
	if err != nil {
		return 0, fmt.Errorf("read migration version: %w", err)
	}
	return version, nil
}

func ensureMigrationsTable(ctx context.Context, db *sqlx.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    INTEGER PRIMARY KEY,
			name       VARCHAR(255) NOT NULL,
			applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`

	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}
	return nil
}

func execScript(ctx context.Context, tx *sqlx.Tx, script string) error {
	for _, stmt := range strings.Split(script, ";") {
		stmt = strings.TrimSpace(stripComments(stmt))
		if stmt == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec %q: %w", firstLine(stmt), err)
		}
	}
	return nil
}

func stripComments(stmt string) string {
	lines := strings.Split(stmt, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
