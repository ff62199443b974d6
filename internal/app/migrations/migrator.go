package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/yigit/athena/internal/db"
	"github.com/yigit/athena/internal/pkg/logger"
)

//go:embed sql/*.sql
var embedded embed.FS

// Schema returns the migrations shipped with the binary
func Schema() fs.FS {
	sub, err := fs.Sub(embedded, "sql")
	if err != nil {
		// sql/ is embedded at compile time
		panic(err)
	}
	return sub
}

// Migrator manages database migrations
type Migrator struct {
	db    db.Querier
	files fs.FS
}

// NewMigrator creates a migrator applying the .sql files at the root of files
func NewMigrator(q db.Querier, files fs.FS) *Migrator {
	return &Migrator{
		db:    q,
		files: files,
	}
}

// Migration is one versioned SQL file
type Migration struct {
	Version string
	Name    string
}

// versionOf extracts the version from a filename ("001_init.sql" => "001")
func versionOf(name string) (string, error) {
	version, _, ok := strings.Cut(name, "_")
	if !ok || version == "" {
		return "", fmt.Errorf("migration %q: name must look like <version>_<description>.sql", name)
	}
	return version, nil
}

// List returns the migrations in files in the order they are applied
func List(files fs.FS) ([]Migration, error) {
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read migration directory: %w", err)
	}

	var migrations []Migration
	seen := map[string]string{}
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".sql" {
			continue
		}
		version, err := versionOf(entry.Name())
		if err != nil {
			return nil, err
		}
		if other, dup := seen[version]; dup {
			return nil, fmt.Errorf("migrations %q and %q share version %s", other, entry.Name(), version)
		}
		seen[version] = entry.Name()
		migrations = append(migrations, Migration{Version: version, Name: entry.Name()})
	}

	sort.Slice(migrations, func(i, j int) bool { return migrations[i].Name < migrations[j].Name })
	return migrations, nil
}

// ensureMigrationTableExists creates the migration tracking table if it doesn't exist
func (m *Migrator) ensureMigrationTableExists(ctx context.Context) error {
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version VARCHAR(255) PRIMARY KEY,
		applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`

	if _, err := m.db.Exec(ctx, createTableSQL); err != nil {
		return fmt.Errorf("failed to create migration tracking table: %w", err)
	}
	return nil
}

// isMigrationApplied checks if a specific migration has already been applied
func isMigrationApplied(ctx context.Context, q db.Querier, version string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1);`
	if err := q.QueryRow(ctx, query, version).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check migration status: %w", err)
	}
	return exists, nil
}

// Apply runs one migration and records it in the same transaction
func (m *Migrator) Apply(ctx context.Context, migration Migration) error {
	content, err := fs.ReadFile(m.files, migration.Name)
	if err != nil {
		return fmt.Errorf("failed to read migration file: %w", err)
	}

	return db.WithTransaction(ctx, m.db, func(ctx context.Context, tx pgx.Tx) error {
		applied, err := isMigrationApplied(ctx, tx, migration.Version)
		if err != nil {
			return err
		}
		if applied {
			logger.Debug().Str("migration", migration.Name).Msg("Migration already applied, skipping")
			return nil
		}

		if _, err := tx.Exec(ctx, string(content)); err != nil {
			return fmt.Errorf("error occurred during SQL migration %s: %w", migration.Name, err)
		}

		if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version, applied_at) VALUES ($1, $2)`,
			migration.Version, time.Now()); err != nil {
			return fmt.Errorf("failed to record migration: %w", err)
		}

		logger.Info().Str("migration", migration.Name).Msg("Migration successfully applied")
		return nil
	})
}

// Migrate applies every pending migration in order
func (m *Migrator) Migrate(ctx context.Context) error {
	if err := m.ensureMigrationTableExists(ctx); err != nil {
		return err
	}

	migrations, err := List(m.files)
	if err != nil {
		return err
	}

	for _, migration := range migrations {
		if err := m.Apply(ctx, migration); err != nil {
			return err
		}
	}
	return nil
}
