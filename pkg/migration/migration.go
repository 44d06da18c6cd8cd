package migration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/simx-exchange/market-feed-service/pkg/logger"
	"github.com/simx-exchange/market-feed-service/pkg/questdb"
)

// Migration is one schema change, loaded from a <id>.up.sql file with an
// optional matching <id>.down.sql.
type Migration struct {
	ID      string
	UpSQL   string
	DownSQL string
}

// Runner applies schema migrations against QuestDB, tracking what has been
// applied in a schema_migrations table.
type Runner struct {
	client       questdb.QuestDBClient
	logger       logger.Interface
	migrationDir string
}

// NewRunner creates a migration runner over a connected client.
func NewRunner(client questdb.QuestDBClient, logger logger.Interface, migrationDir string) *Runner {
	return &Runner{
		client:       client,
		logger:       logger,
		migrationDir: migrationDir,
	}
}

// EnsureMigrationTable creates the schema_migrations table if it doesn't exist.
func (r *Runner) EnsureMigrationTable(ctx context.Context) error {
	createTableSQL := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			id STRING,
			applied_at TIMESTAMP
		) TIMESTAMP(applied_at) PARTITION BY DAY;
	`
	return r.client.Exec(ctx, createTableSQL)
}

// AppliedMigrations returns the set of applied migration IDs.
func (r *Runner) AppliedMigrations(ctx context.Context) (map[string]bool, error) {
	applied := make(map[string]bool)

	rows, err := r.client.Query(ctx, "SELECT id FROM schema_migrations ORDER BY applied_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		applied[id] = true
	}

	return applied, rows.Err()
}

// LoadMigrations loads every migration from the migration directory, sorted
// by file name.
func (r *Runner) LoadMigrations() ([]Migration, error) {
	upFiles, err := filepath.Glob(filepath.Join(r.migrationDir, "*.up.sql"))
	if err != nil {
		return nil, err
	}

	sort.Strings(upFiles)

	migrations := make([]Migration, 0, len(upFiles))
	for _, upFile := range upFiles {
		upContent, err := os.ReadFile(upFile)
		if err != nil {
			return nil, err
		}

		id := strings.TrimSuffix(filepath.Base(upFile), ".up.sql")

		var downSQL string
		downFile := strings.Replace(upFile, ".up.sql", ".down.sql", 1)
		if downContent, err := os.ReadFile(downFile); err == nil {
			downSQL = strings.TrimSpace(string(downContent))
		}

		migrations = append(migrations, Migration{
			ID:      id,
			UpSQL:   strings.TrimSpace(string(upContent)),
			DownSQL: downSQL,
		})
	}

	return migrations, nil
}

// MigrateUp applies pending migrations in order. steps <= 0 applies all.
func (r *Runner) MigrateUp(ctx context.Context, steps int) error {
	if err := r.EnsureMigrationTable(ctx); err != nil {
		return err
	}

	migrations, err := r.LoadMigrations()
	if err != nil {
		return err
	}

	applied, err := r.AppliedMigrations(ctx)
	if err != nil {
		return err
	}

	var toApply []Migration
	for _, migration := range migrations {
		if !applied[migration.ID] {
			toApply = append(toApply, migration)
		}
	}

	if steps > 0 && len(toApply) > steps {
		toApply = toApply[:steps]
	}

	for _, migration := range toApply {
		r.logger.InfoContext(ctx, "applying migration", logger.Field{
			Key:   "id",
			Value: migration.ID,
		})

		if err := r.client.Exec(ctx, migration.UpSQL); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", migration.ID, err)
		}

		recordSQL := fmt.Sprintf("INSERT INTO schema_migrations VALUES ('%s', now())", migration.ID)
		if err := r.client.Exec(ctx, recordSQL); err != nil {
			return fmt.Errorf("failed to record migration %s: %w", migration.ID, err)
		}
	}

	return nil
}

// MigrateDown reverts the most recently applied migrations.
func (r *Runner) MigrateDown(ctx context.Context, steps int) error {
	if steps <= 0 {
		return fmt.Errorf("steps must be greater than 0 for down migrations")
	}

	migrations, err := r.LoadMigrations()
	if err != nil {
		return err
	}

	applied, err := r.AppliedMigrations(ctx)
	if err != nil {
		return err
	}

	var toRevert []Migration
	for i := len(migrations) - 1; i >= 0; i-- {
		migration := migrations[i]
		if applied[migration.ID] {
			toRevert = append(toRevert, migration)
			if len(toRevert) >= steps {
				break
			}
		}
	}

	for _, migration := range toRevert {
		if migration.DownSQL == "" {
			return fmt.Errorf("no down SQL for migration %s", migration.ID)
		}

		r.logger.InfoContext(ctx, "reverting migration", logger.Field{
			Key:   "id",
			Value: migration.ID,
		})

		if err := r.client.Exec(ctx, migration.DownSQL); err != nil {
			return fmt.Errorf("failed to revert migration %s: %w", migration.ID, err)
		}

		removeSQL := fmt.Sprintf("DELETE FROM schema_migrations WHERE id = '%s'", migration.ID)
		if err := r.client.Exec(ctx, removeSQL); err != nil {
			return fmt.Errorf("failed to remove migration record %s: %w", migration.ID, err)
		}
	}

	return nil
}
