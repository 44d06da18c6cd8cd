package migration

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/simx-exchange/market-feed-service/pkg/logger"
	"github.com/simx-exchange/market-feed-service/pkg/questdb/mock"
)

func writeMigration(t *testing.T, dir, id, up, down string) {
	t.Helper()

	require.NoError(t, os.WriteFile(filepath.Join(dir, id+".up.sql"), []byte(up), 0o644))
	if down != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, id+".down.sql"), []byte(down), 0o644))
	}
}

func emptyAppliedRows(ctrl *gomock.Controller) *mock.MockRowsInterface {
	rows := mock.NewMockRowsInterface(ctrl)
	rows.EXPECT().Next().Return(false)
	rows.EXPECT().Err().Return(nil)
	rows.EXPECT().Close()

	return rows
}

func TestRunner_LoadMigrationsSortsByID(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "002_add_index", "CREATE INDEX;", "")
	writeMigration(t, dir, "001_create_ticks", "CREATE TABLE ticks;", "DROP TABLE ticks;")

	runner := NewRunner(nil, logger.NewNop(), dir)

	migrations, err := runner.LoadMigrations()
	require.NoError(t, err)
	require.Len(t, migrations, 2)
	assert.Equal(t, "001_create_ticks", migrations[0].ID)
	assert.Equal(t, "CREATE TABLE ticks;", migrations[0].UpSQL)
	assert.Equal(t, "DROP TABLE ticks;", migrations[0].DownSQL)
	assert.Equal(t, "002_add_index", migrations[1].ID)
	assert.Empty(t, migrations[1].DownSQL)
}

func TestRunner_MigrateUpAppliesPendingInOrder(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "001_create_ticks", "CREATE TABLE ticks;", "")
	writeMigration(t, dir, "002_add_index", "CREATE INDEX;", "")

	ctrl := gomock.NewController(t)
	client := mock.NewMockQuestDBClient(ctrl)

	gomock.InOrder(
		client.EXPECT().Exec(gomock.Any(), gomock.Any()).Return(nil), // schema_migrations
		client.EXPECT().Query(gomock.Any(), gomock.Any()).Return(emptyAppliedRows(ctrl), nil),
		client.EXPECT().Exec(gomock.Any(), "CREATE TABLE ticks;").Return(nil),
		client.EXPECT().Exec(gomock.Any(), "INSERT INTO schema_migrations VALUES ('001_create_ticks', now())").Return(nil),
		client.EXPECT().Exec(gomock.Any(), "CREATE INDEX;").Return(nil),
		client.EXPECT().Exec(gomock.Any(), "INSERT INTO schema_migrations VALUES ('002_add_index', now())").Return(nil),
	)

	runner := NewRunner(client, logger.NewNop(), dir)
	require.NoError(t, runner.MigrateUp(context.Background(), 0))
}

func TestRunner_MigrateUpSkipsAppliedMigrations(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "001_create_ticks", "CREATE TABLE ticks;", "")
	writeMigration(t, dir, "002_add_index", "CREATE INDEX;", "")

	ctrl := gomock.NewController(t)
	client := mock.NewMockQuestDBClient(ctrl)

	rows := mock.NewMockRowsInterface(ctrl)
	gomock.InOrder(
		rows.EXPECT().Next().Return(true),
		rows.EXPECT().Scan(gomock.Any()).DoAndReturn(func(dest ...any) error {
			*(dest[0].(*string)) = "001_create_ticks"
			return nil
		}),
		rows.EXPECT().Next().Return(false),
		rows.EXPECT().Err().Return(nil),
	)
	rows.EXPECT().Close()

	gomock.InOrder(
		client.EXPECT().Exec(gomock.Any(), gomock.Any()).Return(nil),
		client.EXPECT().Query(gomock.Any(), gomock.Any()).Return(rows, nil),
		client.EXPECT().Exec(gomock.Any(), "CREATE INDEX;").Return(nil),
		client.EXPECT().Exec(gomock.Any(), "INSERT INTO schema_migrations VALUES ('002_add_index', now())").Return(nil),
	)

	runner := NewRunner(client, logger.NewNop(), dir)
	require.NoError(t, runner.MigrateUp(context.Background(), 0))
}

func TestRunner_MigrateDownRequiresDownSQL(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "001_create_ticks", "CREATE TABLE ticks;", "")

	ctrl := gomock.NewController(t)
	client := mock.NewMockQuestDBClient(ctrl)

	rows := mock.NewMockRowsInterface(ctrl)
	gomock.InOrder(
		rows.EXPECT().Next().Return(true),
		rows.EXPECT().Scan(gomock.Any()).DoAndReturn(func(dest ...any) error {
			*(dest[0].(*string)) = "001_create_ticks"
			return nil
		}),
		rows.EXPECT().Next().Return(false),
		rows.EXPECT().Err().Return(nil),
	)
	rows.EXPECT().Close()
	client.EXPECT().Query(gomock.Any(), gomock.Any()).Return(rows, nil)

	runner := NewRunner(client, logger.NewNop(), dir)
	err := runner.MigrateDown(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no down SQL")
}
