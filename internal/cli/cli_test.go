package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pageza/recipeshare/backend/internal/models"
	"github.com/pageza/recipeshare/backend/internal/testdb"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func sqliteEnv(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recipectl.db")
	t.Setenv("ENV", "test")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", path)
	t.Setenv("LOG_LEVEL", "disabled")
	return path
}

func openSQLite(t *testing.T, path string) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func TestSQLiteWorkflow(t *testing.T) {
	path := sqliteEnv(t)

	out, err := run(t, "migrate", "up")
	require.NoError(t, err)
	assert.Contains(t, out, "schema synchronised")

	out, err = run(t, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "created 8 categories")

	out, err = run(t, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "created 0 categories and 0 ingredients")

	out, err = run(t, "create-admin", "--username", "root", "--email", "root@example.com", "--password", "Str0ng!Pass")
	require.NoError(t, err)
	assert.Contains(t, out, "created admin root")

	db := openSQLite(t, path)
	var admin models.User
	require.NoError(t, db.Where("username = ?", "root").First(&admin).Error)
	assert.True(t, admin.IsStaff)
	assert.True(t, admin.IsActive)
}

func TestSeedFromFile(t *testing.T) {
	sqliteEnv(t)
	_, err := run(t, "migrate", "up")
	require.NoError(t, err)

	_, err = run(t, "seed", "--file", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestCreateAdminRequiresFlags(t *testing.T) {
	sqliteEnv(t)

	_, err := run(t, "create-admin", "--username", "root")
	assert.Error(t, err)
}

func TestMigrateDownNeedsPostgres(t *testing.T) {
	sqliteEnv(t)

	_, err := run(t, "migrate", "down")
	assert.ErrorContains(t, err, "postgres")
}

func TestPostgresMigrations(t *testing.T) {
	pg := testdb.Postgres(t)
	cfg := pg.Config
	t.Setenv("ENV", "test")
	t.Setenv("LOG_LEVEL", "disabled")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_HOST", cfg.DBHost)
	t.Setenv("DB_PORT", cfg.DBPort)
	t.Setenv("DB_USER", cfg.DBUser)
	t.Setenv("DB_PASSWORD", cfg.DBPassword)
	t.Setenv("DB_NAME", cfg.DBName)

	out, err := run(t, "migrate", "up")
	require.NoError(t, err)
	assert.Contains(t, out, "applied 0001_init.sql")

	out, err = run(t, "migrate", "up")
	require.NoError(t, err)
	assert.Contains(t, out, "no pending migrations")

	out, err = run(t, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "created 8 categories")

	out, err = run(t, "migrate", "down")
	require.NoError(t, err)
	assert.Contains(t, out, "rolled back 0001_init.sql")

	out, err = run(t, "migrate", "down")
	require.NoError(t, err)
	assert.Contains(t, out, "no migrations to roll back")
}
