//go:build integration
// +build integration

package persistence

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MGTheTrain/shelf-export/internal/pkg/config"
	"github.com/MGTheTrain/shelf-export/internal/pkg/testutil"
)

func TestNewDBConnection_SqliteFile(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "shelf.db")

	db, err := NewDBConnection(config.DatabaseSettings{Type: config.SqliteDbType, DSN: dsn}, testutil.SetupTestLogger(t))
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	for _, table := range []string{"users", "editions", "book_authors", "user_saved_lists", "export_jobs"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	var busyTimeout int
	require.NoError(t, db.Raw("PRAGMA busy_timeout").Scan(&busyTimeout).Error)
	assert.Equal(t, sqliteBusyTimeout, busyTimeout)

	assert.NoError(t, CloseDB(db))
}

func TestNewDBConnection_SqliteMemorySingleConnection(t *testing.T) {
	db, err := NewDBConnection(config.DatabaseSettings{Type: config.SqliteDbType, DSN: ":memory:"}, testutil.SetupTestLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = CloseDB(db) })

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}

func TestNewDBConnection_UnsupportedType(t *testing.T) {
	_, err := NewDBConnection(config.DatabaseSettings{Type: "oracle", DSN: "x"}, testutil.SetupTestLogger(t))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestQuoteIdentifier(t *testing.T) {
	assert.Equal(t, `"test_db"`, quoteIdentifier("test_db"))
	assert.Equal(t, `"a""b"`, quoteIdentifier(`a"b`))
}
