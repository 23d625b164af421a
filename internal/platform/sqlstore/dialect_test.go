package sqlstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDialect(t *testing.T) {
	d, err := ParseDialect("postgres")
	require.NoError(t, err)
	assert.Equal(t, DialectPostgres, d)
	assert.Equal(t, "pgx", d.DriverName())

	d, err = ParseDialect("SQLite3")
	require.NoError(t, err)
	assert.Equal(t, DialectSQLite, d)
	assert.Equal(t, "sqlite3", d.DriverName())

	_, err = ParseDialect("mysql")
	assert.Error(t, err)
}

func TestBuilderPlaceholders(t *testing.T) {
	query, args, err := DialectPostgres.Builder().
		Select("id").From("tasks").Where("project_id = ? AND completed = ?", "p", false).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM tasks WHERE project_id = $1 AND completed = $2", query)
	assert.Len(t, args, 2)

	query, _, err = DialectSQLite.Builder().
		Select("id").From("tasks").Where("project_id = ?", "p").ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM tasks WHERE project_id = ?", query)
}

func TestSQLiteDSN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"file:taskboard.db", "file:taskboard.db?_foreign_keys=on&_busy_timeout=5000"},
		{"file:x?mode=memory&cache=shared", "file:x?mode=memory&cache=shared&_foreign_keys=on&_busy_timeout=5000"},
		{"file:x?_fk=1&_busy_timeout=100", "file:x?_fk=1&_busy_timeout=100"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SQLiteDSN(tt.in), tt.in)
	}
}

func TestSQLiteFilePath(t *testing.T) {
	assert.Equal(t, "taskboard.db", SQLiteFilePath("file:taskboard.db"))
	assert.Equal(t, "/var/lib/board.db", SQLiteFilePath("file:/var/lib/board.db?_foreign_keys=on"))
	assert.Equal(t, "board.db", SQLiteFilePath("board.db"))
	assert.Equal(t, "", SQLiteFilePath(":memory:"))
	assert.Equal(t, "", SQLiteFilePath("file:abc?mode=memory&cache=shared"))
}
