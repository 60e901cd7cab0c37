package source

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTestDB(t *testing.T, n int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE items (id INTEGER, name TEXT, amount TEXT)`)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		_, err = db.Exec(`INSERT INTO items (id, name, amount) VALUES (?, ?, ?)`,
			i+1, fmt.Sprintf("name-%d", i), fmt.Sprintf("%d.00", (i+1)*10))
		require.NoError(t, err)
	}
	return path
}

func openSQLite(t *testing.T, path, table string) *SQLiteSource {
	t.Helper()
	s, err := OpenSQLite(path, table)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpenSQLiteDescribesTable(t *testing.T) {
	t.Parallel()

	s := openSQLite(t, writeTestDB(t, 5), "items")
	require.Equal(t, []string{"id", "name", "amount"}, s.Headers())

	total, ok := s.TotalLines()
	require.True(t, ok)
	require.EqualValues(t, 5, total)

	approx, ok := s.TotalLinesApprox()
	require.True(t, ok)
	require.EqualValues(t, 5, approx)
}

func TestOpenSQLiteRejectsBadTableNames(t *testing.T) {
	t.Parallel()

	path := writeTestDB(t, 1)
	_, err := OpenSQLite(path, "items; DROP TABLE items")
	require.Error(t, err)

	_, err = OpenSQLite(path, "no_such_table")
	require.Error(t, err)
}

func TestSQLiteReadRange(t *testing.T) {
	t.Parallel()

	s := openSQLite(t, writeTestDB(t, 5), "items")

	rows, err := s.ReadRange(1, 2)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.EqualValues(t, 1, rows[0].Num)
	require.Equal(t, []string{"2", "name-1", "20.00"}, rows[0].Fields)
	require.Equal(t, []string{"3", "name-2", "30.00"}, rows[1].Fields)

	// past the end: empty, not an error
	rows, err = s.ReadRange(100, 2)
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestSQLiteReadIndicesPreservesOrder(t *testing.T) {
	t.Parallel()

	s := openSQLite(t, writeTestDB(t, 5), "items")

	rows, err := s.ReadIndices([]int64{3, 0})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.EqualValues(t, 3, rows[0].Num)
	require.EqualValues(t, 0, rows[1].Num)

	rows, err = s.ReadIndices([]int64{1, 500})
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestSQLiteNullsReadAsEmpty(t *testing.T) {
	t.Parallel()

	path := writeTestDB(t, 1)
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO items (id, name, amount) VALUES (2, NULL, NULL)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	s := openSQLite(t, path, "items")
	rows, err := s.ReadRange(1, 1)
	require.NoError(t, err)
	require.Equal(t, []string{"2", "", ""}, rows[0].Fields)
}
