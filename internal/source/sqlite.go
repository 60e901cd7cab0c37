package source

import (
	"database/sql"
	"fmt"
	"regexp"

	_ "github.com/mattn/go-sqlite3"
)

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLiteSource browses one table of a sqlite database in rowid order.
// Absolute row positions are zero-based offsets into that order.
type SQLiteSource struct {
	db      *sql.DB
	table   string
	headers []string
	total   int64
}

// OpenSQLite opens the database at path and prepares to browse table.
func OpenSQLite(path, table string) (*SQLiteSource, error) {
	if !identPattern.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	dsn := fmt.Sprintf("file:%s?mode=ro&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1) // sqlite
	db.SetConnMaxLifetime(0)

	s := &SQLiteSource{db: db, table: table}
	if err := s.describe(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the database handle.
func (s *SQLiteSource) Close() error {
	return s.db.Close()
}

func (s *SQLiteSource) describe() error {
	rows, err := s.db.Query(fmt.Sprintf(`SELECT * FROM "%s" LIMIT 0`, s.table))
	if err != nil {
		return fmt.Errorf("describe table %s: %w", s.table, err)
	}
	defer rows.Close()
	cols, err := rows.Columns()
	if err != nil {
		return fmt.Errorf("describe table %s: %w", s.table, err)
	}
	s.headers = cols

	if err := s.db.QueryRow(fmt.Sprintf(`SELECT COUNT(*) FROM "%s"`, s.table)).Scan(&s.total); err != nil {
		return fmt.Errorf("count table %s: %w", s.table, err)
	}
	return nil
}

// Headers returns the table's column names.
func (s *SQLiteSource) Headers() []string { return s.headers }

// TotalLines returns the exact table row count.
func (s *SQLiteSource) TotalLines() (int64, bool) { return s.total, true }

// TotalLinesApprox returns the exact count; sqlite never estimates.
func (s *SQLiteSource) TotalLinesApprox() (int64, bool) { return s.total, true }

// ReadRange materializes count rows starting at absolute offset from.
func (s *SQLiteSource) ReadRange(from int64, count int) ([]Row, error) {
	if count <= 0 {
		return nil, nil
	}
	q := fmt.Sprintf(`SELECT * FROM "%s" ORDER BY rowid LIMIT ? OFFSET ?`, s.table)
	rows, err := s.db.Query(q, count, from)
	if err != nil {
		return nil, fmt.Errorf("read range %s: %w", s.table, err)
	}
	defer rows.Close()

	out := make([]Row, 0, count)
	num := from
	for rows.Next() {
		fields, err := scanFields(rows, len(s.headers))
		if err != nil {
			return nil, fmt.Errorf("read range %s: %w", s.table, err)
		}
		out = append(out, Row{Num: num, Fields: fields})
		num++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read range %s: %w", s.table, err)
	}
	return out, nil
}

// ReadIndices materializes the rows at the given absolute positions,
// in the order given.
func (s *SQLiteSource) ReadIndices(indices []int64) ([]Row, error) {
	out := make([]Row, 0, len(indices))
	for _, idx := range indices {
		got, err := s.ReadRange(idx, 1)
		if err != nil {
			return nil, err
		}
		out = append(out, got...)
	}
	return out, nil
}

func scanFields(rows *sql.Rows, n int) ([]string, error) {
	raw := make([]sql.NullString, n)
	ptrs := make([]any, n)
	for i := range raw {
		ptrs[i] = &raw[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return nil, err
	}
	fields := make([]string, n)
	for i, v := range raw {
		if v.Valid {
			fields[i] = v.String
		}
	}
	return fields, nil
}
