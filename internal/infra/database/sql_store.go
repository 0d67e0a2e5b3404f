package database

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/lib/pq" // For pq.QuoteIdentifier
)

// Custom errors specific to the SQL registry store
var ErrKeyColumnNotFound = fmt.Errorf("key column not found in registry table")
var ErrCellOutOfRange = fmt.Errorf("cell position outside the last fetched snapshot")
var ErrRowNotFound = fmt.Errorf("registry row not found")

// SQLStore exposes a database table as a registry. The key column identifies
// rows but is hidden from the returned header; every other column is a cell.
// Row positions refer to the snapshot taken by the most recent FetchAllRows.
type SQLStore struct {
	db        *sql.DB
	dialect   Dialect
	table     string
	keyColumn string

	mu      sync.Mutex
	columns []string
	keys    []string // keys[i] belongs to row i; keys[0] is the header and unused
}

func NewSQLStore(db *sql.DB, dialect Dialect, table, keyColumn string) *SQLStore {
	return &SQLStore{db: db, dialect: dialect, table: table, keyColumn: keyColumn}
}

func (s *SQLStore) FetchAllRows(ctx context.Context) ([][]string, error) {
	query := fmt.Sprintf(`SELECT * FROM %s ORDER BY %s`, pq.QuoteIdentifier(s.table), pq.QuoteIdentifier(s.keyColumn))
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying registry table %s: %w", s.table, err)
	}
	defer rows.Close()

	allColumns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("error reading registry columns: %w", err)
	}

	keyIdx := -1
	var columns []string
	for i, c := range allColumns {
		if c == s.keyColumn {
			keyIdx = i
			continue
		}
		columns = append(columns, c)
	}
	if keyIdx == -1 {
		return nil, fmt.Errorf("%w: %s.%s", ErrKeyColumnNotFound, s.table, s.keyColumn)
	}

	result := [][]string{append([]string(nil), columns...)}
	keys := []string{""}

	for rows.Next() {
		values := make([]sql.NullString, len(allColumns))
		dest := make([]any, len(allColumns))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("error scanning registry row: %w", err)
		}

		cells := make([]string, 0, len(columns))
		for i, v := range values {
			if i == keyIdx {
				keys = append(keys, v.String)
				continue
			}
			cells = append(cells, v.String) // NULL reads as empty
		}
		result = append(result, cells)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating registry rows: %w", err)
	}

	s.mu.Lock()
	s.columns = columns
	s.keys = keys
	s.mu.Unlock()

	return result, nil
}

func (s *SQLStore) WriteCell(ctx context.Context, row, col int, value string) error {
	s.mu.Lock()
	if row < 1 || row >= len(s.keys) || col < 0 || col >= len(s.columns) {
		s.mu.Unlock()
		return fmt.Errorf("%w: row %d, column %d", ErrCellOutOfRange, row, col)
	}
	column, key := s.columns[col], s.keys[row]
	s.mu.Unlock()

	query := fmt.Sprintf(`UPDATE %s SET %s = %s WHERE %s = %s`,
		pq.QuoteIdentifier(s.table),
		pq.QuoteIdentifier(column), s.dialect.Placeholder(1),
		pq.QuoteIdentifier(s.keyColumn), s.dialect.Placeholder(2),
	)
	res, err := s.db.ExecContext(ctx, query, value, key)
	if err != nil {
		return fmt.Errorf("error updating %s of row %s: %w", column, key, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking update of row %s: %w", key, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s = %s", ErrRowNotFound, s.keyColumn, key)
	}
	return nil
}
