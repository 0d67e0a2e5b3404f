// internal/domain/registry/repository.go
package registry

import "context"

// Store is the tabular registry. Row and column positions are zero-based and
// row 0 is the header row; adapters translate to their own addressing.
type Store interface {
	// FetchAllRows returns every row, header first. Rows may be shorter than the header.
	FetchAllRows(ctx context.Context) ([][]string, error)
	// WriteCell overwrites a single cell.
	WriteCell(ctx context.Context, row, col int, value string) error
}
