// internal/domain/registry/record.go
package registry

import "strings"

// Record is one data row after header resolution. Row is the zero-based
// position in the table, where row 0 is the header.
type Record struct {
	Row         int
	Recipient   string
	ExpiryText  string
	SubjectID   string
	SubjectName string
	Marker5     string
	Marker1     string
}

// SheetRow is the 1-based row number a person sees in the table.
func (r Record) SheetRow() int {
	return r.Row + 1
}

// NewRecord reads the resolved fields out of a raw row. Cells beyond the end
// of a short row are treated as empty.
func NewRecord(schema Schema, row int, cells []string) Record {
	cell := func(f Field) string {
		i := schema.Column(f)
		if i < 0 || i >= len(cells) {
			return ""
		}
		return strings.TrimSpace(cells[i])
	}
	return Record{
		Row:         row,
		Recipient:   cell(FieldRecipient),
		ExpiryText:  cell(FieldExpiry),
		SubjectID:   cell(FieldSubjectID),
		SubjectName: cell(FieldSubjectName),
		Marker5:     cell(FieldMarker5),
		Marker1:     cell(FieldMarker1),
	}
}
