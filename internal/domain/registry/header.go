// internal/domain/registry/header.go
package registry

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// AliasTable maps each logical field to the header labels accepted for it.
type AliasTable map[Field][]string

// DefaultAliases covers the label variants seen in the registry sheets:
// with and without diacritics, and in either casing.
func DefaultAliases() AliasTable {
	return AliasTable{
		FieldRecipient:   {"email", "email cho phép sử dụng gpts", "địa chỉ email", "Email được phép sử dụng GPTs", "email duoc phep su dung gpts"},
		FieldExpiry:      {"thời hạn sử dụng gpts", "ngày hết hạn", "hạn sử dụng", "thoi han su dung gpts", "Thời hạn sử dụng", "han su dung"},
		FieldSubjectID:   {"id", "gpt id", "mã gpt", "GPTs ID", "ma gpt"},
		FieldSubjectName: {"tên gpts", "ten gpts", "ten gpt", "Tên GPTs", "tên gpt"},
		FieldMarker5:     {"đã gửi trước 5 ngày", "da gui truoc 5 ngay", "sent 5d", "Đã gửi trước 5 ngày", "Nhắc trước 5 ngày", "nhac 5 ngay"},
		FieldMarker1:     {"đã gửi trước 1 ngày", "da gui truoc 1 ngay", "sent 1d", "Đã gửi trước 1 ngày", "Nhắc trước 1 ngày", "nhac 1 ngay"},
	}
}

var headerStripper = strings.NewReplacer(
	":", "", "*", "", "(", "", ")", "", "[", "", "]", "", "{", "", "}", "", "【", "", "】", "",
)

// NormalizeHeader reduces a header cell to the form used for alias comparison.
// Text is NFC-composed first so a label typed with combining marks matches its precomposed alias.
func NormalizeHeader(h string) string {
	s := norm.NFC.String(h)
	s = strings.ToLower(strings.TrimSpace(s))
	s = headerStripper.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// Schema holds the resolved column position of every logical field.
type Schema map[Field]int

// Column returns the zero-based column of f.
func (s Schema) Column(f Field) int {
	return s[f]
}

// SchemaError reports the logical fields that no header cell matched.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing columns: %s", strings.Join(e.Missing, ", "))
}

// normalize precomputes the normalized alias set per field.
func (t AliasTable) normalize() map[Field]map[string]struct{} {
	out := make(map[Field]map[string]struct{}, len(t))
	for f, aliases := range t {
		set := make(map[string]struct{}, len(aliases))
		for _, a := range aliases {
			set[NormalizeHeader(a)] = struct{}{}
		}
		out[f] = set
	}
	return out
}

// Resolve maps every logical field to a column. If any field is unresolved it
// returns a *SchemaError naming all of them and no schema.
func (t AliasTable) Resolve(headers []string) (Schema, error) {
	normalizedHeaders := make([]string, len(headers))
	for i, h := range headers {
		normalizedHeaders[i] = NormalizeHeader(h)
	}
	aliasSets := t.normalize()

	schema := make(Schema, len(Fields))
	var missing []string
	for _, f := range Fields {
		idx := -1
		for i, h := range normalizedHeaders {
			if _, ok := aliasSets[f][h]; ok {
				idx = i
				break
			}
		}
		if idx == -1 {
			missing = append(missing, f.DisplayName())
			continue
		}
		schema[f] = idx
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}
	return schema, nil
}
