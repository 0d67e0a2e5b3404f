package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var standardHeaders = []string{"Email", "Thời hạn sử dụng", "ID", "Tên GPTs", "Đã gửi trước 5 ngày", "Đã gửi trước 1 ngày"}

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases and trims", "  Email  ", "email"},
		{"collapses whitespace", "Tên \t  GPTs", "tên gpts"},
		{"strips punctuation", "*Email:*", "email"},
		{"strips brackets", "【ID】", "id"},
		{"strips parens leaving words", "ID (GPT ID)", "id gpt id"},
		{"strips square and curly", "[sent] {5d}", "sent 5d"},
		{"trailing colon after space", "Email :", "email"},
		{"decomposed diacritics compose", "Te\u0302n GPTs", "tên gpts"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeHeader(tt.in))
		})
	}
}

func TestResolve_StandardHeaders(t *testing.T) {
	schema, err := DefaultAliases().Resolve(standardHeaders)
	require.NoError(t, err)

	assert.Equal(t, 0, schema.Column(FieldRecipient))
	assert.Equal(t, 1, schema.Column(FieldExpiry))
	assert.Equal(t, 2, schema.Column(FieldSubjectID))
	assert.Equal(t, 3, schema.Column(FieldSubjectName))
	assert.Equal(t, 4, schema.Column(FieldMarker5))
	assert.Equal(t, 5, schema.Column(FieldMarker1))
}

func TestResolve_OrderIndependent(t *testing.T) {
	base, err := DefaultAliases().Resolve(standardHeaders)
	require.NoError(t, err)

	reversed := make([]string, len(standardHeaders))
	for i, h := range standardHeaders {
		reversed[len(standardHeaders)-1-i] = h
	}
	rev, err := DefaultAliases().Resolve(reversed)
	require.NoError(t, err)
	for _, f := range Fields {
		assert.Equal(t, standardHeaders[base.Column(f)], reversed[rev.Column(f)], "field %s", f)
	}

	permuted := []string{"Đã gửi trước 1 ngày", "tên gpt", "EMAIL", "Ngày hết hạn", "Đã gửi trước 5 ngày", "GPT ID"}

	schema, err := DefaultAliases().Resolve(permuted)
	require.NoError(t, err)

	assert.Equal(t, 2, schema.Column(FieldRecipient))
	assert.Equal(t, 3, schema.Column(FieldExpiry))
	assert.Equal(t, 5, schema.Column(FieldSubjectID))
	assert.Equal(t, 1, schema.Column(FieldSubjectName))
	assert.Equal(t, 4, schema.Column(FieldMarker5))
	assert.Equal(t, 0, schema.Column(FieldMarker1))
}

func TestResolve_FirstMatchingColumnWins(t *testing.T) {
	headers := append([]string{"Notes"}, standardHeaders...)
	headers = append(headers, "email")

	schema, err := DefaultAliases().Resolve(headers)
	require.NoError(t, err)
	assert.Equal(t, 1, schema.Column(FieldRecipient))
}

func TestResolve_ExactMatchOnly(t *testing.T) {
	headers := []string{"Email address", "Thời hạn sử dụng", "ID", "Tên GPTs", "Đã gửi trước 5 ngày", "Đã gửi trước 1 ngày"}

	_, err := DefaultAliases().Resolve(headers)
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, []string{"Email"}, schemaErr.Missing)
}

func TestResolve_MissingExpiry(t *testing.T) {
	headers := []string{"Email", "ID", "Tên GPTs", "Đã gửi trước 5 ngày", "Đã gửi trước 1 ngày"}

	schema, err := DefaultAliases().Resolve(headers)
	assert.Nil(t, schema)
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, []string{"Thời hạn sử dụng GPTs"}, schemaErr.Missing)
	assert.Contains(t, err.Error(), "Thời hạn sử dụng GPTs")
}

func TestResolve_ReportsEveryMissingField(t *testing.T) {
	_, err := DefaultAliases().Resolve([]string{"Email"})
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, []string{
		"Thời hạn sử dụng GPTs",
		"ID (GPT ID)",
		"Tên GPTs",
		"Đã gửi trước 5 ngày",
		"Đã gửi trước 1 ngày",
	}, schemaErr.Missing)
}

func TestNewRecord_ShortRowPadsEmpty(t *testing.T) {
	schema, err := DefaultAliases().Resolve(standardHeaders)
	require.NoError(t, err)

	rec := NewRecord(schema, 3, []string{" a@x.com ", "20/5/2025"})
	assert.Equal(t, "a@x.com", rec.Recipient)
	assert.Equal(t, "20/5/2025", rec.ExpiryText)
	assert.Empty(t, rec.SubjectID)
	assert.Empty(t, rec.Marker5)
	assert.Empty(t, rec.Marker1)
	assert.Equal(t, 4, rec.SheetRow())
}

func TestFieldByKey(t *testing.T) {
	for _, f := range Fields {
		got, ok := FieldByKey(f.Key())
		require.True(t, ok)
		assert.Equal(t, f, got)
	}
	_, ok := FieldByKey("nope")
	assert.False(t, ok)
}
