package sheets

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeValues struct {
	values    [][]interface{}
	readRange string
	updates   map[string]string
	err       error
}

func (f *fakeValues) Get(_ context.Context, readRange string) ([][]interface{}, error) {
	f.readRange = readRange
	return f.values, f.err
}

func (f *fakeValues) Update(_ context.Context, cellRange string, value string) error {
	if f.err != nil {
		return f.err
	}
	if f.updates == nil {
		f.updates = map[string]string{}
	}
	f.updates[cellRange] = value
	return nil
}

func TestColumnLetters(t *testing.T) {
	tests := map[int]string{
		0:   "A",
		1:   "B",
		25:  "Z",
		26:  "AA",
		27:  "AB",
		51:  "AZ",
		52:  "BA",
		701: "ZZ",
		702: "AAA",
	}
	for col, want := range tests {
		assert.Equal(t, want, ColumnLetters(col), "col %d", col)
	}
}

func TestCellRange(t *testing.T) {
	assert.Equal(t, "Sheet1!E2", CellRange("Sheet1", 1, 4))
	assert.Equal(t, "Data!A1", CellRange("Data", 0, 0))
	assert.Equal(t, "'GPT grants'!B3", CellRange("GPT grants", 2, 1))
	assert.Equal(t, "'Bob''s'!A1", CellRange("Bob's", 0, 0))
}

func TestStore_FetchAllRows(t *testing.T) {
	api := &fakeValues{values: [][]interface{}{
		{"Email", "Thời hạn sử dụng"},
		{"a@x.com", "20/5/2025"},
		{"b@x.com"},
		{},
	}}
	store := newStore(api, "Sheet1", 10000)

	rows, err := store.FetchAllRows(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Sheet1!1:10000", api.readRange)
	assert.Equal(t, [][]string{
		{"Email", "Thời hạn sử dụng"},
		{"a@x.com", "20/5/2025"},
		{"b@x.com"},
		{},
	}, rows)
}

func TestStore_FetchAllRowsEmptySheet(t *testing.T) {
	store := newStore(&fakeValues{}, "Sheet1", 100)

	rows, err := store.FetchAllRows(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestStore_WriteCell(t *testing.T) {
	api := &fakeValues{}
	store := newStore(api, "Sheet1", 100)

	require.NoError(t, store.WriteCell(context.Background(), 1, 4, "Đã gửi"))
	assert.Equal(t, map[string]string{"Sheet1!E2": "Đã gửi"}, api.updates)
}

func TestStore_Errors(t *testing.T) {
	api := &fakeValues{err: errors.New("403 forbidden")}
	store := newStore(api, "Sheet1", 100)

	_, err := store.FetchAllRows(context.Background())
	assert.ErrorContains(t, err, "Sheet1!1:100")

	err = store.WriteCell(context.Background(), 3, 5, "")
	assert.ErrorContains(t, err, "Sheet1!F4")
}
