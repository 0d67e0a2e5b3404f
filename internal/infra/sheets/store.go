// Package sheets reads and writes the registry kept in a Google Sheet.
package sheets

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// valuesAPI is the slice of the Sheets values API the store needs.
type valuesAPI interface {
	Get(ctx context.Context, readRange string) ([][]interface{}, error)
	Update(ctx context.Context, cellRange string, value string) error
}

// Store is a registry backed by one tab of a spreadsheet.
type Store struct {
	api       valuesAPI
	sheetName string
	readRows  int
}

// Credentials identify the service account used to access the sheet.
type Credentials struct {
	ClientEmail string
	PrivateKey  string
}

// NewStore authenticates as the service account and returns a store for
// sheetName in spreadsheet sheetID, reading the first readRows rows.
func NewStore(ctx context.Context, creds Credentials, sheetID, sheetName string, readRows int) (*Store, error) {
	conf := &jwt.Config{
		Email:      creds.ClientEmail,
		PrivateKey: []byte(creds.PrivateKey),
		Scopes:     []string{gsheets.SpreadsheetsScope},
		TokenURL:   google.JWTTokenURL,
	}
	svc, err := gsheets.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return newStore(&serviceValues{svc: svc, spreadsheetID: sheetID}, sheetName, readRows), nil
}

func newStore(api valuesAPI, sheetName string, readRows int) *Store {
	return &Store{api: api, sheetName: sheetName, readRows: readRows}
}

// FetchAllRows reads rows 1..readRows of the tab. Trailing empty cells are
// omitted by the API, so rows may be shorter than the header.
func (s *Store) FetchAllRows(ctx context.Context) ([][]string, error) {
	readRange := fmt.Sprintf("%s!1:%d", quoteSheetName(s.sheetName), s.readRows)
	values, err := s.api.Get(ctx, readRange)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", readRange, err)
	}

	rows := make([][]string, len(values))
	for i, row := range values {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = fmt.Sprint(v)
		}
		rows[i] = cells
	}
	return rows, nil
}

// WriteCell overwrites one cell. row and col are zero-based; row 0 is the header.
func (s *Store) WriteCell(ctx context.Context, row, col int, value string) error {
	cellRange := CellRange(s.sheetName, row, col)
	if err := s.api.Update(ctx, cellRange, value); err != nil {
		return fmt.Errorf("error updating %s: %w", cellRange, err)
	}
	return nil
}

// CellRange builds the A1 reference of a zero-based cell, e.g. (Sheet1, 0, 27) -> "Sheet1!AB1".
func CellRange(sheetName string, row, col int) string {
	return fmt.Sprintf("%s!%s%d", quoteSheetName(sheetName), ColumnLetters(col), row+1)
}

// quoteSheetName wraps tab names that are not plain words in single quotes, as A1 notation requires.
func quoteSheetName(name string) string {
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return "'" + strings.ReplaceAll(name, "'", "''") + "'"
		}
	}
	return name
}

// ColumnLetters converts a zero-based column index to A1 letters: 0->A, 25->Z, 26->AA.
func ColumnLetters(col int) string {
	n := col + 1
	var letters []byte
	for n > 0 {
		r := (n - 1) % 26
		letters = append([]byte{byte('A' + r)}, letters...)
		n = (n - 1) / 26
	}
	return string(letters)
}

type serviceValues struct {
	svc           *gsheets.Service
	spreadsheetID string
}

func (v *serviceValues) Get(ctx context.Context, readRange string) ([][]interface{}, error) {
	resp, err := v.svc.Spreadsheets.Values.Get(v.spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

func (v *serviceValues) Update(ctx context.Context, cellRange string, value string) error {
	body := &gsheets.ValueRange{Values: [][]interface{}{{value}}}
	_, err := v.svc.Spreadsheets.Values.Update(v.spreadsheetID, cellRange, body).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	return err
}
