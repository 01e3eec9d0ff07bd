package storage

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/cardano2vn/group-signup/models"
)

// SheetsStore persists registrations in one tab of a Google Spreadsheet.
// The service account behind credentialsFile must have editor access to
// the spreadsheet.
type SheetsStore struct {
	svc           *sheets.Service
	spreadsheetID string
	sheetName     string
}

func NewSheetsStore(ctx context.Context, spreadsheetID, sheetName, credentialsFile string) (*SheetsStore, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("sheets: create client: %w", err)
	}
	return &SheetsStore{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

func (s *SheetsStore) ref(cells string) string {
	return fmt.Sprintf("%s!%s", s.sheetName, cells)
}

// Init writes the header row if the first row of the tab is empty.
func (s *SheetsStore) Init(ctx context.Context) error {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, s.ref("A1:E1")).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sheets: read header: %w", err)
	}
	if len(resp.Values) > 0 {
		return nil
	}

	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	_, err = s.svc.Spreadsheets.Values.
		Update(s.spreadsheetID, s.ref("A1:E1"), &sheets.ValueRange{Values: [][]interface{}{header}}).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sheets: write header: %w", err)
	}
	return nil
}

func (s *SheetsStore) Append(ctx context.Context, r models.Registration) error {
	row := &sheets.ValueRange{
		Values: [][]interface{}{{r.Name, r.Email, r.Phone, r.School, r.Group}},
	}
	_, err := s.svc.Spreadsheets.Values.
		Append(s.spreadsheetID, s.ref("A:E"), row).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sheets: append row: %w", err)
	}
	return nil
}

// List reads every data row below the header. Cells the API omits
// (trailing empties) come back as short rows and map to "".
func (s *SheetsStore) List(ctx context.Context) ([]models.Registration, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, s.ref("A2:E")).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("sheets: read range: %w", err)
	}

	students := make([]models.Registration, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, 0, len(raw))
		for _, v := range raw {
			row = append(row, fmt.Sprint(v))
		}
		students = append(students, rowToRegistration(row))
	}
	return students, nil
}
