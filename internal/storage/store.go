package storage

import (
	"context"
	"fmt"

	"github.com/cardano2vn/group-signup/config"
	"github.com/cardano2vn/group-signup/models"
)

// Header is the first row of the backing sheet. Init writes it when the
// sheet is empty; List skips it.
var Header = []string{"Name", "Email", "Phone", "School", "Group"}

// Store wraps the backing spreadsheet (or table) with the three
// operations the service needs. Every call is a single stateless
// request against the backend; there are no retries, a failed call is
// wrapped and propagated as-is.
type Store interface {
	// Init ensures the header row (or table) exists. It runs once at
	// startup; request handling is gated until it succeeds.
	Init(ctx context.Context) error
	// Append writes one registration as a new row.
	Append(ctx context.Context, r models.Registration) error
	// List returns every registration in insertion order, mapping
	// missing trailing cells to empty strings.
	List(ctx context.Context) ([]models.Registration, error)
}

// New constructs the store selected by cfg.StoreBackend. Authentication
// (Google credentials, database connection) happens here, once, at
// process start.
func New(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.StoreBackend {
	case config.BackendSheets:
		return NewSheetsStore(ctx, cfg.GoogleSheetID, cfg.SheetName, cfg.GoogleCredentialsFile)
	case config.BackendExcel:
		return NewExcelStore(cfg.ExcelFile, cfg.SheetName), nil
	case config.BackendPostgres:
		return NewPostgresStore(cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", cfg.StoreBackend)
	}
}

func rowToRegistration(row []string) models.Registration {
	cell := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}
	return models.Registration{
		Name:   cell(0),
		Email:  cell(1),
		Phone:  cell(2),
		School: cell(3),
		Group:  cell(4),
	}
}
