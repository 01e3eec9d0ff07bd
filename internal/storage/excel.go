package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/xuri/excelize/v2"

	"github.com/cardano2vn/group-signup/models"
)

// ExcelStore persists registrations in a local .xlsx file. It exists so
// the service can run without Google credentials (development, demos);
// the file layout matches the Google Sheet exactly.
type ExcelStore struct {
	mu        sync.Mutex
	path      string
	sheetName string
}

func NewExcelStore(path, sheetName string) *ExcelStore {
	return &ExcelStore{path: path, sheetName: sheetName}
}

// Init creates the workbook with a header row when the file does not
// exist yet, and repairs a missing header in an existing file.
func (s *ExcelStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ensureDir(filepath.Dir(s.path)); err != nil {
		return fmt.Errorf("excel: prepare directory: %w", err)
	}

	if !fileExists(s.path) {
		f := excelize.NewFile()
		defer f.Close()
		if err := f.SetSheetName("Sheet1", s.sheetName); err != nil {
			return fmt.Errorf("excel: rename sheet: %w", err)
		}
		if err := s.writeHeader(f); err != nil {
			return err
		}
		if err := f.SaveAs(s.path); err != nil {
			return fmt.Errorf("excel: create workbook: %w", err)
		}
		return nil
	}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return fmt.Errorf("excel: open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(s.sheetName)
	if err != nil {
		return fmt.Errorf("excel: read sheet: %w", err)
	}
	if len(rows) == 0 {
		if err := s.writeHeader(f); err != nil {
			return err
		}
		if err := f.Save(); err != nil {
			return fmt.Errorf("excel: save workbook: %w", err)
		}
	}
	return nil
}

func (s *ExcelStore) writeHeader(f *excelize.File) error {
	for i, h := range Header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(s.sheetName, cell, h); err != nil {
			return fmt.Errorf("excel: write header: %w", err)
		}
	}
	return nil
}

func (s *ExcelStore) Append(ctx context.Context, r models.Registration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return fmt.Errorf("excel: open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(s.sheetName)
	if err != nil {
		return fmt.Errorf("excel: read sheet: %w", err)
	}

	next := len(rows) + 1
	for i, v := range []string{r.Name, r.Email, r.Phone, r.School, r.Group} {
		cell, _ := excelize.CoordinatesToCellName(i+1, next)
		if err := f.SetCellValue(s.sheetName, cell, v); err != nil {
			return fmt.Errorf("excel: write row: %w", err)
		}
	}

	if err := f.Save(); err != nil {
		return fmt.Errorf("excel: save workbook: %w", err)
	}
	return nil
}

func (s *ExcelStore) List(ctx context.Context) ([]models.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("excel: open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(s.sheetName)
	if err != nil {
		return nil, fmt.Errorf("excel: read sheet: %w", err)
	}

	students := make([]models.Registration, 0)
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		students = append(students, rowToRegistration(row))
	}
	return students, nil
}

// ensureDir guarantees the directory exists. Errors if the path exists
// and is a regular file.
func ensureDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	info, err := os.Stat(path)
	if err == nil {
		if !info.IsDir() {
			return errors.New("path exists and is not a directory")
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return err
	}
	return os.MkdirAll(path, 0o755)
}

// fileExists reports whether p is an existing regular file.
func fileExists(p string) bool {
	if p == "" {
		return false
	}
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}
