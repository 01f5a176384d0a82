package export

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/propwatch/baliscrape/pkg/models"
)

// SheetResult summarizes one workbook export for callers that surface it.
type SheetResult struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	SheetName string `json:"sheet_name,omitempty"`
	Rows      int    `json:"rows,omitempty"`
}

// SaveWorkbook writes the records into the named sheet of an Excel
// workbook at path. An existing workbook is updated in place with the
// sheet's previous contents replaced; a missing workbook is created.
func SaveWorkbook(records []models.PropertyRecord, path, sheetName string) (SheetResult, error) {
	f, created, err := openWorkbook(path)
	if err != nil {
		return SheetResult{Message: err.Error()}, err
	}
	defer f.Close()

	// Replace the sheet wholesale so stale rows from a longer previous
	// run cannot survive below the new data.
	if idx, _ := f.GetSheetIndex(sheetName); idx >= 0 {
		if err := f.DeleteSheet(sheetName); err != nil {
			return SheetResult{Message: err.Error()}, fmt.Errorf("failed to reset sheet %s: %w", sheetName, err)
		}
	}
	if _, err := f.NewSheet(sheetName); err != nil {
		return SheetResult{Message: err.Error()}, fmt.Errorf("failed to create sheet %s: %w", sheetName, err)
	}
	// A fresh workbook carries a default sheet we do not want.
	if created && sheetName != "Sheet1" {
		_ = f.DeleteSheet("Sheet1")
	}

	rows := Rows(records)
	for i, row := range rows {
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = v
		}
		addr, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return SheetResult{Message: err.Error()}, fmt.Errorf("failed to compute cell address: %w", err)
		}
		if err := f.SetSheetRow(sheetName, addr, &values); err != nil {
			return SheetResult{Message: err.Error()}, fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return SheetResult{Message: err.Error()}, fmt.Errorf("failed to save workbook: %w", err)
	}

	log.Info().Str("path", path).Str("sheet", sheetName).Int("records", len(records)).
		Msg("Workbook export written")
	return SheetResult{
		Success:   true,
		Message:   fmt.Sprintf("exported %d properties to sheet %s", len(records), sheetName),
		SheetName: sheetName,
		Rows:      len(rows),
	}, nil
}

// openWorkbook opens an existing workbook or starts a new one, reporting
// which case applied.
func openWorkbook(path string) (*excelize.File, bool, error) {
	if _, err := os.Stat(path); err == nil {
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, false, fmt.Errorf("failed to open workbook: %w", err)
		}
		return f, false, nil
	}
	return excelize.NewFile(), true, nil
}
