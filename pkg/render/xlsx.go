package render

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/rosterbot/rosterbot/pkg/export"
)

// sheetName is the single worksheet holding the roster.
const sheetName = "users"

// columns is the header row. Exact names and order are part of the
// externally visible contract.
var columns = []string{"export_date", "username", "first_name", "last_name", "bio"}

// WorkbookBytes encodes the sorted participant rows as an xlsx workbook with
// a fixed header row and one data row per participant.
func WorkbookBytes(rows []export.ParticipantRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("naming sheet: %w", err)
	}

	header := make([]interface{}, len(columns))
	for i, col := range columns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}

	for i, rec := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("addressing row %d: %w", i+2, err)
		}
		row := []interface{}{rec.ExportDate, rec.Username, rec.FirstName, rec.LastName, rec.Bio}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encoding workbook: %w", err)
	}
	return buf.Bytes(), nil
}
