package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"preventivi/internal/domain"
)

const sheetName = "Preventivi"

// WriteXLSX writes quotes to a single-sheet workbook. Totals are stored as
// numbers so spreadsheets can sum them.
func WriteXLSX(out io.Writer, quotes []domain.QuoteSummary) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(columns))
	if err := f.SetCellStyle(sheetName, "A1", lastCol+"1", bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	money, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return fmt.Errorf("create money style: %w", err)
	}

	for i := range quotes {
		q := &quotes[i]
		row := []interface{}{
			q.Number,
			q.Subject,
			q.RecipientName,
			string(q.Status),
			q.GrossTotal,
			string(q.RecordState),
			formatTime(q.TrashedAt),
			q.CreatedAt,
			q.UpdatedAt,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	if len(quotes) > 0 {
		last := fmt.Sprintf("E%d", len(quotes)+1)
		if err := f.SetCellStyle(sheetName, "E2", last, money); err != nil {
			return fmt.Errorf("style totals: %w", err)
		}
	}

	_ = f.SetColWidth(sheetName, "A", "A", 14)
	_ = f.SetColWidth(sheetName, "B", "C", 36)
	_ = f.SetColWidth(sheetName, "D", lastCol, 18)

	if err := f.Write(out); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// Write encodes quotes in the requested format.
func Write(out io.Writer, format domain.ExportFormat, quotes []domain.QuoteSummary) error {
	switch format {
	case domain.ExportFormatCSV, "":
		return WriteCSV(out, quotes)
	case domain.ExportFormatXLSX:
		return WriteXLSX(out, quotes)
	default:
		return domain.ErrExportFormat
	}
}
