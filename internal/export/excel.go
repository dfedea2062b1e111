package export

import (
	"time"

	"github.com/xuri/excelize/v2"

	apperrors "github.com/spec-kit/tramites-portal/pkg/util"
)

// Document is a generated report ready to be sent to the client.
type Document struct {
	FileName    string
	ContentType string
	Bytes       []byte
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Excel renders the dataset into a one-sheet spreadsheet with the fixed
// per-column width hints. An empty dataset aborts before any workbook is
// created; an unknown dataset degrades to an empty workbook.
func Excel(d Dataset, data any, now time.Time) (*Document, error) {
	schema, rows, known := Resolve(d, data)
	if known && len(rows) == 0 {
		return nil, apperrors.NewValidationError("no hay datos para exportar", map[string]any{"dataset": string(d)})
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := sheetName(schema.Title)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"2980B9"}},
	})
	if err != nil {
		return nil, err
	}

	for col, header := range schema.Headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return nil, err
		}

		width := 15.0
		if col < len(schema.ColWidths) {
			width = schema.ColWidths[col]
		}
		colName, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheet, colName, colName, width); err != nil {
			return nil, err
		}
	}

	for i, row := range rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}

	return &Document{
		FileName:    FileName(d, now, "xlsx"),
		ContentType: xlsxContentType,
		Bytes:       buf.Bytes(),
	}, nil
}

// sheetName trims the title to the 31-char sheet name limit.
func sheetName(title string) string {
	if title == "" {
		return "Datos"
	}
	runes := []rune(title)
	if len(runes) > 31 {
		runes = runes[:31]
	}
	return string(runes)
}
