package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	apperrors "github.com/spec-kit/tramites-portal/pkg/util"
)

const pdfContentType = "application/pdf"

// PDF renders the dataset as a landscape report: a title block with the
// generation timestamp and record count, then a table with shaded header
// and alternating row fill. Same empty/unknown dataset semantics as Excel.
func PDF(d Dataset, data any, now time.Time) (*Document, error) {
	schema, rows, known := Resolve(d, data)
	if known && len(rows) == 0 {
		return nil, apperrors.NewValidationError("no hay datos para exportar", map[string]any{"dataset": string(d)})
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(10, 12, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 9, tr(schema.Title), "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(90, 90, 90)
	subtitle := fmt.Sprintf("Generado: %s  |  Registros: %d", now.Format(timeLayout), len(rows))
	pdf.CellFormat(0, 6, tr(subtitle), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	widths := scaledWidths(schema, pdf)

	drawHeader := func() {
		pdf.SetFont("Arial", "B", 8)
		pdf.SetFillColor(41, 128, 185)
		pdf.SetTextColor(255, 255, 255)
		for col, header := range schema.Headers {
			pdf.CellFormat(widths[col], 7, tr(header), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}
	if len(schema.Headers) > 0 {
		drawHeader()
	}

	pdf.SetFont("Arial", "", 8)
	pdf.SetTextColor(0, 0, 0)
	for i, row := range rows {
		if pdf.GetY() > 190 {
			pdf.AddPage()
			drawHeader()
			pdf.SetFont("Arial", "", 8)
			pdf.SetTextColor(0, 0, 0)
		}
		shade := i%2 == 1
		pdf.SetFillColor(240, 244, 248)
		for col := range schema.Headers {
			value := ""
			if col < len(row) {
				value = row[col]
			}
			pdf.CellFormat(widths[col], 6, tr(truncate(value, 60)), "1", 0, "L", shade, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}

	return &Document{
		FileName:    FileName(d, now, "pdf"),
		ContentType: pdfContentType,
		Bytes:       buf.Bytes(),
	}, nil
}

// scaledWidths maps the column width hints onto the printable page width.
func scaledWidths(schema Schema, pdf *gofpdf.Fpdf) []float64 {
	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	usable := pageWidth - left - right

	total := 0.0
	for _, w := range schema.ColWidths {
		total += w
	}

	widths := make([]float64, len(schema.Headers))
	for i := range widths {
		hint := 15.0
		if i < len(schema.ColWidths) {
			hint = schema.ColWidths[i]
		}
		if total > 0 {
			widths[i] = usable * hint / total
		} else if len(widths) > 0 {
			widths[i] = usable / float64(len(widths))
		}
	}
	return widths
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
