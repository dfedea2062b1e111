package export

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/spec-kit/tramites-portal/internal/domain"
	apperrors "github.com/spec-kit/tramites-portal/pkg/util"
)

var exportNow = time.Date(2023, time.November, 14, 22, 13, 20, 0, time.UTC)

func TestResolve_StaffRow(t *testing.T) {
	staff := []domain.Staff{{
		NombreCompleto:   "Ana",
		ApellidoCompleto: "Ruiz",
		Estado:           true,
		FechaCreacion:    time.Unix(1700000000, 0).UTC(),
	}}

	schema, rows, known := Resolve(DatasetFuncionarios, staff)
	if !known {
		t.Fatal("funcionarios should be a known dataset")
	}
	if len(rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(rows))
	}

	row := rows[0]
	col := func(header string) string {
		for i, h := range schema.Headers {
			if h == header {
				return row[i]
			}
		}
		t.Fatalf("Header %q not in schema", header)
		return ""
	}

	if col("Estado") != "Activo" {
		t.Errorf("Expected Estado=Activo, got %q", col("Estado"))
	}
	if got := col("Fecha Creación"); got != "14/11/2023 22:13:20" {
		t.Errorf("Unexpected Fecha Creación: %q", got)
	}
	if col("Correo") != "N/A" {
		t.Errorf("Expected missing email to render N/A, got %q", col("Correo"))
	}
}

func TestResolve_UnknownDatasetDegrades(t *testing.T) {
	schema, rows, known := Resolve(Dataset("desconocido"), []domain.Staff{{NombreCompleto: "Ana"}})
	if known {
		t.Error("Unknown dataset reported as known")
	}
	if len(schema.Headers) != 0 || len(rows) != 0 {
		t.Errorf("Expected empty schema and rows, got %v / %v", schema.Headers, rows)
	}
}

func TestResolve_FilteredVariantSharesColumns(t *testing.T) {
	base, _, _ := Resolve(DatasetTramites, []domain.Procedure{})
	filtered, _, known := Resolve(DatasetTramites.Filtered(), []domain.Procedure{})
	if !known {
		t.Fatal("Filtered variant should be known")
	}
	if len(base.Headers) != len(filtered.Headers) {
		t.Errorf("Filtered variant changed columns: %d vs %d", len(base.Headers), len(filtered.Headers))
	}
	if filtered.Title == base.Title {
		t.Errorf("Filtered variant should be titled apart, got %q", filtered.Title)
	}
}

func TestExcel_EmptyDataAborts(t *testing.T) {
	doc, err := Excel(DatasetSesiones, []domain.Session{}, exportNow)
	if doc != nil {
		t.Error("Expected no document for empty dataset")
	}
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != "VALIDATION_FAILED" {
		t.Errorf("Expected validation error, got %v", err)
	}
}

func TestPDF_EmptyDataAborts(t *testing.T) {
	doc, err := PDF(DatasetTramites, []domain.Procedure{}, exportNow)
	if doc != nil {
		t.Error("Expected no document for empty dataset")
	}
	if err == nil {
		t.Error("Expected validation error")
	}
}

func TestExcel_ProducesWorkbookAndFileName(t *testing.T) {
	users := []domain.User{{
		DisplayName: "Carlos Pérez",
		Email:       "carlos@municipio.gob",
		Role:        domain.UserRoleAdmin,
		Providers:   []string{"password", "google"},
	}}

	doc, err := Excel(DatasetUsuarios, users, exportNow)
	if err != nil {
		t.Fatalf("Excel failed: %v", err)
	}
	if doc.FileName != "usuarios_14-11-2023.xlsx" {
		t.Errorf("Unexpected filename %q", doc.FileName)
	}
	if len(doc.Bytes) == 0 {
		t.Error("Expected non-empty workbook bytes")
	}
	if doc.ContentType != xlsxContentType {
		t.Errorf("Unexpected content type %q", doc.ContentType)
	}

	wb, err := excelize.OpenReader(bytes.NewReader(doc.Bytes))
	if err != nil {
		t.Fatalf("Workbook does not open: %v", err)
	}
	defer wb.Close()

	if got, err := wb.GetCellValue("Usuarios", "A1"); err != nil || got != "Nombre" {
		t.Errorf("Expected header Nombre in A1, got %q (%v)", got, err)
	}
	if got, err := wb.GetCellValue("Usuarios", "A2"); err != nil || got != "Carlos Pérez" {
		t.Errorf("Expected first data row in A2, got %q (%v)", got, err)
	}
	if styleID, err := wb.GetCellStyle("Usuarios", "A1"); err != nil || styleID == 0 {
		t.Errorf("Expected styled header cell, got style %d (%v)", styleID, err)
	}
}

func TestPDF_ProducesDocument(t *testing.T) {
	logout := exportNow
	duration := int64(3600)
	sessions := []domain.Session{{
		DisplayName:     "María López",
		Email:           "maria@example.com",
		Provider:        "google",
		LoginTime:       exportNow.Add(-time.Hour),
		LogoutTime:      &logout,
		DurationSeconds: &duration,
	}}

	doc, err := PDF(DatasetSesiones.Filtered(), sessions, exportNow)
	if err != nil {
		t.Fatalf("PDF failed: %v", err)
	}
	if doc.FileName != "sesiones-filtrados_14-11-2023.pdf" {
		t.Errorf("Unexpected filename %q", doc.FileName)
	}
	if !strings.HasPrefix(string(doc.Bytes), "%PDF") {
		t.Error("Output does not look like a PDF document")
	}
}

func TestCapitalize(t *testing.T) {
	cases := map[string]string{
		"pendiente":  "Pendiente",
		"procesando": "Procesando",
		"":           "",
		"a":          "A",
	}
	for in, want := range cases {
		if got := capitalize(in); got != want {
			t.Errorf("capitalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSessionRow_MissingFieldsUsePlaceholders(t *testing.T) {
	sessions := []domain.Session{{Provider: "password", LoginTime: exportNow, IsActive: true}}

	schema, rows, _ := Resolve(DatasetSesiones, sessions)
	row := rows[0]
	byHeader := map[string]string{}
	for i, h := range schema.Headers {
		byHeader[h] = row[i]
	}

	if byHeader["Usuario"] != "Sin nombre" {
		t.Errorf("Expected Sin nombre, got %q", byHeader["Usuario"])
	}
	if byHeader["Cierre de sesión"] != "N/A" || byHeader["Duración (seg)"] != "N/A" {
		t.Errorf("Expected N/A for open session, got %q / %q",
			byHeader["Cierre de sesión"], byHeader["Duración (seg)"])
	}
	if byHeader["Estado"] != "Activa" {
		t.Errorf("Expected Activa, got %q", byHeader["Estado"])
	}
}
