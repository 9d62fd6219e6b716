package ingest

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/finsight/revenue-analytics/internal/core/domain"
)

func TestParseFile_JSON(t *testing.T) {
	payload := []byte(`[{"Month":"Jan","Revenue":100},{"Month":"Feb","Revenue":120.5}]`)

	sheets, err := ParseFile("monthly_revenue.json", payload)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if len(sheets) != 1 {
		t.Fatalf("expected 1 sheet, got %d", len(sheets))
	}
	sheet := sheets[0]
	if sheet.Category != domain.CategoryMonthly {
		t.Fatalf("category = %q, want %q", sheet.Category, domain.CategoryMonthly)
	}
	if len(sheet.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(sheet.Rows))
	}
	if v, ok := domain.Number(sheet.Rows[0][domain.ColRevenue]); !ok || v != 100 {
		t.Fatalf("Revenue = %v", sheet.Rows[0][domain.ColRevenue])
	}
}

func TestParseFile_CSV(t *testing.T) {
	payload := []byte("Customer Name,Q3 Revenue,Q4 Revenue\nAcme,100,150\nGlobex,\"1,000\",900\n")

	sheets, err := ParseFile("Quarterly Revenue.csv", payload)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	sheet := sheets[0]
	if sheet.Category != domain.CategoryQuarterly {
		t.Fatalf("category = %q", sheet.Category)
	}
	if len(sheet.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(sheet.Rows))
	}
	// Legacy headers are normalized to the canonical schema.
	if v, ok := domain.Number(sheet.Rows[0][domain.ColQ3Revenue]); !ok || v != 100 {
		t.Fatalf("Q3 = %v", sheet.Rows[0][domain.ColQ3Revenue])
	}
	// Thousands separators parse as numbers.
	if v, ok := domain.Number(sheet.Rows[1][domain.ColQ3Revenue]); !ok || v != 1000 {
		t.Fatalf("Q3 row 2 = %v", sheet.Rows[1][domain.ColQ3Revenue])
	}
	if sheet.Rows[1][domain.ColCustomerName] != "Globex" {
		t.Fatalf("customer = %v", sheet.Rows[1][domain.ColCustomerName])
	}
}

func TestParseFile_Workbook(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	const sheetName = "Monthly Revenue"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		t.Fatalf("rename sheet: %v", err)
	}
	cells := [][]any{
		{"Month", "Revenue"},
		{"Jan", 100},
		{"Feb", 130},
	}
	for i, rec := range cells {
		for j, v := range rec {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+1)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	sheets, err := ParseFile("upload.xlsx", buf.Bytes())
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if len(sheets) != 1 {
		t.Fatalf("expected 1 sheet, got %d", len(sheets))
	}
	sheet := sheets[0]
	if sheet.Category != domain.CategoryMonthly {
		t.Fatalf("category = %q", sheet.Category)
	}
	if len(sheet.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(sheet.Rows))
	}
	if v, ok := domain.Number(sheet.Rows[1][domain.ColRevenue]); !ok || v != 130 {
		t.Fatalf("Revenue = %v", sheet.Rows[1][domain.ColRevenue])
	}
}

func TestParseFile_UnsupportedFormat(t *testing.T) {
	if _, err := ParseFile("report.pdf", []byte("%PDF")); !errors.Is(err, domain.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestParseFile_MalformedUploads(t *testing.T) {
	cases := []struct {
		name     string
		filename string
		payload  string
	}{
		{"truncated json", "data.json", `{this is not json`},
		{"ragged csv", "data.csv", "Month,Revenue\nJan,100,extra\nFeb"},
		{"corrupt workbook", "data.xlsx", "not a zip archive"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseFile(tc.filename, []byte(tc.payload)); !errors.Is(err, domain.ErrMalformedUpload) {
				t.Fatalf("expected ErrMalformedUpload, got %v", err)
			}
		})
	}
}

func TestParseFile_EmptyUploads(t *testing.T) {
	if _, err := ParseFile("data.json", []byte(`[]`)); !errors.Is(err, domain.ErrEmptyUpload) {
		t.Fatalf("empty json: expected ErrEmptyUpload, got %v", err)
	}
	if _, err := ParseFile("data.csv", []byte("Month,Revenue\n")); !errors.Is(err, domain.ErrEmptyUpload) {
		t.Fatalf("header-only csv: expected ErrEmptyUpload, got %v", err)
	}
}

func TestSanitize(t *testing.T) {
	if Sanitize(math.NaN()) != nil {
		t.Errorf("NaN should sanitize to nil")
	}
	if Sanitize(math.Inf(1)) != nil {
		t.Errorf("Inf should sanitize to nil")
	}
	if v := Sanitize(int64(5)); v != float64(5) {
		t.Errorf("int64 should widen to float64, got %T", v)
	}
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	if v := Sanitize(ts); v != "2026-03-01T12:00:00Z" {
		t.Errorf("time should format as RFC3339, got %v", v)
	}
}
