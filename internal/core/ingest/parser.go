// Package ingest turns uploaded payloads into row-oriented datasets.
//
// Three formats are accepted: JSON arrays of flat records, CSV with a header
// row, and XLSX workbooks where every sheet becomes its own dataset. Values
// are sanitized to JSON-safe forms before storage and legacy column spellings
// are normalized to the canonical schema.
package ingest

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/finsight/revenue-analytics/internal/core/domain"
)

// Sheet is one parsed table with the category it was classified into.
type Sheet struct {
	Name     string
	Category domain.Category
	Rows     domain.Rows
}

// ParseFile parses payload according to the filename extension. JSON and CSV
// files yield exactly one sheet; workbooks yield one per non-empty sheet.
func ParseFile(filename string, payload []byte) ([]Sheet, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		rows, err := parseJSON(payload)
		if err != nil {
			return nil, err
		}
		return []Sheet{newSheet(filename, filename, rows)}, nil
	case ".csv":
		rows, err := parseCSV(payload)
		if err != nil {
			return nil, err
		}
		return []Sheet{newSheet(filename, filename, rows)}, nil
	case ".xlsx", ".xls":
		return parseWorkbook(filename, payload)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, filepath.Ext(filename))
	}
}

// newSheet builds a Sheet, classifying by the sheet name first and falling
// back to the filename when the sheet name matches no known category.
func newSheet(filename, sheetName string, rows domain.Rows) Sheet {
	cat := domain.ClassifyName(sheetName)
	if !cat.Known() && sheetName != filename {
		if byFile := domain.ClassifyName(filename); byFile.Known() {
			cat = byFile
		}
	}
	return Sheet{
		Name:     sheetName,
		Category: cat,
		Rows:     domain.NormalizeColumns(rows),
	}
}

func parseJSON(payload []byte) (domain.Rows, error) {
	var records []map[string]any
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, fmt.Errorf("%w: invalid json: %v", domain.ErrMalformedUpload, err)
	}
	if len(records) == 0 {
		return nil, domain.ErrEmptyUpload
	}
	rows := make(domain.Rows, len(records))
	for i, rec := range records {
		row := make(domain.Row, len(rec))
		for col, v := range rec {
			row[col] = Sanitize(v)
		}
		rows[i] = row
	}
	return rows, nil
}

func parseCSV(payload []byte) (domain.Rows, error) {
	cr := csv.NewReader(bytes.NewReader(payload))
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid csv: %v", domain.ErrMalformedUpload, err)
	}
	if len(records) < 2 {
		return nil, domain.ErrEmptyUpload
	}
	header := records[0]
	rows := make(domain.Rows, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(domain.Row, len(header))
		for i, col := range header {
			if i >= len(rec) {
				break
			}
			row[strings.TrimSpace(col)] = cellValue(rec[i])
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseWorkbook(filename string, payload []byte) ([]Sheet, error) {
	f, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid workbook: %v", domain.ErrMalformedUpload, err)
	}
	defer f.Close()

	var sheets []Sheet
	for _, name := range f.GetSheetList() {
		records, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("%w: sheet %q: %v", domain.ErrMalformedUpload, name, err)
		}
		if len(records) < 2 {
			continue
		}
		header := records[0]
		rows := make(domain.Rows, 0, len(records)-1)
		for _, rec := range records[1:] {
			row := make(domain.Row, len(header))
			for i, col := range header {
				if i >= len(rec) {
					row[strings.TrimSpace(col)] = nil
					continue
				}
				row[strings.TrimSpace(col)] = cellValue(rec[i])
			}
			rows = append(rows, row)
		}
		sheets = append(sheets, newSheet(filename, name, rows))
	}
	if len(sheets) == 0 {
		return nil, domain.ErrEmptyUpload
	}
	return sheets, nil
}

// cellValue converts a raw CSV/XLSX cell to a number when it parses as one,
// otherwise keeps the trimmed string.
func cellValue(raw string) any {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64); err == nil {
		return Sanitize(f)
	}
	return s
}

// Sanitize coerces a value to a JSON-safe form: NaN and infinities become nil,
// timestamps become RFC3339 strings, fixed-width integers widen to float64.
func Sanitize(v any) any {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return nil
		}
		return n
	case float32:
		return Sanitize(float64(n))
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		if f, err := n.Float64(); err == nil {
			return Sanitize(f)
		}
		return n.String()
	case time.Time:
		return n.UTC().Format(time.RFC3339)
	default:
		return v
	}
}
