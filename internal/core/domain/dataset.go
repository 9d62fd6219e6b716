package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Row is a single record of an uploaded table. Values are JSON-safe: numbers,
// strings, bools, or nil.
type Row map[string]any

// Rows is a row-oriented table as carried through ingestion, storage and
// analytics.
type Rows []Row

// Dataset is the row-oriented table associated with one organization and one
// category. At most one dataset exists per (org, category); re-uploads replace.
type Dataset struct {
	OrgID      int64     `json:"org_id"`
	Category   Category  `json:"category"`
	Rows       Rows      `json:"rows"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Canonical column names. Uploads using legacy spellings (e.g. "Q3 Revenue")
// are normalized to these at ingestion; everything downstream assumes them.
const (
	ColCustomerName = "Customer Name"
	ColQ3Revenue    = "Quarter 3 Revenue"
	ColQ4Revenue    = "Quarter 4 Revenue"
	ColVariancePct  = "Percentage of Variance"
	ColBridgeLabel  = "Category"
	ColBridgeImpact = "Revenue Impact"
	ColCountry      = "Country"
	ColRevenue      = "Revenue"
	ColRevenueShare = "Revenue Share"
	ColMonth        = "Month"
)

// columnAliases maps lower-cased legacy column names to their canonical form.
var columnAliases = map[string]string{
	"customer":               ColCustomerName,
	"client name":            ColCustomerName,
	"q3 revenue":             ColQ3Revenue,
	"quarter3 revenue":       ColQ3Revenue,
	"q4 revenue":             ColQ4Revenue,
	"quarter4 revenue":       ColQ4Revenue,
	"variance %":             ColVariancePct,
	"variance percentage":    ColVariancePct,
	"percent variance":       ColVariancePct,
	"bridge category":        ColBridgeLabel,
	"impact":                 ColBridgeImpact,
	"country name":           ColCountry,
	"total revenue":          ColRevenue,
	"share":                  ColRevenueShare,
	"share %":                ColRevenueShare,
	"revenue share %":        ColRevenueShare,
	"customer revenue share": ColRevenueShare,
}

// NormalizeColumns renames legacy column spellings to the canonical schema.
// Columns with no alias entry are kept as-is.
func NormalizeColumns(rows Rows) Rows {
	out := make(Rows, len(rows))
	for i, row := range rows {
		normalized := make(Row, len(row))
		for col, v := range row {
			if canonical, ok := columnAliases[strings.ToLower(strings.TrimSpace(col))]; ok {
				col = canonical
			}
			normalized[col] = v
		}
		out[i] = normalized
	}
	return out
}

// FindColumn returns the first column whose name contains needle
// (case-insensitive). Empty string when no column matches.
func (r Rows) FindColumn(needle string) string {
	needle = strings.ToLower(needle)
	for _, row := range r {
		for col := range row {
			if strings.Contains(strings.ToLower(col), needle) {
				return col
			}
		}
	}
	return ""
}

// HasColumn reports whether the exact column name appears in any row.
func (r Rows) HasColumn(name string) bool {
	for _, row := range r {
		if _, ok := row[name]; ok {
			return true
		}
	}
	return false
}

// Number coerces a stored cell value back to a float64. Stringified numbers
// (the permissive save fallback) are recovered here.
func Number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(n), ",", ""), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Text coerces a stored cell value to its string form.
func Text(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
