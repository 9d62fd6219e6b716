package domain

import (
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"
)

// Category identifies one of the five fixed analysis types a dataset belongs to.
type Category string

const (
	CategoryQuarterly     Category = "quarterly_revenue"
	CategoryBridge        Category = "revenue_bridge"
	CategoryCountry       Category = "country_wise"
	CategoryConcentration Category = "customer_concentration"
	CategoryMonthly       Category = "monthly_revenue"
)

// Categories lists the five known analysis types in display order.
var Categories = []Category{
	CategoryQuarterly,
	CategoryBridge,
	CategoryCountry,
	CategoryConcentration,
	CategoryMonthly,
}

// categoryKeywords drives ClassifyName. Matching is case-insensitive substring
// containment, first hit wins in the order of Categories.
var categoryKeywords = map[Category][]string{
	CategoryQuarterly:     {"quarterly", "qoq", "quarter"},
	CategoryBridge:        {"bridge", "churn"},
	CategoryCountry:       {"country", "geograph", "region"},
	CategoryConcentration: {"concentration"},
	CategoryMonthly:       {"month", "mom"},
}

// Known reports whether c is one of the five fixed categories.
func (c Category) Known() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Title returns a human-readable label, e.g. "Quarterly Revenue".
func (c Category) Title() string {
	words := strings.Split(string(c), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// ClassifyName assigns a category to a filename or sheet name. It is total:
// names that match no keyword list are slugified into an ad-hoc category so
// every input yields exactly one non-empty label.
func ClassifyName(name string) Category {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	lower := strings.ToLower(base)
	for _, cat := range Categories {
		for _, kw := range categoryKeywords[cat] {
			if strings.Contains(lower, kw) {
				return cat
			}
		}
	}
	if s := slug.Make(base); s != "" {
		return Category(s)
	}
	return Category("uncategorized")
}
