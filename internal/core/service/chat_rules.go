package service

import (
	"fmt"
	"strings"

	"github.com/finsight/revenue-analytics/internal/core/domain"
)

// answerByRules is the keyword strategy: a pure function of the question and
// the dataset snapshot. Each aggregate keyword pairs with a domain keyword;
// anything else falls through to the help message.
func answerByRules(category domain.Category, rows domain.Rows, question string) string {
	q := strings.ToLower(question)

	switch {
	case containsAny(q, "total", "sum") && strings.Contains(q, "revenue"):
		if col, label, ok := revenueColumn(rows); ok {
			return fmt.Sprintf("Total %s is $%.2f", label, sumColumn(rows, col))
		}

	case containsAny(q, "top", "best") && containsAny(q, "customer", "client"):
		if rows.HasColumn(domain.ColCustomerName) {
			if col, label, ok := revenueColumn(rows); ok {
				if row, v, ok := maxRow(rows, col); ok {
					return fmt.Sprintf("Top customer is %s with %s of $%.2f",
						domain.Text(row[domain.ColCustomerName]), label, v)
				}
			}
		}

	case containsAny(q, "average", "mean") && strings.Contains(q, "revenue"):
		if col, label, ok := revenueColumn(rows); ok && len(rows) > 0 {
			return fmt.Sprintf("Average %s is $%.2f", label, sumColumn(rows, col)/float64(len(rows)))
		}

	case containsAny(q, "count", "number") && containsAny(q, "customer", "client"):
		return fmt.Sprintf("There are %d customers in the data", len(rows))
	}

	return fmt.Sprintf("I can help you analyze %s data. Try asking about totals, top performers, averages, or customer counts.",
		category.Title())
}

// revenueColumn picks the column aggregates run over: "Revenue" when present,
// otherwise the Q4 column of the quarterly dataset.
func revenueColumn(rows domain.Rows) (col, label string, ok bool) {
	if rows.HasColumn(domain.ColRevenue) {
		return domain.ColRevenue, "revenue", true
	}
	if rows.HasColumn(domain.ColQ4Revenue) {
		return domain.ColQ4Revenue, "Q4 revenue", true
	}
	return "", "", false
}

// maxRow returns the row holding the maximum numeric value of col.
func maxRow(rows domain.Rows, col string) (domain.Row, float64, bool) {
	var (
		best     domain.Row
		bestV    float64
		anyFound bool
	)
	for _, row := range rows {
		v, ok := domain.Number(row[col])
		if !ok {
			continue
		}
		if !anyFound || v > bestV {
			best, bestV, anyFound = row, v, true
		}
	}
	return best, bestV, anyFound
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
