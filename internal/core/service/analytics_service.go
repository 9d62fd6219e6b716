package service

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog"

	"github.com/finsight/revenue-analytics/internal/core/domain"
	"github.com/finsight/revenue-analytics/internal/core/ports"
)

const topPerformerCount = 5

// AnalyticsService computes per-category summaries over stored datasets.
// Each of the five analyses is one branch of an exhaustive dispatch; names
// not in the fixed set get the generic fallback summary.
type AnalyticsService struct {
	datasets ports.DatasetRepository
	logger   zerolog.Logger
}

func NewAnalyticsService(datasets ports.DatasetRepository, logger zerolog.Logger) *AnalyticsService {
	return &AnalyticsService{datasets: datasets, logger: logger}
}

func (s *AnalyticsService) Summarize(ctx context.Context, orgID int64, category domain.Category) (*ports.CategorySummary, error) {
	ds, err := s.datasets.Get(ctx, orgID, category)
	if err != nil {
		return nil, err
	}
	return summarize(ds.Category, ds.Rows), nil
}

func (s *AnalyticsService) SummarizeAll(ctx context.Context, orgID int64) ([]*ports.CategorySummary, error) {
	stored, err := s.datasets.Load(ctx, orgID)
	if err != nil {
		return nil, err
	}

	var summaries []*ports.CategorySummary
	for _, cat := range domain.Categories {
		if rows, ok := stored[cat]; ok {
			summaries = append(summaries, summarize(cat, rows))
			delete(stored, cat)
		}
	}
	// Ad-hoc categories last, in name order.
	extra := make([]domain.Category, 0, len(stored))
	for cat := range stored {
		extra = append(extra, cat)
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	for _, cat := range extra {
		summaries = append(summaries, summarize(cat, stored[cat]))
	}
	return summaries, nil
}

func summarize(category domain.Category, rows domain.Rows) *ports.CategorySummary {
	switch category {
	case domain.CategoryQuarterly:
		return quarterlySummary(rows)
	case domain.CategoryBridge:
		return bridgeSummary(rows)
	case domain.CategoryCountry:
		return countrySummary(rows)
	case domain.CategoryConcentration:
		return concentrationSummary(rows)
	case domain.CategoryMonthly:
		return monthlySummary(rows)
	default:
		return genericSummary(category, rows)
	}
}

func quarterlySummary(rows domain.Rows) *ports.CategorySummary {
	q3 := sumColumn(rows, domain.ColQ3Revenue)
	q4 := sumColumn(rows, domain.ColQ4Revenue)

	sum := newSummary(domain.CategoryQuarterly, rows)
	sum.Metrics = append(sum.Metrics,
		money("Q3 Revenue", q3),
		money("Q4 Revenue", q4),
	)
	if q3 != 0 {
		growth := (q4 - q3) / q3 * 100
		sum.Metrics = append(sum.Metrics, percent("QoQ Growth", growth))
	}

	// Top growth performers by variance percentage.
	ranked := append(domain.Rows(nil), rows...)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, _ := domain.Number(ranked[i][domain.ColVariancePct])
		b, _ := domain.Number(ranked[j][domain.ColVariancePct])
		return a > b
	})
	if len(ranked) > topPerformerCount {
		ranked = ranked[:topPerformerCount]
	}
	sum.TopRows = ranked
	return sum
}

func bridgeSummary(rows domain.Rows) *ports.CategorySummary {
	impactCol := domain.ColBridgeImpact
	if !rows.HasColumn(impactCol) {
		impactCol = rows.FindColumn("revenue")
	}

	sum := newSummary(domain.CategoryBridge, rows)
	var net, gain, loss float64
	var gainLabel, lossLabel string
	for _, row := range rows {
		v, ok := domain.Number(row[impactCol])
		if !ok {
			continue
		}
		net += v
		if v > gain {
			gain, gainLabel = v, domain.Text(row[domain.ColBridgeLabel])
		}
		if v < loss {
			loss, lossLabel = v, domain.Text(row[domain.ColBridgeLabel])
		}
	}
	sum.Metrics = append(sum.Metrics, money("Net Revenue Impact", net))
	if gainLabel != "" {
		m := money("Largest Gain", gain)
		m.Display = fmt.Sprintf("%s (%s)", m.Display, gainLabel)
		sum.Metrics = append(sum.Metrics, m)
	}
	if lossLabel != "" {
		m := money("Largest Loss", loss)
		m.Display = fmt.Sprintf("%s (%s)", m.Display, lossLabel)
		sum.Metrics = append(sum.Metrics, m)
	}
	return sum
}

func countrySummary(rows domain.Rows) *ports.CategorySummary {
	total := sumColumn(rows, domain.ColRevenue)

	byCountry := map[string]float64{}
	for _, row := range rows {
		if v, ok := domain.Number(row[domain.ColRevenue]); ok {
			byCountry[domain.Text(row[domain.ColCountry])] += v
		}
	}
	type kv struct {
		country string
		revenue float64
	}
	ranked := make([]kv, 0, len(byCountry))
	for c, v := range byCountry {
		ranked = append(ranked, kv{c, v})
	}
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].revenue > ranked[j].revenue })

	sum := newSummary(domain.CategoryCountry, rows)
	sum.Metrics = append(sum.Metrics,
		money("Total Revenue", total),
		count("Countries", float64(len(byCountry))),
	)
	if len(ranked) > 0 && total != 0 {
		m := percent("Top Country Share", ranked[0].revenue/total*100)
		m.Display = fmt.Sprintf("%s (%s)", m.Display, ranked[0].country)
		sum.Metrics = append(sum.Metrics, m)
	}
	top := ranked
	if len(top) > topPerformerCount {
		top = top[:topPerformerCount]
	}
	for _, entry := range top {
		sum.TopRows = append(sum.TopRows, domain.Row{
			domain.ColCountry: entry.country,
			domain.ColRevenue: entry.revenue,
		})
	}
	return sum
}

func concentrationSummary(rows domain.Rows) *ports.CategorySummary {
	shares := make([]float64, 0, len(rows))
	for _, row := range rows {
		if v, ok := domain.Number(row[domain.ColRevenueShare]); ok {
			shares = append(shares, v)
		}
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(shares)))

	topDecile := len(rows) / 10
	if topDecile < 1 {
		topDecile = 1
	}
	var concentration float64
	for i := 0; i < topDecile && i < len(shares); i++ {
		concentration += shares[i]
	}

	risk := "Low"
	switch {
	case concentration > 80:
		risk = "High"
	case concentration > 60:
		risk = "Medium"
	}

	sum := newSummary(domain.CategoryConcentration, rows)
	sum.Metrics = append(sum.Metrics,
		count("Total Customers", float64(len(rows))),
		percent("Top 10% Revenue Share", concentration),
	)
	sum.RiskLevel = risk
	return sum
}

func monthlySummary(rows domain.Rows) *ports.CategorySummary {
	sum := newSummary(domain.CategoryMonthly, rows)

	var values []float64
	for _, row := range rows {
		v, ok := domain.Number(row[domain.ColRevenue])
		if !ok {
			continue
		}
		values = append(values, v)
		sum.Trend = append(sum.Trend, ports.TrendPoint{
			Label: domain.Text(row[domain.ColMonth]),
			Value: v,
		})
	}

	var total float64
	for _, v := range values {
		total += v
	}
	sum.Metrics = append(sum.Metrics, money("Total Revenue", total))
	if len(values) > 0 {
		sum.Metrics = append(sum.Metrics,
			money("Average Monthly Revenue", total/float64(len(values))),
			money("Next Month Forecast", forecastNext(values)),
		)
	}
	sum.Anomalies = detectAnomalies(sum.Trend)
	return sum
}

func genericSummary(category domain.Category, rows domain.Rows) *ports.CategorySummary {
	sum := newSummary(category, rows)
	if col := rows.FindColumn("revenue"); col != "" {
		sum.Metrics = append(sum.Metrics, money("Total "+col, sumColumn(rows, col)))
	}
	return sum
}

func newSummary(category domain.Category, rows domain.Rows) *ports.CategorySummary {
	return &ports.CategorySummary{
		Category: category,
		Title:    category.Title(),
		RowCount: len(rows),
	}
}

// forecastNext is a naive moving-average forecast over the last three points.
func forecastNext(values []float64) float64 {
	window := 3
	if len(values) < window {
		window = len(values)
	}
	var sum float64
	for i := len(values) - window; i < len(values); i++ {
		sum += values[i]
	}
	return sum / float64(window)
}

// detectAnomalies flags trend points two or more standard deviations from the
// mean. Needs a minimum of four points to be meaningful.
func detectAnomalies(trend []ports.TrendPoint) []ports.Anomaly {
	if len(trend) < 4 {
		return nil
	}
	var sum float64
	for _, p := range trend {
		sum += p.Value
	}
	mean := sum / float64(len(trend))
	var ss float64
	for _, p := range trend {
		ss += (p.Value - mean) * (p.Value - mean)
	}
	std := math.Sqrt(ss / float64(len(trend)))
	if std == 0 {
		return nil
	}

	var out []ports.Anomaly
	for _, p := range trend {
		if z := (p.Value - mean) / std; math.Abs(z) >= 2.0 {
			out = append(out, ports.Anomaly{Label: p.Label, Value: p.Value, Z: z})
		}
	}
	return out
}

func sumColumn(rows domain.Rows, col string) float64 {
	var total float64
	for _, row := range rows {
		if v, ok := domain.Number(row[col]); ok {
			total += v
		}
	}
	return total
}

func money(name string, v float64) ports.Metric {
	return ports.Metric{Name: name, Value: v, Display: fmt.Sprintf("$%.2f", v)}
}

func percent(name string, v float64) ports.Metric {
	return ports.Metric{Name: name, Value: v, Display: fmt.Sprintf("%.1f%%", v)}
}

func count(name string, v float64) ports.Metric {
	return ports.Metric{Name: name, Value: v, Display: fmt.Sprintf("%.0f", v)}
}
