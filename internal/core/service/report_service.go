package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/finsight/revenue-analytics/internal/core/domain"
	"github.com/finsight/revenue-analytics/internal/core/ports"
)

const defaultReportLimit = 20

// ReportService generates, persists and retrieves analysis reports.
type ReportService struct {
	orgs      ports.OrgRepository
	analytics ports.AnalyticsService
	reports   ports.ReportRepository
	responder ports.Responder // nil when no API key is configured
	log       zerolog.Logger
}

func NewReportService(
	orgs ports.OrgRepository,
	analytics ports.AnalyticsService,
	reports ports.ReportRepository,
	responder ports.Responder,
	log zerolog.Logger,
) *ReportService {
	return &ReportService{orgs: orgs, analytics: analytics, reports: reports, responder: responder, log: log}
}

func (s *ReportService) Generate(ctx context.Context, orgID int64, createdBy string) (*ports.Report, error) {
	org, err := s.orgs.FindByID(ctx, orgID)
	if err != nil {
		return nil, err
	}

	sections, err := s.analytics.SummarizeAll(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if len(sections) == 0 {
		return nil, domain.ErrDatasetNotFound
	}

	report := &ports.Report{
		OrgID:     orgID,
		OrgName:   org.Name,
		CreatedBy: createdBy,
		Insights:  deriveInsights(sections),
		Sections:  sections,
		CreatedAt: time.Now().UTC(),
	}
	for _, sec := range sections {
		report.Categories = append(report.Categories, sec.Category)
	}

	report.Summary, report.AISummary = s.executiveSummary(ctx, org.Name, report.Insights)

	id, err := s.reports.Insert(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("persist report: %w", err)
	}
	report.ID = id

	s.log.Info().
		Str("report_id", id).
		Int64("org_id", orgID).
		Int("sections", len(sections)).
		Bool("ai_summary", report.AISummary).
		Msg("report generated")
	return report, nil
}

func (s *ReportService) List(ctx context.Context, orgID int64, limit int) ([]*ports.Report, error) {
	if limit <= 0 || limit > 100 {
		limit = defaultReportLimit
	}
	return s.reports.ListByOrg(ctx, orgID, limit)
}

func (s *ReportService) Get(ctx context.Context, id string) (*ports.Report, error) {
	return s.reports.FindByID(ctx, id)
}

// executiveSummary asks the responder for a narrative over the insights. Any
// failure, including no responder being configured, falls back to the
// deterministic summary.
func (s *ReportService) executiveSummary(ctx context.Context, orgName string, insights []string) (string, bool) {
	fallback := fmt.Sprintf("Analysis of %s across %d insight(s): %s",
		orgName, len(insights), strings.Join(insights, " "))

	if s.responder == nil {
		return fallback, false
	}

	var b strings.Builder
	b.WriteString("You write concise executive summaries for investor reports.\n")
	fmt.Fprintf(&b, "Summarize the performance of %s in 3-4 sentences, including one risk and one next step, from these findings:\n", orgName)
	for _, in := range insights {
		fmt.Fprintf(&b, "- %s\n", in)
	}

	text, err := s.responder.Ask(ctx, b.String())
	if err != nil {
		s.log.Warn().Err(err).Msg("responder failed, using deterministic summary")
		return fallback, false
	}
	return strings.TrimSpace(text), true
}

// deriveInsights flattens the headline facts of every section into sentences.
func deriveInsights(sections []*ports.CategorySummary) []string {
	var insights []string
	for _, sec := range sections {
		for _, m := range sec.Metrics {
			insights = append(insights, fmt.Sprintf("%s: %s is %s.", sec.Title, m.Name, m.Display))
		}
		if sec.RiskLevel != "" {
			insights = append(insights, fmt.Sprintf("%s: concentration risk is %s.", sec.Title, sec.RiskLevel))
		}
		for _, a := range sec.Anomalies {
			insights = append(insights, fmt.Sprintf("%s: %s is anomalous at $%.2f (z=%.2f).", sec.Title, a.Label, a.Value, a.Z))
		}
	}
	return insights
}
