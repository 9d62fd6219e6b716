// Package metrics defines and registers all custom Prometheus metrics for the
// revenue analytics API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "revenue"

// DatasetsUploadedTotal counts stored datasets by category.
// Label:
//   - category: the classified category label (e.g. "quarterly_revenue")
var DatasetsUploadedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "datasets_uploaded_total",
		Help:      "Total number of datasets stored, by category.",
	},
	[]string{"category"},
)

// UploadErrorsTotal counts uploads that failed ingestion.
// Label:
//   - reason: short failure description (e.g. "unsupported_format", "parse_failed")
var UploadErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upload_errors_total",
		Help:      "Total number of uploads that failed ingestion.",
	},
	[]string{"reason"},
)

// ChatQuestionsTotal counts answered questions by the strategy that produced
// the answer ("rules" or "llm").
var ChatQuestionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "chat_questions_total",
		Help:      "Total number of chat questions answered, by strategy.",
	},
	[]string{"strategy"},
)

// ChatAnswerDuration measures how long answering a question takes end-to-end,
// including the external responder round-trip when the llm strategy runs.
var ChatAnswerDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "chat_answer_duration_seconds",
		Help:      "Duration of chat answering from request to response.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"strategy"},
)

// ReportsGeneratedTotal counts generated reports.
// Label:
//   - ai_summary: "true" when the executive summary came from the responder
var ReportsGeneratedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reports_generated_total",
		Help:      "Total number of analysis reports generated.",
	},
	[]string{"ai_summary"},
)
