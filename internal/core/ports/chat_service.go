package ports

import (
	"context"

	"github.com/finsight/revenue-analytics/internal/core/domain"
)

// Chat answer strategies.
const (
	StrategyRules = "rules"
	StrategyLLM   = "llm"
)

// Responder is the external text-generation collaborator. Implementations
// send the prompt to a third-party service and return its answer verbatim.
type Responder interface {
	Ask(ctx context.Context, prompt string) (string, error)
}

// AskInput is one question over a stored dataset.
type AskInput struct {
	OrgID    int64
	Category domain.Category
	Question string
}

// Answer is the responder's reply plus the strategy that produced it.
type Answer struct {
	Text     string `json:"answer"`
	Strategy string `json:"strategy"`
	Cached   bool   `json:"cached,omitempty"`
}

// ChatService answers free-text questions over a dataset snapshot. Every call
// is a pure function of (question, current rows) plus the external responder.
type ChatService interface {
	Ask(ctx context.Context, input AskInput) (*Answer, error)
}
