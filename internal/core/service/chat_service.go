package service

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/finsight/revenue-analytics/internal/core/domain"
	"github.com/finsight/revenue-analytics/internal/core/ports"
)

// maxSampleRows caps the data excerpt forwarded to the external responder.
const maxSampleRows = 20

// AnswerCache abstracts the best-effort answer cache (Redis). Misses and
// errors both mean "compute the answer".
type AnswerCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, answer string) error
}

// ChatService answers questions over stored datasets. When a responder is
// configured it is preferred; any responder failure degrades to the rule
// strategy instead of surfacing an error.
type ChatService struct {
	datasets  ports.DatasetRepository
	responder ports.Responder // nil when no API key is configured
	cache     AnswerCache     // nil when Redis is not configured
	log       zerolog.Logger
}

func NewChatService(datasets ports.DatasetRepository, responder ports.Responder, cache AnswerCache, log zerolog.Logger) *ChatService {
	return &ChatService{datasets: datasets, responder: responder, cache: cache, log: log}
}

func (s *ChatService) Ask(ctx context.Context, input ports.AskInput) (*ports.Answer, error) {
	ds, err := s.datasets.Get(ctx, input.OrgID, input.Category)
	if err != nil {
		return nil, err
	}

	key := s.cacheKey(input)
	if cached, ok := s.cacheLookup(ctx, key); ok {
		return cached, nil
	}

	answer := &ports.Answer{Strategy: ports.StrategyRules}
	degraded := false
	if s.responder != nil {
		text, err := s.responder.Ask(ctx, s.buildPrompt(ds, input.Question))
		if err != nil {
			s.log.Warn().Err(err).
				Str("category", string(input.Category)).
				Msg("responder failed, falling back to rule strategy")
			degraded = true
		} else {
			answer = &ports.Answer{Text: strings.TrimSpace(text), Strategy: ports.StrategyLLM}
		}
	}
	if answer.Strategy == ports.StrategyRules {
		answer.Text = answerByRules(ds.Category, ds.Rows, input.Question)
	}

	// A degraded answer stays uncached so the next ask retries the responder.
	if s.cache != nil && !degraded {
		if err := s.cache.Set(ctx, key, encodeCached(answer)); err != nil {
			s.log.Warn().Err(err).Msg("answer cache store failed")
		}
	}
	return answer, nil
}

// cachedAnswer is the cache envelope. The producing strategy travels with the
// text so a hit is reported as whatever actually generated it.
type cachedAnswer struct {
	Text     string `json:"text"`
	Strategy string `json:"strategy"`
}

func (s *ChatService) cacheLookup(ctx context.Context, key string) (*ports.Answer, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Msg("answer cache lookup failed")
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var entry cachedAnswer
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		s.log.Warn().Err(err).Msg("discarding undecodable cache entry")
		return nil, false
	}
	return &ports.Answer{Text: entry.Text, Strategy: entry.Strategy, Cached: true}, true
}

func encodeCached(a *ports.Answer) string {
	b, err := json.Marshal(cachedAnswer{Text: a.Text, Strategy: a.Strategy})
	if err != nil {
		return ""
	}
	return string(b)
}

func (s *ChatService) cacheKey(input ports.AskInput) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(input.Question))))
	return fmt.Sprintf("chat:%d:%s:%x", input.OrgID, input.Category, sum[:8])
}

// buildPrompt serializes a capped sample of the dataset together with the
// analyst instruction and the user's question.
func (s *ChatService) buildPrompt(ds *domain.Dataset, question string) string {
	rows := ds.Rows
	if len(rows) > maxSampleRows {
		rows = rows[:maxSampleRows]
	}
	sample, err := json.Marshal(rows)
	if err != nil {
		sample = []byte("[]")
	}

	var b strings.Builder
	b.WriteString("You are a financial analyst assistant for an investor reviewing portfolio company data.\n")
	fmt.Fprintf(&b, "The dataset below is the %q analysis (%d of %d rows shown).\n",
		ds.Category.Title(), len(rows), len(ds.Rows))
	b.WriteString("Answer the question concisely using only this data.\n\n")
	fmt.Fprintf(&b, "Data: %s\n\nQuestion: %s", sample, question)
	return b.String()
}
