// Package insight turns cluster metrics into natural-language cost
// commentary via the Anthropic completion API. Every failure degrades to
// canned text; callers never see an error.
package insight

import (
	"context"
	"fmt"
	"time"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/kostscope/kostscope/internal/metrics"
	"github.com/kostscope/kostscope/internal/model"
)

const (
	DefaultModel   = "claude-sonnet-4-6"
	DefaultTimeout = 30 * time.Second

	maxRecommendations = 5
)

// unavailableMessage is returned when the completion API is not configured.
const unavailableMessage = "AI analysis unavailable - LLM integration not configured"

// Config holds insight service configuration.
type Config struct {
	Enabled bool
	Model   string
	Timeout time.Duration
}

// Service wraps the completion client. A nil or disabled Service is safe to
// call and answers with static fallbacks.
type Service struct {
	client  *anthropic.Client
	model   string
	enabled bool
	timeout time.Duration
}

// New creates an insight Service. The Anthropic client reads its API key
// from the environment; when the integration is disabled no client is built.
func New(cfg Config) *Service {
	if !cfg.Enabled {
		return &Service{enabled: false}
	}

	client := anthropic.NewClient()

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	return &Service{
		client:  &client,
		model:   model,
		enabled: true,
		timeout: timeout,
	}
}

// AnalyzeClusterCosts asks the completion API for a cost analysis of the
// cluster and returns the raw text verbatim. API errors are embedded in the
// returned string, never propagated.
func (s *Service) AnalyzeClusterCosts(ctx context.Context, c model.ClusterInfo) string {
	if s == nil || !s.enabled {
		metrics.InsightRequestsTotal.WithLabelValues("analysis", "fallback").Inc()
		return unavailableMessage
	}

	text, err := s.complete(ctx, buildAnalysisPrompt(c))
	if err != nil {
		metrics.InsightRequestsTotal.WithLabelValues("analysis", "error").Inc()
		return fmt.Sprintf("AI analysis error: %v", err)
	}
	metrics.InsightRequestsTotal.WithLabelValues("analysis", "ok").Inc()
	return text
}

// GenerateRecommendations asks for five numbered recommendations and parses
// them out of the free-text response. Falls back to canned recommendations
// when the API is unconfigured or returns nothing that looks like a list.
func (s *Service) GenerateRecommendations(ctx context.Context, c model.ClusterInfo) []string {
	if s == nil || !s.enabled {
		metrics.InsightRequestsTotal.WithLabelValues("recommendations", "fallback").Inc()
		return append([]string(nil), staticRecommendations...)
	}

	text, err := s.complete(ctx, buildRecommendationsPrompt(c))
	if err != nil {
		metrics.InsightRequestsTotal.WithLabelValues("recommendations", "error").Inc()
		return []string{fmt.Sprintf("AI recommendation error: %v", err)}
	}

	recs := parseNumberedList(text, maxRecommendations)
	if len(recs) == 0 {
		metrics.InsightRequestsTotal.WithLabelValues("recommendations", "fallback").Inc()
		return append([]string(nil), fallbackRecommendations...)
	}
	metrics.InsightRequestsTotal.WithLabelValues("recommendations", "ok").Inc()
	return recs
}

func (s *Service) complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	resp, err := s.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(s.model),
		MaxTokens: int64(1024),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	metrics.InsightLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		return "", err
	}
	if len(resp.Content) == 0 {
		return "", fmt.Errorf("empty response from completion API")
	}
	return resp.Content[0].Text, nil
}
