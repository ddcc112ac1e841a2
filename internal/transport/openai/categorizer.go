package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/waqarniyazi/aiportalx/internal/domain"
	"github.com/waqarniyazi/aiportalx/internal/metrics"
)

const systemPrompt = "You label AI models with the tasks they perform. " +
	"Answer with a JSON array of strings and nothing else. " +
	"When a list of allowed tasks is given, use only those exact strings. " +
	"Answer [] when no task applies."

// maxAbstract bounds the abstract sent to the provider, in bytes.
const maxAbstract = 4000

// Categorizer labels models through an OpenAI-compatible chat completion API.
type Categorizer struct {
	client   *openai.Client
	model    string
	provider string
	logger   *zap.Logger
}

// Config holds the categorizer provider settings.
type Config struct {
	APIKey   string
	BaseURL  string
	Model    string
	Provider string
	Logger   *zap.Logger
}

// NewCategorizer creates an OpenAI-compatible categorizer.
func NewCategorizer(cfg *Config) *Categorizer {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Categorizer{
		client:   openai.NewClientWithConfig(clientCfg),
		model:    cfg.Model,
		provider: cfg.Provider,
		logger:   logger,
	}
}

// Categorize implements domain.Categorizer. The answer is parsed as a JSON
// array of strings; restricting it to the vocabulary is left to
// domain.VocabularyCategorizer.
func (c *Categorizer) Categorize(
	ctx context.Context, name, abstract string, vocabulary []string,
) ([]string, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt(name, abstract, vocabulary)},
		},
	}

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, req)
	metrics.CategorizerRequestDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.CategorizerRequestsTotal.WithLabelValues("error").Inc()
		return nil, parseAPIError(err)
	}
	if len(resp.Choices) == 0 {
		metrics.CategorizerRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("empty completion: %w", domain.ErrCategorizerUnavailable)
	}

	labels, err := parseLabels(resp.Choices[0].Message.Content)
	if err != nil {
		metrics.CategorizerRequestsTotal.WithLabelValues("error").Inc()
		c.logger.Debug("Unparseable categorizer answer",
			zap.String("provider", c.provider),
			zap.String("content", resp.Choices[0].Message.Content),
		)
		return nil, err
	}

	metrics.CategorizerRequestsTotal.WithLabelValues("ok").Inc()
	return labels, nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (c *Categorizer) HealthCheck(ctx context.Context) error {
	if _, err := c.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

func userPrompt(name, abstract string, vocabulary []string) string {
	var sb strings.Builder
	sb.WriteString("Model: ")
	sb.WriteString(name)
	if abstract = strings.TrimSpace(abstract); abstract != "" {
		if len(abstract) > maxAbstract {
			abstract = abstract[:maxAbstract]
		}
		sb.WriteString("\nAbstract: ")
		sb.WriteString(abstract)
	}
	if len(vocabulary) > 0 {
		allowed, _ := json.Marshal(vocabulary)
		sb.WriteString("\nAllowed tasks: ")
		sb.Write(allowed)
	}
	return sb.String()
}

// parseLabels reads the JSON array out of a completion, tolerating code
// fences and surrounding prose.
func parseLabels(content string) ([]string, error) {
	start := strings.IndexByte(content, '[')
	end := strings.LastIndexByte(content, ']')
	if start < 0 || end < start {
		return nil, fmt.Errorf("no JSON array in completion: %q", truncate(content, 80))
	}
	var labels []string
	if err := json.Unmarshal([]byte(content[start:end+1]), &labels); err != nil {
		return nil, fmt.Errorf("decode labels: %w", err)
	}
	return labels, nil
}

// parseAPIError extracts a human-readable error from the API response.
// All errors are wrapped with domain.ErrCategorizerUnavailable.
func parseAPIError(err error) error {
	wrap := domain.ErrCategorizerUnavailable

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if detail := extractDetail(reqErr.Body); detail != "" {
			return fmt.Errorf("categorizer API error %d: %s: %w", reqErr.HTTPStatusCode, detail, wrap)
		}
		return fmt.Errorf("categorizer API error %d: %s: %w",
			reqErr.HTTPStatusCode, truncate(string(reqErr.Body), 200), wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("categorizer API error %d: %s: %w", apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	return fmt.Errorf("categorizer request failed: %w: %w", err, wrap)
}

// extractDetail extracts the "detail" field from a JSON error body.
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return ""
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
