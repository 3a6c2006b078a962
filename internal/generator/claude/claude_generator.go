package claude

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"dealflow/internal/config"
	"dealflow/internal/domain"
	"dealflow/internal/generator"
	"dealflow/internal/port"
)

const (
	apiURL     = "https://api.anthropic.com/v1/messages"
	apiVersion = "2023-06-01"
)

// Generator implements port.TextGenerator using the Anthropic Messages API.
// Remote failures never escape: the pipeline's generation steps are
// unconditional producers, so any transport error, non-success status, or
// malformed response is mapped to the task's failure placeholder.
type Generator struct {
	apiKey    string
	model     string
	maxTokens int
	endpoint  string
	client    *http.Client
	limiter   *rate.Limiter
}

// NewGenerator creates a Claude-backed text generator from config.
func NewGenerator(cfg *config.GeneratorConfig) *Generator {
	return newGenerator(cfg, apiURL)
}

// NewGeneratorWithEndpoint creates a generator pointing at a custom API
// endpoint (for testing).
func NewGeneratorWithEndpoint(cfg *config.GeneratorConfig, endpoint string) *Generator {
	return newGenerator(cfg, endpoint)
}

func newGenerator(cfg *config.GeneratorConfig, endpoint string) *Generator {
	model := cfg.DefaultModel
	if model == "" {
		model = "claude-3-5-sonnet-20241022"
	}
	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 4096
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	var limiter *rate.Limiter
	if cfg.RateLimitRPM > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(cfg.RateLimitRPM)/60.0), 1)
	}
	return &Generator{
		apiKey:    cfg.APIKey,
		model:     model,
		maxTokens: maxTokens,
		endpoint:  endpoint,
		client:    &http.Client{Timeout: timeout},
		limiter:   limiter,
	}
}

// Generate runs one generation call for the given task. The returned result
// always carries non-empty text; Degraded marks a substituted placeholder.
func (g *Generator) Generate(ctx context.Context, task port.GenerationTask, input string) port.GenerationResult {
	text, err := g.generate(ctx, task, input)
	if err != nil {
		log.Printf("claude.Generate: %s generation failed: %v", task, err)
		return port.GenerationResult{Text: fallbackText(task), Degraded: true}
	}
	return port.GenerationResult{Text: text}
}

func (g *Generator) generate(ctx context.Context, task port.GenerationTask, input string) (string, error) {
	prompt, err := buildPrompt(task, input)
	if err != nil {
		return "", err
	}

	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("waiting for rate limiter: %w", err)
		}
	}

	reqBody := map[string]interface{}{
		"model":      g.model,
		"max_tokens": g.maxTokens,
		"messages": []map[string]interface{}{
			{
				"role":    "user",
				"content": prompt,
			},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", g.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling anthropic API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("anthropic API error (status %d): %s", resp.StatusCode, truncate(string(respBody), 500))
	}

	return parseResponse(respBody)
}

func buildPrompt(task port.GenerationTask, input string) (string, error) {
	switch task {
	case port.TaskUnderwrite:
		return generator.BuildUnderwritePrompt(input), nil
	case port.TaskKIQ:
		return generator.BuildKIQPrompt(input), nil
	default:
		return "", fmt.Errorf("unknown generation task: %s", task)
	}
}

func fallbackText(task port.GenerationTask) string {
	if task == port.TaskKIQ {
		return domain.KIQFailureText
	}
	return domain.UnderwriteFailureText
}

// apiResponse models the Anthropic Messages API response.
type apiResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

func parseResponse(body []byte) (string, error) {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("unmarshaling response: %w", err)
	}

	if len(resp.Content) == 0 || resp.Content[0].Text == "" {
		return "", fmt.Errorf("empty response from API")
	}

	return resp.Content[0].Text, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
