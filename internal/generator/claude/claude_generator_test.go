package claude_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"dealflow/internal/config"
	"dealflow/internal/domain"
	claude "dealflow/internal/generator/claude"
	"dealflow/internal/port"
)

func newTestGenerator(serverURL string) *claude.Generator {
	cfg := &config.GeneratorConfig{
		APIKey:       "test-api-key",
		DefaultModel: "claude-3-5-sonnet-20241022",
		MaxTokens:    4096,
		TimeoutSecs:  5,
	}
	return claude.NewGeneratorWithEndpoint(cfg, serverURL)
}

func messagesResponse(text string) map[string]interface{} {
	return map[string]interface{}{
		"content": []map[string]interface{}{
			{"type": "text", "text": text},
		},
		"stop_reason": "end_turn",
	}
}

func TestGenerator_Generate_Underwrite_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-api-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var reqBody map[string]interface{}
		err := json.NewDecoder(r.Body).Decode(&reqBody)
		assert.NoError(t, err)
		assert.Equal(t, "claude-3-5-sonnet-20241022", reqBody["model"])
		assert.Equal(t, float64(4096), reqBody["max_tokens"])

		messages := reqBody["messages"].([]interface{})
		assert.Len(t, messages, 1)
		msg := messages[0].(map[string]interface{})
		assert.Equal(t, "user", msg["role"])
		prompt := msg["content"].(string)
		assert.Contains(t, prompt, "pre-due diligence screening")
		assert.Contains(t, prompt, "the pitch deck text")

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(messagesResponse("1. LACK OF DURABLE COMPETITIVE ADVANTAGES ..."))
	}))
	defer server.Close()

	gen := newTestGenerator(server.URL)

	result := gen.Generate(context.Background(), port.TaskUnderwrite, "the pitch deck text")

	assert.False(t, result.Degraded)
	assert.Equal(t, "1. LACK OF DURABLE COMPETITIVE ADVANTAGES ...", result.Text)
}

func TestGenerator_Generate_KIQ_UsesAnalysisPrompt(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var reqBody map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&reqBody)
		messages := reqBody["messages"].([]interface{})
		prompt := messages[0].(map[string]interface{})["content"].(string)
		assert.Contains(t, prompt, "pre-due diligence analysis findings")
		assert.Contains(t, prompt, "the underwrite analysis")
		assert.Contains(t, prompt, "Generate exactly 15 due diligence questions")

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(messagesResponse("1. Question?\nA:"))
	}))
	defer server.Close()

	gen := newTestGenerator(server.URL)

	result := gen.Generate(context.Background(), port.TaskKIQ, "the underwrite analysis")

	assert.False(t, result.Degraded)
	assert.Equal(t, "1. Question?\nA:", result.Text)
}

func TestGenerator_Generate_APIError_SubstitutesPlaceholder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": {"type": "overloaded_error"}}`))
	}))
	defer server.Close()

	gen := newTestGenerator(server.URL)

	underwrite := gen.Generate(context.Background(), port.TaskUnderwrite, "text")
	assert.True(t, underwrite.Degraded)
	assert.Equal(t, domain.UnderwriteFailureText, underwrite.Text)

	kiq := gen.Generate(context.Background(), port.TaskKIQ, "text")
	assert.True(t, kiq.Degraded)
	assert.Equal(t, domain.KIQFailureText, kiq.Text)
}

func TestGenerator_Generate_EmptyResponse_SubstitutesPlaceholder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"content": []}`))
	}))
	defer server.Close()

	gen := newTestGenerator(server.URL)

	result := gen.Generate(context.Background(), port.TaskUnderwrite, "text")
	assert.True(t, result.Degraded)
	assert.Equal(t, domain.UnderwriteFailureText, result.Text)
}

func TestGenerator_Generate_MalformedJSON_SubstitutesPlaceholder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	gen := newTestGenerator(server.URL)

	result := gen.Generate(context.Background(), port.TaskKIQ, "text")
	assert.True(t, result.Degraded)
	assert.Equal(t, domain.KIQFailureText, result.Text)
}

func TestGenerator_Generate_UnreachableEndpoint_SubstitutesPlaceholder(t *testing.T) {
	gen := newTestGenerator("http://127.0.0.1:1")

	result := gen.Generate(context.Background(), port.TaskUnderwrite, "text")
	assert.True(t, result.Degraded)
	assert.Equal(t, domain.UnderwriteFailureText, result.Text)
}
