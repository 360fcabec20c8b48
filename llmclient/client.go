package llmclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"math-buddy/config"
	"math-buddy/web/types"

	"go.uber.org/zap"
)

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

type chatCompletionRequest struct {
	Model       string               `json:"model"`
	Messages    []types.AgentMessage `json:"messages"`
	Temperature float64              `json:"temperature"`
	TopP        float64              `json:"top_p"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message types.AgentMessage `json:"message"`
	} `json:"choices"`
}

// Client speaks to whichever LLM backend is configured: a local Ollama
// server via /api/generate, or an OpenAI-compatible cloud endpoint via
// /chat/completions. Both paths run the response through Clean before
// returning it, so no caller ever sees reasoning scaffolding.
type Client struct {
	cfg        *config.Config
	httpClient *http.Client
	logger     *zap.Logger
}

func New(cfg *config.Config, logger *zap.Logger) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.LLMRequestTimeout},
		logger:     logger,
	}
}

// Generate performs a single-prompt completion against the local Ollama
// server. The system prompt is prepended to the user prompt, which is how
// Ollama's generate endpoint expects persona instructions.
func (c *Client) Generate(ctx context.Context, prompt, systemPrompt string) (string, error) {
	fullPrompt := prompt
	if systemPrompt != "" {
		fullPrompt = systemPrompt + "\n\n" + prompt
	}

	reqBody := generateRequest{
		Model:  c.cfg.OllamaModel,
		Prompt: fullPrompt,
		Stream: false,
	}
	url := fmt.Sprintf("%s/api/generate", strings.TrimRight(c.cfg.OllamaURL, "/"))

	bodyBytes, err := c.post(ctx, url, "", reqBody)
	if err != nil {
		return "", err
	}

	var gr generateResponse
	if err := json.Unmarshal(bodyBytes, &gr); err != nil {
		return "", fmt.Errorf("decode generate response: %w", err)
	}
	return Clean(strings.TrimSpace(gr.Response)), nil
}

// ChatCompletion performs a non-streaming chat completion call against the
// configured cloud endpoint.
func (c *Client) ChatCompletion(ctx context.Context, messages []types.AgentMessage, temperature float64) (string, error) {
	reqBody := chatCompletionRequest{
		Model:       c.cfg.ModelName,
		Messages:    messages,
		Temperature: temperature,
		TopP:        1.0,
	}
	url := fmt.Sprintf("%s/chat/completions", strings.TrimRight(c.cfg.GitHubAPIURL, "/"))

	bodyBytes, err := c.post(ctx, url, c.cfg.GitHubToken, reqBody)
	if err != nil {
		return "", err
	}

	var cr chatCompletionResponse
	if err := json.Unmarshal(bodyBytes, &cr); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("no response choices from llm server")
	}
	return Clean(strings.TrimSpace(cr.Choices[0].Message.Content)), nil
}

// post sends a JSON request and returns the response body, retrying with
// backoff while the server reports 503 (model loading).
func (c *Client) post(ctx context.Context, url, bearerToken string, payload any) ([]byte, error) {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal llm request: %w", err)
	}

	var resp *http.Response
	var lastErr error
	for attempt := 0; attempt < c.cfg.MaxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
		if err != nil {
			return nil, fmt.Errorf("create llm request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		if bearerToken != "" {
			req.Header.Set("Authorization", "Bearer "+bearerToken)
		}

		r, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			// Do not retry on context cancellation/deadline
			if ctx.Err() != nil {
				break
			}
			continue
		}

		if r.StatusCode == http.StatusServiceUnavailable {
			// Model loading; retry with backoff
			io.Copy(io.Discard, r.Body)
			r.Body.Close()
			c.logger.Warn("LLM service unavailable, retrying", zap.Int("attempt", attempt+1))
			c.backoffSleep(attempt)
			continue
		}

		resp = r
		break
	}
	if resp == nil {
		return nil, fmt.Errorf("no response from llm server: %w", lastErr)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read llm response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("llm server status %s: %s", resp.Status, string(bodyBytes))
	}
	return bodyBytes, nil
}

func (c *Client) backoffSleep(attempt int) {
	// Exponential backoff with configurable jitter and cap
	base := c.cfg.RetryDelaySeconds
	if base <= 0 {
		base = time.Second // config normalization should prevent this
	}
	d := base * time.Duration(1<<attempt)
	maxWait := c.cfg.LLMBackoffMaxSeconds
	if maxWait > 0 && d > maxWait {
		d = maxWait
	}
	jitterRatio := c.cfg.LLMBackoffJitterRatio
	if jitterRatio < 0 || jitterRatio > 1 {
		jitterRatio = 0.1
	}
	jitter := time.Duration(float64(d) * jitterRatio)
	if jitter <= 0 {
		time.Sleep(d)
		return
	}
	time.Sleep(d - jitter + time.Duration(time.Now().UnixNano()%int64(2*jitter+1)))
}
