package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"math-buddy/config"
)

// Result is always returned with a status instead of an error: image
// generation is decorative, so callers render whatever status comes back
// rather than failing the surrounding request.
type Result struct {
	ImageURL string
	Status   string
	Message  string
}

type generateImageRequest struct {
	Prompt string `json:"prompt"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Client calls an external text-to-image service and saves the returned
// image under the static directory so the frontend can fetch it.
type Client struct {
	cfg        *config.Config
	httpClient *http.Client
	logger     *zap.Logger
}

func New(cfg *config.Config, logger *zap.Logger) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.ImageAPITimeout},
		logger:     logger,
	}
}

// Generate renders an illustration for a prompt. The theme is folded into
// the prompt; format selects the aspect ratio ("square", "wide", or the
// default card shape).
func (c *Client) Generate(ctx context.Context, prompt, theme, format string) Result {
	if c.cfg.ImageAPIURL == "" {
		return Result{Status: "disabled", Message: "Image generation is not configured"}
	}

	fullPrompt := prompt
	if theme != "" {
		fullPrompt = fmt.Sprintf("%s, %s theme, colorful, child-friendly illustration", prompt, theme)
	}

	width, height := 768, 512
	switch format {
	case "square":
		width, height = 512, 512
	case "wide":
		width, height = 1024, 512
	}

	imageBytes, err := c.requestImage(ctx, generateImageRequest{
		Prompt: fullPrompt,
		Width:  width,
		Height: height,
	})
	if err != nil {
		c.logger.Error("Image generation failed", zap.Error(err))
		return Result{Status: "error", Message: err.Error()}
	}

	url, err := c.saveImage(imageBytes)
	if err != nil {
		c.logger.Error("Image save failed", zap.Error(err))
		return Result{Status: "error", Message: err.Error()}
	}

	return Result{ImageURL: url, Status: "success", Message: "Image generated"}
}

func (c *Client) requestImage(ctx context.Context, payload generateImageRequest) ([]byte, error) {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal image request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.ImageAPIURL, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create image request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("image service unreachable: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read image response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image service status %s", resp.Status)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("image service returned empty body")
	}
	return body, nil
}

func (c *Client) saveImage(data []byte) (string, error) {
	dir := filepath.Join(c.cfg.StaticDir, "images")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create image directory: %w", err)
	}

	filename := uuid.NewString() + ".png"
	if err := os.WriteFile(filepath.Join(dir, filename), data, 0o644); err != nil {
		return "", fmt.Errorf("write image file: %w", err)
	}
	return "/static/images/" + filename, nil
}
