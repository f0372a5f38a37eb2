// Package vision implements the photo-assessment collaborator on top of an
// OpenAI-compatible chat-completions endpoint.
package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/tradetext/sms-jobs/config"
)

// assessmentPrompt fixes what the model is asked to do with a job photo.
// The reply goes straight into an SMS body, so it must stay short.
const assessmentPrompt = `You are a home-repair estimator. A contractor marketplace user texted this photo of a problem. In at most 3 short sentences: name the likely problem, the trade needed, and a rough price range in USD. Plain text only.`

// Client calls a vision-capable chat-completions API.
type Client struct {
	cfg        config.VisionConfig
	httpClient *http.Client
}

// NewClient creates a vision client from configuration. The API key must be
// present; the caller decides what to wire when it is not.
func NewClient(cfg config.VisionConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("vision API key is required")
	}
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}, nil
}

type chatRequest struct {
	Model     string        `json:"model"`
	MaxTokens int           `json:"max_tokens"`
	Messages  []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Assess sends the photo to the vision model and returns its repair
// assessment text.
func (c *Client) Assess(ctx context.Context, photoURL string) (string, error) {
	if photoURL == "" {
		return "", errors.New("photo URL is required")
	}

	reqBody := chatRequest{
		Model:     c.cfg.Model,
		MaxTokens: c.cfg.MaxTokens,
		Messages: []chatMessage{
			{
				Role: "user",
				Content: []contentPart{
					{Type: "text", Text: assessmentPrompt},
					{Type: "image_url", ImageURL: &imageURL{URL: photoURL}},
				},
			},
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call vision model: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		return "", fmt.Errorf("vision model HTTP %d", resp.StatusCode)
	}

	var cr chatResponse
	if err = json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", fmt.Errorf("decode vision response: %w", err)
	}
	if len(cr.Choices) == 0 {
		return "", errors.New("no choices in vision response")
	}

	return cr.Choices[0].Message.Content, nil
}
