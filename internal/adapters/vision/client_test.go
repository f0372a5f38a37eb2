package vision

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradetext/sms-jobs/config"
)

func testConfig(baseURL string) config.VisionConfig {
	return config.VisionConfig{
		APIKey:    "test-key",
		BaseURL:   baseURL,
		Model:     "gpt-4o-mini",
		MaxTokens: 200,
		Timeout:   5 * time.Second,
	}
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	cfg := testConfig("http://localhost")
	cfg.APIKey = ""

	_, err := NewClient(cfg)
	assert.Error(t, err)
}

func TestClient_Assess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req.Model)
		require.Len(t, req.Messages, 1)
		require.Len(t, req.Messages[0].Content, 2)
		assert.Equal(t, "image_url", req.Messages[0].Content[1].Type)
		assert.Equal(t, "https://example.com/leak.jpg", req.Messages[0].Content[1].ImageURL.URL)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "Burst supply line under the sink. Call a plumber. Roughly $150-$350."}},
			},
		})
	}))
	defer srv.Close()

	client, err := NewClient(testConfig(srv.URL))
	require.NoError(t, err)

	text, err := client.Assess(context.Background(), "https://example.com/leak.jpg")
	require.NoError(t, err)
	assert.Contains(t, text, "plumber")
}

func TestClient_Assess_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client, err := NewClient(testConfig(srv.URL))
	require.NoError(t, err)

	_, err = client.Assess(context.Background(), "https://example.com/leak.jpg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestClient_Assess_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	client, err := NewClient(testConfig(srv.URL))
	require.NoError(t, err)

	_, err = client.Assess(context.Background(), "https://example.com/leak.jpg")
	assert.Error(t, err)
}

func TestClient_Assess_RequiresPhotoURL(t *testing.T) {
	client, err := NewClient(testConfig("http://localhost"))
	require.NoError(t, err)

	_, err = client.Assess(context.Background(), "")
	assert.Error(t, err)
}
