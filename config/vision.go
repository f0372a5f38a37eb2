package config

import "time"

// VisionConfig contains photo-assessment model configuration. An empty
// API key disables the feature; photo messages then get a static reply.
type VisionConfig struct {
	APIKey    string        `env:"API_KEY"    envDefault:""`
	BaseURL   string        `env:"BASE_URL"   envDefault:"https://api.openai.com/v1"`
	Model     string        `env:"MODEL"      envDefault:"gpt-4o-mini"`
	MaxTokens int           `env:"MAX_TOKENS" envDefault:"200"`
	Timeout   time.Duration `env:"TIMEOUT"    envDefault:"20s"`
}

// Sanitize applies guardrails to vision configuration values.
func (v *VisionConfig) Sanitize() {
	if v.MaxTokens < 50 {
		v.MaxTokens = 50
	}
	if v.MaxTokens > 1000 {
		v.MaxTokens = 1000
	}
	if v.Timeout <= 0 {
		v.Timeout = 20 * time.Second
	}
}
