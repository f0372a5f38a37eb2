package config

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - http.go: HTTP server configuration
//   - database.go: Job store and Redis configuration
//   - sms.go: SMS handling configuration
//   - vision.go: Photo-assessment model configuration
type AppConfig struct {
	// IsDev controls development mode behavior (verbose logging, etc.)
	IsDev bool `env:"DEV" envDefault:"false"`

	// HTTP server configuration
	HTTP HTTPConfig

	// Job store and session store configuration
	Postgres DBConfig    `envPrefix:"DB_"`
	Redis    RedisConfig `envPrefix:"REDIS_"`

	// SMS handling configuration
	SMS SMSConfig

	// Photo-assessment model configuration
	Vision VisionConfig `envPrefix:"VISION_"`

	// Service mode configuration ("http", "sweeper", or both)
	Services string `env:"SERVICES" envDefault:"http,sweeper"`
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.SMS.Sanitize()
	c.Vision.Sanitize()
}

// HasJobStore reports whether a live Postgres job store is configured.
// Without one, searches run against the built-in fixture set.
func (c *AppConfig) HasJobStore() bool {
	return c.Postgres.Host != ""
}

// HasSessionCache reports whether Redis is configured for cross-instance
// session storage. Without it, sessions live in process memory.
func (c *AppConfig) HasSessionCache() bool {
	return c.Redis.Addr != ""
}

// HasVisionModel reports whether photo assessment is enabled.
func (c *AppConfig) HasVisionModel() bool {
	return c.Vision.APIKey != ""
}
