package config

import "time"

// SMSConfig contains SMS handling configuration.
type SMSConfig struct {
	// UpstreamTimeout bounds each collaborator call (job store, preference
	// store) made while handling one inbound message. SMS gateways enforce
	// their own webhook response ceiling, so these calls must not hang.
	UpstreamTimeout time.Duration `env:"SMS_UPSTREAM_TIMEOUT" envDefault:"5s"`

	// SweepInterval is how often the background janitor sweeps expired
	// sessions out of the in-memory store. Expiry is also enforced lazily
	// on every inbound message; the janitor only bounds idle memory.
	SweepInterval time.Duration `env:"SMS_SWEEP_INTERVAL" envDefault:"1m"`
}

// Sanitize applies guardrails to SMS configuration values.
func (s *SMSConfig) Sanitize() {
	if s.UpstreamTimeout <= 0 {
		s.UpstreamTimeout = 5 * time.Second
	}
	if s.SweepInterval < 10*time.Second {
		s.SweepInterval = 10 * time.Second
	}
}
