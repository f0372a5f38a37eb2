package model

// DegradeReason explains why a collaborator call fell back to static or
// fixture data. It exists so the dispatcher can log the cause instead of
// inferring it from error shape; the SMS user never sees it.
type DegradeReason string

const (
	// DegradeNone means the live collaborator answered.
	DegradeNone DegradeReason = ""
	// DegradeNotConfigured means no live collaborator was wired at startup.
	DegradeNotConfigured DegradeReason = "not_configured"
	// DegradeUpstreamError means the live collaborator was wired but failed.
	DegradeUpstreamError DegradeReason = "upstream_error"
)

// Degraded reports whether the call fell back.
func (r DegradeReason) Degraded() bool {
	return r != DegradeNone
}
