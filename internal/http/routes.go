// Package httpx is the HTTP transport for the SMS job-search service: the
// gateway webhook, health probes, and the middleware stack around them.
package httpx

import (
	"log/slog"
	"net/http"

	"github.com/tradetext/sms-jobs/internal/service"
)

// RouterServices holds the services needed by the HTTP router.
type RouterServices struct {
	Dispatcher *service.DispatcherService
	Logger     *slog.Logger // Logger for HTTP and dispatcher errors (optional)
}

// NewRouter creates and configures the HTTP router. Method patterns make the
// mux answer 405 for non-POST hits on the webhook path, which the gateway
// contract requires.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	webhook := &WebhookHandlers{Dispatcher: services.Dispatcher, Logger: services.Logger}
	mux.Handle("POST /webhook/sms", http.HandlerFunc(webhook.HandleInbound))

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	return mux
}
