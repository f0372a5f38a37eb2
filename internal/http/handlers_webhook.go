package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/tradetext/sms-jobs/internal/service"
)

// WebhookHandlers serves the inbound SMS webhook.
type WebhookHandlers struct {
	Dispatcher *service.DispatcherService
	Logger     *slog.Logger
}

// HandleInbound processes one SMS gateway callback. Malformed requests
// (missing From or Body) get a 400 JSON error and never become an SMS
// reply; everything else gets a 200 TwiML document, whatever happened
// inside the dispatcher.
func (h *WebhookHandlers) HandleInbound(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_form", Err: err})
		return
	}

	from := r.PostFormValue("From")
	body := r.PostFormValue("Body")
	mediaURL := r.PostFormValue("MediaUrl0")

	if from == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "missing_from", Err: errors.New("From is required")})
		return
	}
	if body == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "missing_body", Err: errors.New("Body is required")})
		return
	}

	reply := h.Dispatcher.Handle(r.Context(), service.InboundMessage{
		From:     from,
		Body:     body,
		MediaURL: mediaURL,
	})

	WriteTwiML(w, reply)
}
