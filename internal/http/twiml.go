package httpx

import (
	"encoding/xml"
	"fmt"
	"net/http"
)

// twimlResponse is the minimal TwiML reply document the SMS gateway expects:
// a single <Message> inside a <Response>. encoding/xml escapes the message
// body (& < > " ') on the way out.
type twimlResponse struct {
	XMLName xml.Name `xml:"Response"`
	Message string   `xml:"Message"`
}

// WriteTwiML writes a 200 text/xml reply containing one message body.
// The transport contract requires a well-formed reply document on every
// handled webhook, so marshal failures fall back to an empty <Response/>.
func WriteTwiML(w http.ResponseWriter, body string) {
	payload, err := xml.Marshal(twimlResponse{Message: body})
	if err != nil {
		payload = []byte("<Response></Response>")
	}

	w.Header().Set("Content-Type", "text/xml")
	w.WriteHeader(http.StatusOK)
	if _, err = fmt.Fprintf(w, "%s%s", xml.Header, payload); err != nil {
		// Nothing more to do if the client connection is gone.
		return
	}
}
