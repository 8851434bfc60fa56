// Package callback runs a small local HTTP listener for SmsAero
// delivery-status callbacks, so --callback-url flows can be exercised
// end to end during development.
package callback

import (
	"encoding/json"
	"net/http"
	"time"
)

// StatusCallback is the payload SmsAero posts when a message's
// delivery status changes.
type StatusCallback struct {
	ID           int64  `json:"id"`
	Number       string `json:"number"`
	Text         string `json:"text"`
	Status       int    `json:"status"`
	ExtendStatus string `json:"extendStatus"`
	DateSend     int64  `json:"dateSend"`
	DateAnswer   int64  `json:"dateAnswer,omitempty"`
}

// Handler consumes one decoded callback.
type Handler func(cb StatusCallback)

// ackResponse is the body returned to the gateway after a callback is
// accepted.
type ackResponse struct {
	Success   bool   `json:"success"`
	Timestamp string `json:"timestamp"`
}

func newCallbackHandler(h Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var cb StatusCallback
		if err := json.NewDecoder(r.Body).Decode(&cb); err != nil {
			http.Error(w, "invalid callback payload", http.StatusBadRequest)
			return
		}

		h(cb)

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(ackResponse{
			Success:   true,
			Timestamp: time.Now().Format(time.RFC3339),
		})
	}
}
