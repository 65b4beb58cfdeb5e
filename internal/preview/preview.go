// Package preview streams QR payload regeneration to the invoice editor over
// a websocket. The editor sends the current draft on every edit; the server
// answers with the validation result and, when valid, a fresh payload.
package preview

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"freelance-backend/internal/metrics"
	"freelance-backend/internal/qrbill"
)

type Handler struct {
	upgrader websocket.Upgrader
}

func NewHandler() *Handler {
	return &Handler{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Response is sent back for every draft that gets encoded.
type Response struct {
	Valid   bool   `json:"valid"`
	Reason  string `json:"reason,omitempty"`
	Scheme  string `json:"scheme"`
	Payload string `json:"payload,omitempty"`
}

// Preview upgrades the connection and encodes drafts as they arrive. Drafts
// that land while an encode is in flight are coalesced so only the newest
// one is answered; stale regenerations are discarded, never retried.
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Preview] Upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	drafts := make(chan qrbill.Payment, 1)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for draft := range drafts {
			if err := conn.WriteJSON(encodeDraft(draft)); err != nil {
				return
			}
		}
	}()

	for {
		var draft qrbill.Payment
		if err := conn.ReadJSON(&draft); err != nil {
			break
		}

		// Replace any queued draft with the newest one.
		select {
		case <-drafts:
		default:
		}
		select {
		case drafts <- draft:
		case <-done:
			close(drafts)
			return
		}
	}
	close(drafts)
	<-done
}

func encodeDraft(p qrbill.Payment) Response {
	cls := qrbill.ClassifyReference(p.Account, p.Reference)
	resp := Response{Scheme: string(cls.Scheme)}

	if err := qrbill.ValidatePayment(p); err != nil {
		resp.Reason = err.Error()
		return resp
	}

	metrics.QRPayloadsGenerated.Inc()
	resp.Valid = true
	resp.Payload = qrbill.Encode(p)
	return resp
}
