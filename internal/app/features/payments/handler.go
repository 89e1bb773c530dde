package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"

	"github.com/carebridge/carebridge/internal/app/coordinator"
	"github.com/carebridge/carebridge/internal/app/system/timeouts"
	"github.com/carebridge/carebridge/internal/app/system/webjson"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler receives payment confirmations from the external relay.
// Each confirmation is applied via an idempotent increment keyed on
// the payment session, so a redelivered webhook is harmless.
type Handler struct {
	Coord  *coordinator.Coordinator
	Secret string
	Log    *zap.Logger
}

// NewHandler constructs the payments webhook handler. secret, when
// non-empty, enables HMAC verification of the relay's signature
// header.
func NewHandler(coord *coordinator.Coordinator, secret string, logger *zap.Logger) *Handler {
	return &Handler{Coord: coord, Secret: secret, Log: logger}
}

const signatureHeader = "X-Payment-Signature"

type confirmRequest struct {
	ActorID   string `json:"actor_id"`
	Amount    int64  `json:"amount"`
	SessionID string `json:"session_id"`
}

// Confirm handles POST /confirm.
func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<16))
	if err != nil {
		webjson.BadRequest(w, "unreadable body")
		return
	}
	if h.Secret != "" && !h.verify(body, r.Header.Get(signatureHeader)) {
		h.Log.Warn("payment webhook signature rejected")
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	var req confirmRequest
	if err := json.Unmarshal(body, &req); err != nil {
		webjson.BadRequest(w, "invalid JSON body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short)
	defer cancel()

	err = h.Coord.ConfirmPayment(ctx, coordinator.PaymentConfirmation{
		ActorID:   req.ActorID,
		Amount:    req.Amount,
		SessionID: req.SessionID,
	})
	if err != nil {
		webjson.Fail(w, h.Log, err)
		return
	}
	webjson.Write(w, http.StatusOK, map[string]string{"result": "processed"})
}

func (h *Handler) verify(body []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(h.Secret))
	mac.Write(body)
	want := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(want), []byte(signature))
}

// Routes returns the payments subrouter, mounted under /payments.
// The relay is authenticated by signature, not by session.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/confirm", h.Confirm)
	return r
}
