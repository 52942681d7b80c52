// Package v1 exposes the game service as a JSON/HTTP API. The caller's
// identity arrives as an X-Account-ID header set by the session
// collaborator in front of this service.
package v1

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/creatureworks/creature-api/internal/errors"
	"github.com/creatureworks/creature-api/internal/services/game"
)

// AccountIDHeader carries the authenticated caller's account ID.
const AccountIDHeader = "X-Account-ID"

// Config holds the dependencies for the HTTP handler
type Config struct {
	Service game.Service
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if c.Service == nil {
		return errors.InvalidArgument("service cannot be nil")
	}
	return nil
}

// Handler routes HTTP requests to the game service
type Handler struct {
	service game.Service
}

// New creates a new HTTP handler
func New(cfg *Config) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{service: cfg.Service}, nil
}

// Register attaches all routes to mux
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/accounts", h.createAccount)
	mux.HandleFunc("GET /api/v1/balance", h.getBalance)
	mux.HandleFunc("GET /api/v1/inventory", h.getInventory)
	mux.HandleFunc("POST /api/v1/summon", h.summon)
	mux.HandleFunc("POST /api/v1/capture", h.capture)
	mux.HandleFunc("GET /api/v1/collection", h.listCollection)
	mux.HandleFunc("GET /api/v1/market", h.listMarket)
	mux.HandleFunc("POST /api/v1/market/listings", h.listInstance)
	mux.HandleFunc("DELETE /api/v1/market/listings/{id}", h.withdrawListing)
	mux.HandleFunc("POST /api/v1/market/listings/{id}/purchase", h.purchase)
	mux.HandleFunc("POST /api/v1/trades", h.proposeTrade)
	mux.HandleFunc("GET /api/v1/trades", h.listTrades)
	mux.HandleFunc("POST /api/v1/trades/{id}/accept", h.acceptTrade)
	mux.HandleFunc("POST /api/v1/trades/{id}/reject", h.rejectTrade)
	mux.HandleFunc("GET /api/v1/companion", h.getCompanion)
	mux.HandleFunc("PUT /api/v1/companion", h.setCompanion)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// writeError maps the structured error code onto an HTTP status and
// returns that status for the metrics observation.
func writeError(w http.ResponseWriter, err error) int {
	code := errors.GetCode(err)
	status := code.HTTPStatus()
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "code", code, "error", err)
	}
	writeJSON(w, status, errorResponse{
		Error: errors.GetMessage(err),
		Code:  string(code),
	})
	return status
}

// accountID extracts the caller's identity, or writes 401 and returns
// false.
func accountID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.Header.Get(AccountIDHeader)
	if id == "" {
		writeError(w, errors.Unauthenticated("missing "+AccountIDHeader+" header"))
		return "", false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, errors.InvalidArgumentf("malformed request body: %v", err))
		return false
	}
	return true
}
