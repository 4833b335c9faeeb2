package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/adfharrison1/go-logindex/pkg/domain"
)

// Handler provides HTTP handlers for the query API
type Handler struct {
	searcher     domain.Searcher
	defaultLimit int
}

// NewHandler creates a new API handler with dependency injection. A
// non-positive defaultLimit falls back to domain.DefaultLimit.
func NewHandler(searcher domain.Searcher, defaultLimit int) *Handler {
	if defaultLimit <= 0 {
		defaultLimit = domain.DefaultLimit
	}
	return &Handler{
		searcher:     searcher,
		defaultLimit: defaultLimit,
	}
}

// parseLimit reads the optional limit query parameter.
func (h *Handler) parseLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return h.defaultLimit, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", domain.ErrInvalidLimit, raw)
	}
	if limit < 0 {
		return 0, fmt.Errorf("%w: got %d", domain.ErrInvalidLimit, limit)
	}
	return limit, nil
}

func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("ERROR: Failed to encode response: %v", err)
	}
}
