package api

import (
	"log"
	"net/http"
)

// HandleSummary handles GET requests for the global top-N endpoints and IPs
func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	limit, err := h.parseLimit(r)
	if err != nil {
		log.Printf("ERROR: Invalid limit: %v", err)
		WriteError(w, err)
		return
	}

	log.Printf("INFO: handleSummary called with limit %d", limit)

	result, err := h.searcher.Query("", limit)
	if err != nil {
		log.Printf("ERROR: Summary failed: %v", err)
		WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
