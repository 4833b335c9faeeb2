package api

import (
	"log"
	"net/http"
)

// SearchResponse wraps a drill-down with the term and the index it resolved in
type SearchResponse struct {
	Term      string      `json:"term"`
	Direction string      `json:"direction"`
	Results   interface{} `json:"results"`
}

// HandleSearch handles GET requests that drill down into one IP or endpoint
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("term")
	if term == "" {
		WriteJSONError(w, http.StatusBadRequest, "term is required (use /summary for the global view)")
		return
	}

	limit, err := h.parseLimit(r)
	if err != nil {
		log.Printf("ERROR: Invalid limit: %v", err)
		WriteError(w, err)
		return
	}

	log.Printf("INFO: handleSearch called for term '%s' with limit %d", term, limit)

	result, err := h.searcher.Query(term, limit)
	if err != nil {
		log.Printf("WARN: Search for '%s' failed: %v", term, err)
		WriteError(w, err)
		return
	}

	log.Printf("INFO: Term '%s' resolved in the %s index", term, result.Direction)
	writeJSON(w, http.StatusOK, SearchResponse{
		Term:      result.Term,
		Direction: string(result.Direction),
		Results:   result,
	})
}
