package api

import (
	"log"
	"net/http"
)

// RebuildResponse reports the outcome of a forced rebuild
type RebuildResponse struct {
	Success    bool   `json:"success"`
	BuildID    string `json:"build_id"`
	Source     string `json:"source"`
	Lines      int    `json:"lines"`
	Events     int    `json:"events"`
	Skipped    int    `json:"skipped"`
	DurationMs int64  `json:"duration_ms"`
}

// HandleRebuild handles POST requests that rescan the log and replace the results
func (h *Handler) HandleRebuild(w http.ResponseWriter, r *http.Request) {
	log.Printf("INFO: handleRebuild called")

	stats, err := h.searcher.Rebuild()
	if err != nil {
		log.Printf("ERROR: Rebuild failed: %v", err)
		WriteError(w, err)
		return
	}

	log.Printf("INFO: Rebuild %s indexed %d events (%d skipped)", stats.BuildID, stats.Events, stats.Skipped)
	writeJSON(w, http.StatusOK, RebuildResponse{
		Success:    true,
		BuildID:    stats.BuildID,
		Source:     stats.Source,
		Lines:      stats.Lines,
		Events:     stats.Events,
		Skipped:    stats.Skipped,
		DurationMs: stats.Duration.Milliseconds(),
	})
}
