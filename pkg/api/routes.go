package api

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API routes with the given router
func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/health", h.HandleHealth).Methods("GET")

	// Queries
	router.HandleFunc("/summary", h.HandleSummary).Methods("GET")
	router.HandleFunc("/search", h.HandleSearch).Methods("GET")

	// Cache maintenance
	router.HandleFunc("/rebuild", h.HandleRebuild).Methods("POST")
}
