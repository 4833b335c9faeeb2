package server

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/adfharrison1/go-logindex/pkg/api"
	"github.com/adfharrison1/go-logindex/pkg/domain"
)

// Server holds references to the query engine, router, etc.
type Server struct {
	router   *mux.Router
	searcher domain.Searcher
}

// NewServer creates a new instance of Server answering queries from searcher.
func NewServer(searcher domain.Searcher, defaultLimit int) *Server {
	s := &Server{
		router:   mux.NewRouter(),
		searcher: &serialSearcher{next: searcher},
	}

	handler := api.NewHandler(s.searcher, defaultLimit)
	handler.RegisterRoutes(s.router)

	// Use the logging middleware for all routes
	s.router.Use(requestLoggerMiddleware)

	// Customize NotFoundHandler to log 404s
	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("WARN: No route found for %s %s", r.Method, r.URL.Path)
		api.WriteJSONError(w, http.StatusNotFound, "no route for "+r.URL.Path)
	})

	return s
}

// requestLoggerMiddleware logs the method, URL path, and duration for each request.
func requestLoggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		elapsed := time.Since(start)
		log.Printf("INFO: Request %s %s took %s", r.Method, r.URL.Path, elapsed)
	})
}

// Router exposes the internal mux.Router.
func (s *Server) Router() http.Handler {
	return s.router
}

// serialSearcher runs one query or rebuild at a time, so the lazy build and a
// concurrent rebuild cannot interleave within this process.
type serialSearcher struct {
	mu   sync.Mutex
	next domain.Searcher
}

func (s *serialSearcher) Query(term string, limit int) (*domain.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next.Query(term, limit)
}

func (s *serialSearcher) Rebuild() (*domain.BuildStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next.Rebuild()
}
