// Package query answers summary and drill-down queries against the persisted
// results, building them from the log on first use.
package query

import (
	"errors"
	"fmt"
	"log"

	"github.com/adfharrison1/go-logindex/pkg/domain"
)

// Engine loads a fresh snapshot for every query; it keeps no state between calls.
//
// The lazy build is a check-then-act on the results file. Two processes
// querying an empty cache at the same time may both build; callers that need
// otherwise must serialize build and query themselves.
type Engine struct {
	store   domain.SnapshotStore
	builder domain.Builder
	logPath string
}

// NewEngine creates a query engine reading store and, when store has no
// results yet, building them from logPath.
func NewEngine(store domain.SnapshotStore, builder domain.Builder, logPath string) *Engine {
	return &Engine{
		store:   store,
		builder: builder,
		logPath: logPath,
	}
}

// Query returns the global summary when term is empty, otherwise the ranked
// breakdown for the IP or endpoint named by term. Every ranked list holds at
// most limit entries, so a zero limit yields empty lists.
func (e *Engine) Query(term string, limit int) (*domain.Result, error) {
	if limit < 0 {
		return nil, fmt.Errorf("%w: got %d", domain.ErrInvalidLimit, limit)
	}

	snapshot, err := e.load()
	if err != nil {
		return nil, err
	}

	if term == "" {
		return Summarize(snapshot, limit), nil
	}
	return DrillDown(snapshot, term, limit)
}

// Rebuild rescans the log and replaces the persisted results. The previous
// results survive if the build fails.
func (e *Engine) Rebuild() (*domain.BuildStats, error) {
	log.Printf("INFO: Rebuilding %s from %s", e.store.Path(), e.logPath)
	return e.builder.Build(e.logPath)
}

// Clean deletes the persisted results so the next query rebuilds them from
// the log. Cleaning an absent cache is not an error.
func (e *Engine) Clean() error {
	log.Printf("INFO: Removing results at %s", e.store.Path())
	return e.store.Remove()
}

func (e *Engine) load() (*domain.Snapshot, error) {
	if !e.store.Exists() {
		log.Printf("INFO: No results at %s, building from %s", e.store.Path(), e.logPath)
		if _, err := e.builder.Build(e.logPath); err != nil {
			return nil, err
		}
	}

	snapshot, err := e.store.Load()
	if errors.Is(err, domain.ErrResultsNotFound) {
		// Removed between the existence check and the read.
		if _, err := e.builder.Build(e.logPath); err != nil {
			return nil, err
		}
		return e.store.Load()
	}
	return snapshot, err
}
