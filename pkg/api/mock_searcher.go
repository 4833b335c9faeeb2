package api

import (
	"sync"

	"github.com/adfharrison1/go-logindex/pkg/domain"
)

// MockSearcher provides a mock implementation of domain.Searcher for testing
type MockSearcher struct {
	mu           sync.Mutex
	results      map[string]*domain.Result
	stats        *domain.BuildStats
	err          error
	queryCalls   int
	lastLimit    int
	rebuildCalls int
}

// NewMockSearcher creates a mock searcher that answers from results, keyed by term
func NewMockSearcher(results map[string]*domain.Result) *MockSearcher {
	if results == nil {
		results = make(map[string]*domain.Result)
	}
	return &MockSearcher{
		results: results,
		stats:   &domain.BuildStats{BuildID: "mock-build"},
	}
}

// SetError makes every subsequent call fail with err
func (m *MockSearcher) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Query returns the canned result for term
func (m *MockSearcher) Query(term string, limit int) (*domain.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.queryCalls++
	m.lastLimit = limit
	if m.err != nil {
		return nil, m.err
	}
	result, ok := m.results[term]
	if !ok {
		if term == "" {
			return &domain.Result{}, nil
		}
		return nil, &domain.TermNotFoundError{Term: term}
	}
	return result, nil
}

// Rebuild returns the canned build stats
func (m *MockSearcher) Rebuild() (*domain.BuildStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rebuildCalls++
	if m.err != nil {
		return nil, m.err
	}
	return m.stats, nil
}

// GetQueryCalls returns the number of Query calls
func (m *MockSearcher) GetQueryCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queryCalls
}

// GetLastLimit returns the limit passed to the most recent Query
func (m *MockSearcher) GetLastLimit() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastLimit
}

// GetRebuildCalls returns the number of Rebuild calls
func (m *MockSearcher) GetRebuildCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rebuildCalls
}
