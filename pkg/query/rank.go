package query

import (
	"sort"

	"github.com/adfharrison1/go-logindex/pkg/domain"
	"github.com/adfharrison1/go-logindex/pkg/indexing"
)

// Rank returns a copy of pairs ordered by descending count, truncated to limit.
// Equal counts keep their incoming order.
func Rank(pairs []domain.Count, limit int) []domain.Count {
	ranked := make([]domain.Count, len(pairs))
	copy(ranked, pairs)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if limit >= 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// RankTotals ranks every key of table by the total of its counterpart field.
// Keys with equal totals are ordered by key so summaries are reproducible.
func RankTotals(table domain.Table, field string, limit int) []domain.Count {
	keys := make([]string, 0, len(table))
	for key := range table {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	totals := make([]domain.Count, 0, len(keys))
	for _, key := range keys {
		totals = append(totals, domain.Count{Value: key, Count: indexing.TotalFor(table[key], field)})
	}
	return Rank(totals, limit)
}

// Summarize builds the global top-N summary: endpoints ranked by how many
// requests they received and IPs ranked by how many requests they made.
func Summarize(snapshot *domain.Snapshot, limit int) *domain.Result {
	return &domain.Result{
		Endpoints: RankTotals(snapshot.Endpoint, domain.DirectionEndpoint.Counterpart(), limit),
		IPs:       RankTotals(snapshot.IP, domain.DirectionIP.Counterpart(), limit),
	}
}

// Resolve finds the index holding term as a key. The IP index is checked
// first, so a string that is a key in both indexes always resolves as an IP.
func Resolve(snapshot *domain.Snapshot, term string) (domain.Direction, domain.Entry, bool) {
	if entry, ok := snapshot.IP[term]; ok {
		return domain.DirectionIP, entry, true
	}
	if entry, ok := snapshot.Endpoint[term]; ok {
		return domain.DirectionEndpoint, entry, true
	}
	return "", nil, false
}

// DrillDown ranks every field of the entry that term resolves to.
func DrillDown(snapshot *domain.Snapshot, term string, limit int) (*domain.Result, error) {
	direction, entry, ok := Resolve(snapshot, term)
	if !ok {
		return nil, &domain.TermNotFoundError{Term: term}
	}

	fields := make(domain.Entry, len(entry))
	for field, pairs := range entry {
		fields[field] = Rank(pairs, limit)
	}
	return &domain.Result{
		Term:      term,
		Direction: direction,
		Fields:    fields,
	}, nil
}
