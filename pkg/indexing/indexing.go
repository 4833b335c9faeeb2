package indexing

import (
	"github.com/adfharrison1/go-logindex/pkg/domain"
)

// Index records, per key, every value observed for each companion field.
// Values are kept as raw multisets until Collapse folds them into counts.
type Index struct {
	Direction domain.Direction
	fields    []string
	entries   map[string]map[string][]string // key -> field -> observed values
	keys      []string                       // keys in first-seen order
}

// NewIndex creates an empty index for one direction.
func NewIndex(direction domain.Direction) *Index {
	return &Index{
		Direction: direction,
		fields:    direction.Fields(),
		entries:   make(map[string]map[string][]string),
	}
}

// Add appends the event's companion values under the event's key for this direction.
func (idx *Index) Add(ev domain.Event) {
	key := ev.Get(idx.Direction.KeyField())
	entry, ok := idx.entries[key]
	if !ok {
		entry = make(map[string][]string, len(idx.fields))
		idx.entries[key] = entry
		idx.keys = append(idx.keys, key)
	}
	for _, field := range idx.fields {
		entry[field] = append(entry[field], ev.Get(field))
	}
}

// Values returns a copy of the raw values recorded for key and field.
func (idx *Index) Values(key, field string) []string {
	values := idx.entries[key][field]
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}

// Keys returns the indexed keys in first-seen order.
func (idx *Index) Keys() []string {
	out := make([]string, len(idx.keys))
	copy(out, idx.keys)
	return out
}

// Len returns the number of distinct keys.
func (idx *Index) Len() int {
	return len(idx.keys)
}

// Collapse folds every multiset into (value, count) pairs. Pairs appear in the
// order their value was first observed. The live index is not modified.
func (idx *Index) Collapse() domain.Table {
	table := make(domain.Table, len(idx.entries))
	for key, entry := range idx.entries {
		collapsed := make(domain.Entry, len(entry))
		for field, values := range entry {
			collapsed[field] = countValues(values)
		}
		table[key] = collapsed
	}
	return table
}

func countValues(values []string) []domain.Count {
	positions := make(map[string]int, len(values))
	counts := make([]domain.Count, 0, len(values))
	for _, v := range values {
		if i, ok := positions[v]; ok {
			counts[i].Count++
			continue
		}
		positions[v] = len(counts)
		counts = append(counts, domain.Count{Value: v, Count: 1})
	}
	return counts
}
