package indexing

import (
	"github.com/adfharrison1/go-logindex/pkg/domain"
)

// DualIndex keeps the by-IP and by-endpoint indexes in step. Every inserted
// event lands in both, so either side can be rebuilt from the same stream.
//
// A DualIndex is owned by a single builder and is not safe for concurrent use.
type DualIndex struct {
	byIP       *Index
	byEndpoint *Index
	events     int
}

// NewDualIndex creates an empty dual index.
func NewDualIndex() *DualIndex {
	return &DualIndex{
		byIP:       NewIndex(domain.DirectionIP),
		byEndpoint: NewIndex(domain.DirectionEndpoint),
	}
}

// Insert records one event in both directions.
func (d *DualIndex) Insert(ev domain.Event) {
	d.byIP.Add(ev)
	d.byEndpoint.Add(ev)
	d.events++
}

// Len returns the number of inserted events.
func (d *DualIndex) Len() int {
	return d.events
}

// Index returns the index for one direction.
func (d *DualIndex) Index(direction domain.Direction) *Index {
	if direction == domain.DirectionIP {
		return d.byIP
	}
	return d.byEndpoint
}

// Collapse produces the persisted form of both indexes.
func (d *DualIndex) Collapse() *domain.Snapshot {
	return &domain.Snapshot{
		IP:       d.byIP.Collapse(),
		Endpoint: d.byEndpoint.Collapse(),
	}
}

// TotalFor sums the counts of a collapsed entry's counterpart field, e.g. all
// endpoint hits for an IP.
func TotalFor(entry domain.Entry, field string) int {
	return entry.Total(field)
}
