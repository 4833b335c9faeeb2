package indexing_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adfharrison1/go-logindex/pkg/domain"
	"github.com/adfharrison1/go-logindex/pkg/domain/domaintest"
	"github.com/adfharrison1/go-logindex/pkg/indexing"
)

func build(events []domain.Event) *indexing.DualIndex {
	idx := indexing.NewDualIndex()
	for _, ev := range events {
		idx.Insert(ev)
	}
	return idx
}

func sumCounts(table domain.Table, field string) int {
	total := 0
	for _, entry := range table {
		total += entry.Total(field)
	}
	return total
}

func TestInsert_AppendsToBothDirections(t *testing.T) {
	idx := indexing.NewDualIndex()
	ev := domain.Event{IP: "1.1.1.1", Region: "US", Endpoint: "/a", Status: "200"}

	idx.Insert(ev)
	idx.Insert(ev)

	byIP := idx.Index(domain.DirectionIP)
	assert.Equal(t, []string{"1.1.1.1"}, byIP.Keys())
	assert.Equal(t, []string{"/a", "/a"}, byIP.Values("1.1.1.1", domain.FieldEndpoint))
	assert.Equal(t, []string{"US", "US"}, byIP.Values("1.1.1.1", domain.FieldRegion))
	assert.Equal(t, []string{"200", "200"}, byIP.Values("1.1.1.1", domain.FieldStatus))
	assert.Nil(t, byIP.Values("1.1.1.1", domain.FieldIP))

	byEndpoint := idx.Index(domain.DirectionEndpoint)
	assert.Equal(t, []string{"/a"}, byEndpoint.Keys())
	assert.Equal(t, []string{"1.1.1.1", "1.1.1.1"}, byEndpoint.Values("/a", domain.FieldIP))
	assert.Nil(t, byEndpoint.Values("/a", domain.FieldEndpoint))

	assert.Equal(t, 2, idx.Len())
}

func TestCollapse_Scenario(t *testing.T) {
	snap := build(domaintest.ScenarioEvents()).Collapse()

	entry, ok := snap.IP["1.1.1.1"]
	require.True(t, ok)
	assert.Equal(t, []domain.Count{{Value: "/a", Count: 3}, {Value: "/b", Count: 1}}, entry[domain.FieldEndpoint])
	assert.Equal(t, []domain.Count{{Value: "200", Count: 3}, {Value: "404", Count: 1}}, entry[domain.FieldStatus])
	assert.Equal(t, []domain.Count{{Value: "US", Count: 4}}, entry[domain.FieldRegion])

	assert.Equal(t, []domain.Count{{Value: "1.1.1.1", Count: 3}}, snap.Endpoint["/a"][domain.FieldIP])
	assert.Equal(t, []domain.Count{{Value: "1.1.1.1", Count: 1}}, snap.Endpoint["/b"][domain.FieldIP])
	assert.NoError(t, snap.Validate())
}

func TestCollapse_FirstSeenOrder(t *testing.T) {
	events := []domain.Event{
		{IP: "1.1.1.1", Region: "US", Endpoint: "/b", Status: "200"},
		{IP: "1.1.1.1", Region: "US", Endpoint: "/a", Status: "200"},
		{IP: "1.1.1.1", Region: "US", Endpoint: "/a", Status: "200"},
	}
	snap := build(events).Collapse()
	assert.Equal(t, []domain.Count{{Value: "/b", Count: 1}, {Value: "/a", Count: 2}}, snap.IP["1.1.1.1"][domain.FieldEndpoint])
}

func TestCollapse_Empty(t *testing.T) {
	snap := indexing.NewDualIndex().Collapse()
	assert.NotNil(t, snap.IP)
	assert.NotNil(t, snap.Endpoint)
	assert.Empty(t, snap.IP)
	assert.Empty(t, snap.Endpoint)
}

func TestCollapse_DoesNotMutate(t *testing.T) {
	idx := build(domaintest.ScenarioEvents())
	first := idx.Collapse()
	first.IP["1.1.1.1"][domain.FieldEndpoint][0].Count = 99

	second := idx.Collapse()
	assert.Equal(t, 3, second.IP["1.1.1.1"][domain.FieldEndpoint][0].Count)
	assert.Len(t, idx.Index(domain.DirectionIP).Values("1.1.1.1", domain.FieldEndpoint), 4)
}

func TestTotalFor(t *testing.T) {
	snap := build(domaintest.ScenarioEvents()).Collapse()
	assert.Equal(t, 4, indexing.TotalFor(snap.IP["1.1.1.1"], domain.FieldEndpoint))
	assert.Equal(t, 3, indexing.TotalFor(snap.Endpoint["/a"], domain.FieldIP))
	assert.Equal(t, 0, indexing.TotalFor(snap.Endpoint["/a"], "missing"))
}

func TestProperty_IndexConsistency(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("endpoint counts by IP equal IP counts by endpoint equal N", prop.ForAll(
		func(events []domain.Event) bool {
			snap := build(events).Collapse()
			n := len(events)
			return sumCounts(snap.IP, domain.FieldEndpoint) == n &&
				sumCounts(snap.Endpoint, domain.FieldIP) == n &&
				sumCounts(snap.IP, domain.FieldStatus) == n &&
				sumCounts(snap.Endpoint, domain.FieldRegion) == n
		},
		domaintest.GenEvents(),
	))

	properties.Property("incremental insert matches rebuilding either side alone", prop.ForAll(
		func(events []domain.Event) bool {
			dual := build(events).Collapse()
			byIP := indexing.NewIndex(domain.DirectionIP)
			byEndpoint := indexing.NewIndex(domain.DirectionEndpoint)
			for _, ev := range events {
				byIP.Add(ev)
			}
			for _, ev := range events {
				byEndpoint.Add(ev)
			}
			return assert.ObjectsAreEqual(dual.IP, byIP.Collapse()) &&
				assert.ObjectsAreEqual(dual.Endpoint, byEndpoint.Collapse())
		},
		domaintest.GenEvents(),
	))

	properties.Property("collapse is idempotent", prop.ForAll(
		func(events []domain.Event) bool {
			idx := build(events)
			return assert.ObjectsAreEqual(idx.Collapse(), idx.Collapse())
		},
		domaintest.GenEvents(),
	))

	properties.Property("collapsed snapshots validate", prop.ForAll(
		func(events []domain.Event) bool {
			return build(events).Collapse().Validate() == nil
		},
		domaintest.GenEvents(),
	))

	properties.TestingRun(t)
}
