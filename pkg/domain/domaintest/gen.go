// Package domaintest provides event fixtures and gopter generators shared by
// the package tests.
package domaintest

import (
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"

	"github.com/adfharrison1/go-logindex/pkg/domain"
)

// GenEvent generates events drawn from small value pools so that keys repeat
// and counts grow above one.
func GenEvent() gopter.Gen {
	return gopter.CombineGens(
		gen.OneConstOf("1.1.1.1", "2.2.2.2", "10.0.0.1", "203.0.113.5"),
		gen.OneConstOf("US", "CA", "DE", "GB"),
		gen.OneConstOf("/", "/a", "/b", "/api/items", "/login"),
		gen.OneConstOf("200", "301", "404", "500"),
	).Map(func(values []interface{}) domain.Event {
		return domain.Event{
			IP:       values[0].(string),
			Region:   values[1].(string),
			Endpoint: values[2].(string),
			Status:   values[3].(string),
		}
	})
}

// GenEvents generates event sequences, including the empty sequence.
func GenEvents() gopter.Gen {
	return gen.SliceOf(GenEvent())
}

// Repeat returns n copies of ev.
func Repeat(ev domain.Event, n int) []domain.Event {
	out := make([]domain.Event, n)
	for i := range out {
		out[i] = ev
	}
	return out
}

// ScenarioEvents returns three /a hits answered 200 and one /b hit answered 404,
// all from 1.1.1.1.
func ScenarioEvents() []domain.Event {
	events := Repeat(domain.Event{IP: "1.1.1.1", Region: "US", Endpoint: "/a", Status: "200"}, 3)
	return append(events, domain.Event{IP: "1.1.1.1", Region: "US", Endpoint: "/b", Status: "404"})
}
