package domain

import (
	"encoding/json"
	"time"
)

// DefaultLimit is the number of ranked entries returned when no limit is given.
const DefaultLimit = 10

// Result is the output of one query. A summary (empty term) fills Endpoints
// and IPs; a drill-down fills Direction and Fields.
type Result struct {
	Term      string
	Direction Direction
	Endpoints []Count
	IPs       []Count
	Fields    Entry
}

// IsSummary reports whether the result is a global top-N summary.
func (r *Result) IsSummary() bool {
	return r.Term == ""
}

// MarshalJSON renders a summary as {"endpoints": [...], "ips": [...]} and a
// drill-down as {field: [...]}, matching the shape printed by the CLI.
func (r *Result) MarshalJSON() ([]byte, error) {
	if r.IsSummary() {
		endpoints, ips := r.Endpoints, r.IPs
		if endpoints == nil {
			endpoints = []Count{}
		}
		if ips == nil {
			ips = []Count{}
		}
		return json.Marshal(map[string][]Count{
			"endpoints": endpoints,
			"ips":       ips,
		})
	}
	fields := r.Fields
	if fields == nil {
		fields = Entry{}
	}
	return json.Marshal(fields)
}

// BuildStats summarizes one pass of the aggregation pipeline.
type BuildStats struct {
	BuildID  string        `json:"build_id"`
	Source   string        `json:"source"`
	Lines    int           `json:"lines"`
	Events   int           `json:"events"`
	Skipped  int           `json:"skipped"`
	Duration time.Duration `json:"duration"`
}

// Metadata converts the stats into snapshot metadata stamped with builtAt.
func (s *BuildStats) Metadata(builtAt time.Time) *Metadata {
	return &Metadata{
		BuildID: s.BuildID,
		Source:  s.Source,
		BuiltAt: builtAt.Unix(),
		Lines:   s.Lines,
		Events:  s.Events,
		Skipped: s.Skipped,
	}
}
