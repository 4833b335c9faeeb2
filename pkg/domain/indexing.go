package domain

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Direction names one side of the dual index. The values double as the
// top-level keys of the persisted results document.
type Direction string

const (
	DirectionIP       Direction = "IP"
	DirectionEndpoint Direction = "ENDPOINT"
)

var (
	ipFields       = []string{FieldRegion, FieldEndpoint, FieldStatus}
	endpointFields = []string{FieldIP, FieldRegion, FieldStatus}
)

// Fields returns the fixed companion fields recorded for every key of the direction.
func (d Direction) Fields() []string {
	switch d {
	case DirectionIP:
		return slices.Clone(ipFields)
	case DirectionEndpoint:
		return slices.Clone(endpointFields)
	}
	return nil
}

// KeyField returns the event field that keys the direction.
func (d Direction) KeyField() string {
	if d == DirectionIP {
		return FieldIP
	}
	return FieldEndpoint
}

// Counterpart returns the field whose counts rank a key in the global summary:
// endpoints an IP requested, or IPs that requested an endpoint.
func (d Direction) Counterpart() string {
	if d == DirectionIP {
		return FieldEndpoint
	}
	return FieldIP
}

// Count is a (value, count) pair. It is encoded as a two element JSON array.
type Count struct {
	Value string `msgpack:"v"`
	Count int    `msgpack:"n"`
}

// MarshalJSON encodes the pair as [value, count]
func (c Count) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{c.Value, c.Count})
}

// UnmarshalJSON decodes a [value, count] array
func (c *Count) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("count pair must be an array: %w", err)
	}
	if len(raw) != 2 {
		return fmt.Errorf("count pair must have 2 elements, got %d", len(raw))
	}
	if err := json.Unmarshal(raw[0], &c.Value); err != nil {
		return fmt.Errorf("count pair value must be a string: %w", err)
	}
	if err := json.Unmarshal(raw[1], &c.Count); err != nil {
		return fmt.Errorf("count pair count must be an integer: %w", err)
	}
	return nil
}

// Entry maps a field name to the collapsed (value, count) pairs observed for one key.
type Entry map[string][]Count

// Total sums the counts recorded under field.
func (e Entry) Total(field string) int {
	total := 0
	for _, c := range e[field] {
		total += c.Count
	}
	return total
}

// Table maps an index key (an IP or an endpoint) to its entry.
type Table map[string]Entry

// Metadata describes the build that produced a snapshot. It is only carried
// by the binary snapshot format; the JSON document holds the two tables alone.
type Metadata struct {
	BuildID string `msgpack:"build_id"`
	Source  string `msgpack:"source"`
	BuiltAt int64  `msgpack:"built_at"`
	Lines   int    `msgpack:"lines"`
	Events  int    `msgpack:"events"`
	Skipped int    `msgpack:"skipped"`
}

// Snapshot is the collapsed, persisted form of the dual index.
type Snapshot struct {
	IP       Table     `json:"IP" msgpack:"ip"`
	Endpoint Table     `json:"ENDPOINT" msgpack:"endpoint"`
	Meta     *Metadata `json:"-" msgpack:"meta,omitempty"`
}

// NewSnapshot creates an empty snapshot
func NewSnapshot() *Snapshot {
	return &Snapshot{
		IP:       make(Table),
		Endpoint: make(Table),
	}
}

// Table returns the table for the given direction.
func (s *Snapshot) Table(d Direction) Table {
	if d == DirectionIP {
		return s.IP
	}
	return s.Endpoint
}

// Validate checks that every entry carries exactly the fixed field set of its
// direction and that every count is positive. Failures wrap ErrCorrupt.
func (s *Snapshot) Validate() error {
	if s.IP == nil || s.Endpoint == nil {
		return fmt.Errorf("%w: missing %s or %s table", ErrCorrupt, DirectionIP, DirectionEndpoint)
	}
	for _, d := range []Direction{DirectionIP, DirectionEndpoint} {
		fields := d.Fields()
		for key, entry := range s.Table(d) {
			if len(entry) != len(fields) {
				return fmt.Errorf("%w: %s entry %q has %d fields, want %v", ErrCorrupt, d, key, len(entry), fields)
			}
			for _, field := range fields {
				pairs, ok := entry[field]
				if !ok {
					return fmt.Errorf("%w: %s entry %q is missing field %q", ErrCorrupt, d, key, field)
				}
				for _, c := range pairs {
					if c.Count <= 0 {
						return fmt.Errorf("%w: %s entry %q field %q has non-positive count for %q", ErrCorrupt, d, key, field, c.Value)
					}
				}
			}
		}
	}
	return nil
}
