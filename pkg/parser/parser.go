// Package parser turns access-log lines into domain events.
//
// Each field is extracted by its own Rule so rules can be tested and
// reported on independently. A line is accepted only when every rule matches.
package parser

import (
	"regexp"
	"strings"

	"github.com/adfharrison1/go-logindex/pkg/domain"
)

const (
	// Verbs recognised in the request line.
	verbs = `POST|GET|PUT|DELETE|OPTIONS|HEAD|PATCH`
	// Path and protocol characters. Letters and digits match in any script.
	pathChars     = `[/\pL\pN_.=%&+?-]`
	protocolChars = `[\pL\pN_/.]`
)

// Rule extracts a single field from a raw log line.
type Rule struct {
	Field   string
	Pattern *regexp.Regexp
	Group   int
	Clean   func(string) string
}

// Extract applies the rule to line. It reports false when the pattern does not
// match or the cleaned value is empty.
func (r Rule) Extract(line string) (string, bool) {
	m := r.Pattern.FindStringSubmatch(line)
	if m == nil || r.Group >= len(m) {
		return "", false
	}
	value := m[r.Group]
	if r.Clean != nil {
		value = r.Clean(value)
	}
	return value, value != ""
}

var rules = []Rule{
	{
		Field:   domain.FieldIP,
		Pattern: regexp.MustCompile(`^[\d.]+`),
	},
	{
		Field:   domain.FieldRegion,
		Pattern: regexp.MustCompile(`- (\S{2}) -`),
		Group:   1,
	},
	{
		Field:   domain.FieldEndpoint,
		Pattern: regexp.MustCompile(`"(?:` + verbs + `) (` + pathChars + `*) ` + protocolChars + `*"`),
		Group:   1,
		Clean:   stripQuery,
	},
	{
		// The status is the first integer after the request line that is itself
		// followed by an integer (the byte count).
		Field:   domain.FieldStatus,
		Pattern: regexp.MustCompile(`"(?:` + verbs + `) ` + pathChars + `* ` + protocolChars + `*"\s+(\d+)\s+\d+(?:\s|$)`),
		Group:   1,
	},
}

func stripQuery(endpoint string) string {
	if i := strings.IndexByte(endpoint, '?'); i >= 0 {
		return endpoint[:i]
	}
	return endpoint
}

// Rules returns the extraction rules in evaluation order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// Parse extracts an event from line. The first rule that fails is reported as
// a *domain.ParseError listing every unmatched field.
func Parse(line string) (domain.Event, error) {
	var ev domain.Event
	for _, rule := range rules {
		value, ok := rule.Extract(line)
		if !ok {
			return domain.Event{}, &domain.ParseError{
				Field:     rule.Field,
				Text:      line,
				Unmatched: Explain(line),
			}
		}
		switch rule.Field {
		case domain.FieldIP:
			ev.IP = value
		case domain.FieldRegion:
			ev.Region = value
		case domain.FieldEndpoint:
			ev.Endpoint = value
		case domain.FieldStatus:
			ev.Status = value
		}
	}
	return ev, nil
}

// Explain lists every field whose rule does not match line. An empty result
// means the line parses.
func Explain(line string) []string {
	var failed []string
	for _, rule := range rules {
		if _, ok := rule.Extract(line); !ok {
			failed = append(failed, rule.Field)
		}
	}
	return failed
}
