package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adfharrison1/go-logindex/pkg/domain"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		line string
		want domain.Event
	}{
		{
			name: "query string is stripped",
			line: `203.0.113.5 - US - [10/Oct/2023:13:55:36] "GET /api/items?sort=asc HTTP/1.1" 200 512`,
			want: domain.Event{IP: "203.0.113.5", Region: "US", Endpoint: "/api/items", Status: "200"},
		},
		{
			name: "redirect with zero bytes at end of line",
			line: `10.0.0.1 - CA - [x] "GET /x?y=1 HTTP/1.1" 301 0`,
			want: domain.Event{IP: "10.0.0.1", Region: "CA", Endpoint: "/x", Status: "301"},
		},
		{
			name: "trailing fields after byte count",
			line: `192.168.1.20 - DE - [11/Oct/2023:08:00:01] "POST /login HTTP/2.0" 401 87 "-" "curl/8.0"`,
			want: domain.Event{IP: "192.168.1.20", Region: "DE", Endpoint: "/login", Status: "401"},
		},
		{
			name: "encoded characters in path",
			line: `8.8.8.8 - GB - [t] "DELETE /files/a%20b.txt HTTP/1.0" 204 0`,
			want: domain.Event{IP: "8.8.8.8", Region: "GB", Endpoint: "/files/a%20b.txt", Status: "204"},
		},
		{
			name: "non-ASCII path",
			line: `5.5.5.5 - FR - [t] "GET /café/menü?lang=fr HTTP/1.1" 200 64`,
			want: domain.Event{IP: "5.5.5.5", Region: "FR", Endpoint: "/café/menü", Status: "200"},
		},
		{
			name: "patch verb",
			line: `1.1.1.1 - FR - [t] "PATCH /users/7 HTTP/1.1" 500 12`,
			want: domain.Event{IP: "1.1.1.1", Region: "FR", Endpoint: "/users/7", Status: "500"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Failures(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		field string
	}{
		{"no leading ip", `- US - [t] "GET /a HTTP/1.1" 200 1`, domain.FieldIP},
		{"no region", `1.2.3.4 [t] "GET /a HTTP/1.1" 200 1`, domain.FieldRegion},
		{"unknown verb", `1.2.3.4 - US - [t] "FETCH /a HTTP/1.1" 200 1`, domain.FieldEndpoint},
		{"missing verb", `1.2.3.4 - US - [t] "/a HTTP/1.1" 200 1`, domain.FieldEndpoint},
		{"only a query string", `1.2.3.4 - US - [t] "GET ?a=1 HTTP/1.1" 200 1`, domain.FieldEndpoint},
		{"no status", `1.2.3.4 - US - [t] "GET /a HTTP/1.1"`, domain.FieldStatus},
		{"status without byte count", `1.2.3.4 - US - [t] "GET /a HTTP/1.1" 200`, domain.FieldStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.line)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrParse))

			var pe *domain.ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.field, pe.Field)
			assert.Equal(t, tt.line, pe.Text)
			require.NotEmpty(t, pe.Unmatched)
			assert.Equal(t, tt.field, pe.Unmatched[0])
		})
	}
}

func TestParse_ReportsEveryUnmatchedField(t *testing.T) {
	line := `host [x] "GET /x HTTP/1.1" 301 0`
	_, err := Parse(line)

	var pe *domain.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, domain.FieldIP, pe.Field)
	assert.Equal(t, Explain(line), pe.Unmatched)
	assert.Contains(t, err.Error(), "(unmatched: ip, region)")
}

func TestRules_Independent(t *testing.T) {
	line := `10.0.0.1 - CA - [x] "GET /x?y=1 HTTP/1.1" 301 0`
	want := map[string]string{
		domain.FieldIP:       "10.0.0.1",
		domain.FieldRegion:   "CA",
		domain.FieldEndpoint: "/x",
		domain.FieldStatus:   "301",
	}

	rules := Rules()
	require.Len(t, rules, 4)
	for _, rule := range rules {
		got, ok := rule.Extract(line)
		assert.True(t, ok, rule.Field)
		assert.Equal(t, want[rule.Field], got, rule.Field)
	}
}

func TestRules_ReturnsCopy(t *testing.T) {
	r := Rules()
	r[0].Field = "mutated"
	assert.Equal(t, domain.FieldIP, Rules()[0].Field)
}

func TestExplain(t *testing.T) {
	assert.Empty(t, Explain(`10.0.0.1 - CA - [x] "GET /x HTTP/1.1" 301 0`))
	assert.Equal(t, []string{domain.FieldIP, domain.FieldRegion}, Explain(`host [x] "GET /x HTTP/1.1" 301 0`))
	assert.Equal(t,
		[]string{domain.FieldIP, domain.FieldRegion, domain.FieldEndpoint, domain.FieldStatus},
		Explain("garbage"))
}
