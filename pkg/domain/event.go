package domain

// Field names used by both index directions.
const (
	FieldIP       = "ip"
	FieldRegion   = "region"
	FieldEndpoint = "endpoint"
	FieldStatus   = "status"
)

// Event represents one parsed access-log record
type Event struct {
	IP       string `json:"ip"`
	Region   string `json:"region"`
	Endpoint string `json:"endpoint"`
	Status   string `json:"status"`
}

// Get returns the value of the named field, or "" for an unknown field.
func (e Event) Get(field string) string {
	switch field {
	case FieldIP:
		return e.IP
	case FieldRegion:
		return e.Region
	case FieldEndpoint:
		return e.Endpoint
	case FieldStatus:
		return e.Status
	}
	return ""
}
