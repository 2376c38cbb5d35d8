package eplugin

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Resource is one JSON:API record as returned by the payroll API.
type Resource struct {
	ID            string                  `json:"id"`
	Type          string                  `json:"type"`
	Attributes    json.RawMessage         `json:"attributes"`
	Relationships map[string]Relationship `json:"relationships,omitempty"`
	Links         Links                   `json:"links,omitempty"`
}

type Relationship struct {
	Links Links `json:"links"`
}

type Links struct {
	Self    string `json:"self,omitempty"`
	Related string `json:"related,omitempty"`
	Next    string `json:"next,omitempty"`
}

type collection struct {
	Data  []Resource `json:"data"`
	Links Links      `json:"links"`
}

type document struct {
	Data json.RawMessage `json:"data"`
}

func (r Resource) decode(dst any) error {
	if len(r.Attributes) == 0 || bytes.Equal(r.Attributes, []byte("null")) {
		return fmt.Errorf("%s %q: missing attributes", r.Type, r.ID)
	}
	if err := json.Unmarshal(r.Attributes, dst); err != nil {
		return fmt.Errorf("%s %q: %w", r.Type, r.ID, err)
	}
	return nil
}

// relatedLink returns the detail link of a record: a related link under
// relationships (preferring "detalhe"), falling back to links.related.
func (r Resource) relatedLink() string {
	if rel, ok := r.Relationships["detalhe"]; ok && rel.Links.Related != "" {
		return rel.Links.Related
	}
	for _, rel := range r.Relationships {
		if rel.Links.Related != "" {
			return rel.Links.Related
		}
	}
	return r.Links.Related
}

// flexString accepts a JSON string or number; cpfcnpj and cpf come both ways.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// flexTime accepts a date or a date-time.
type flexTime struct{ time.Time }

var timeLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"}

func (t *flexTime) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	s, err := strconv.Unquote(string(b))
	if err != nil {
		return fmt.Errorf("time: %w", err)
	}
	if s == "" {
		return nil
	}
	for _, l := range timeLayouts {
		if v, err := time.Parse(l, s); err == nil {
			t.Time = v
			return nil
		}
	}
	return fmt.Errorf("time: unsupported format %q", s)
}
