package design

import (
	"encoding/json"
	"fmt"
)

// Conventional component types. The Type field stays an open string so a
// provider may emit kinds we have not catalogued yet.
const (
	TypeService      = "service"
	TypeDatabase     = "database"
	TypeAPI          = "api"
	TypeQueue        = "queue"
	TypeCache        = "cache"
	TypeLoadBalancer = "load_balancer"
	TypeCDN          = "cdn"
	TypeStorage      = "storage"
	TypeFunction     = "function"
	TypeCompute      = "compute"
)

// Component is one architectural element of a Design.
type Component struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// Connection is a directed edge between two components, keyed by name.
// Endpoint names are not checked against the component list.
type Connection struct {
	FromComponent  string `json:"from_component"`
	ToComponent    string `json:"to_component"`
	ConnectionType string `json:"connection_type"`
	Description    string `json:"description"`
}

// Design is the complete structured description of a system.
type Design struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Components  []Component  `json:"components"`
	Connections []Connection `json:"connections"`
	Notes       []string     `json:"notes"`
}

// ValidationError reports the first structural problem found in a payload.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("design: invalid %s: %s", e.Field, e.Msg)
}

// ParseDesign decodes raw JSON into a Design and validates it. Either the
// whole payload parses and validates, or an error is returned with no
// partial result.
func ParseDesign(raw []byte) (*Design, error) {
	var d Design
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("design: decode: %w", err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Validate checks that every architectural field is present. Notes may be
// empty; nothing else gets a default.
func (d *Design) Validate() error {
	if d.Title == "" {
		return &ValidationError{Field: "title", Msg: "missing"}
	}
	if d.Description == "" {
		return &ValidationError{Field: "description", Msg: "missing"}
	}
	if d.Components == nil {
		return &ValidationError{Field: "components", Msg: "missing"}
	}
	for i, c := range d.Components {
		if c.Name == "" {
			return &ValidationError{Field: fmt.Sprintf("components[%d].name", i), Msg: "missing"}
		}
		if c.Type == "" {
			return &ValidationError{Field: fmt.Sprintf("components[%d].type", i), Msg: "missing"}
		}
	}
	for i, c := range d.Connections {
		if c.FromComponent == "" {
			return &ValidationError{Field: fmt.Sprintf("connections[%d].from_component", i), Msg: "missing"}
		}
		if c.ToComponent == "" {
			return &ValidationError{Field: fmt.Sprintf("connections[%d].to_component", i), Msg: "missing"}
		}
		if c.ConnectionType == "" {
			return &ValidationError{Field: fmt.Sprintf("connections[%d].connection_type", i), Msg: "missing"}
		}
	}
	return nil
}

// JSON renders the design as indented JSON, the form sent to providers.
func (d *Design) JSON() string {
	b, _ := json.MarshalIndent(d, "", "  ")
	return string(b)
}
