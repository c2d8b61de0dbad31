// Package inference synthesizes a plausible connection graph from a typed
// component list using common AWS architecture patterns.
package inference

import (
	"strings"

	"asciicanvas/internal/design"
)

type filter func(design.Component) bool

// rule links every component matched by from to every component matched by
// to, in component-list order. capFirst limits the rule to the first match
// on each side to avoid a visual explosion of edges.
type rule struct {
	from        filter
	to          filter
	connType    string
	description string
	capFirst    bool
}

func typeIs(types ...string) filter {
	return func(c design.Component) bool {
		for _, t := range types {
			if c.Type == t {
				return true
			}
		}
		return false
	}
}

// Lambda functions discovered by name keep matching even when typed as
// something else. Kept for parity with the scanner's naming convention.
func lambdaLike(c design.Component) bool {
	return c.Type == design.TypeFunction || strings.Contains(c.Name, "Lambda")
}

var rules = []rule{
	{
		from:        typeIs(design.TypeLoadBalancer),
		to:          typeIs(design.TypeService, design.TypeCompute),
		connType:    "http",
		description: "Load balancer distributes traffic to service",
	},
	{
		from:        typeIs(design.TypeService, design.TypeCompute, design.TypeFunction),
		to:          typeIs(design.TypeDatabase),
		connType:    "sync",
		description: "Service reads/writes data to database",
	},
	{
		from:        typeIs(design.TypeService, design.TypeCompute, design.TypeFunction),
		to:          typeIs(design.TypeCache),
		connType:    "sync",
		description: "Service uses cache for performance",
	},
	{
		from:        typeIs(design.TypeService, design.TypeCompute, design.TypeFunction),
		to:          typeIs(design.TypeQueue),
		connType:    "async",
		description: "Service publishes messages to queue",
	},
	{
		from:        typeIs(design.TypeAPI),
		to:          lambdaLike,
		connType:    "http",
		description: "API Gateway routes requests to Lambda function",
	},
	{
		from:        typeIs(design.TypeService),
		to:          typeIs(design.TypeStorage),
		connType:    "sync",
		description: "Service stores/retrieves files from storage",
		capFirst:    true,
	},
}

// Infer applies the rule table in order. Within a rule the cross product
// follows the component list's order. Edges are not deduplicated.
func Infer(components []design.Component) []design.Connection {
	var connections []design.Connection
	for _, r := range rules {
		froms := selectComponents(components, r.from)
		tos := selectComponents(components, r.to)
		if r.capFirst {
			if len(froms) > 1 {
				froms = froms[:1]
			}
			if len(tos) > 1 {
				tos = tos[:1]
			}
		}
		for _, f := range froms {
			for _, t := range tos {
				connections = append(connections, design.Connection{
					FromComponent:  f.Name,
					ToComponent:    t.Name,
					ConnectionType: r.connType,
					Description:    r.description,
				})
			}
		}
	}
	return connections
}

func selectComponents(components []design.Component, match filter) []design.Component {
	var out []design.Component
	for _, c := range components {
		if match(c) {
			out = append(out, c)
		}
	}
	return out
}
