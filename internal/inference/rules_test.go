package inference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asciicanvas/internal/design"
)

func comp(name, typ string) design.Component {
	return design.Component{Name: name, Type: typ, Description: typ}
}

func TestInferBasicTopology(t *testing.T) {
	components := []design.Component{
		comp("lb1", design.TypeLoadBalancer),
		comp("svc1", design.TypeService),
		comp("db1", design.TypeDatabase),
	}

	conns := Infer(components)
	require.Len(t, conns, 2)

	assert.Equal(t, design.Connection{
		FromComponent:  "lb1",
		ToComponent:    "svc1",
		ConnectionType: "http",
		Description:    "Load balancer distributes traffic to service",
	}, conns[0])
	assert.Equal(t, design.Connection{
		FromComponent:  "svc1",
		ToComponent:    "db1",
		ConnectionType: "sync",
		Description:    "Service reads/writes data to database",
	}, conns[1])
}

func TestInferStorageCappedToFirstPair(t *testing.T) {
	components := []design.Component{
		comp("svc1", design.TypeService),
		comp("svc2", design.TypeService),
		comp("bucket1", design.TypeStorage),
		comp("bucket2", design.TypeStorage),
	}

	conns := Infer(components)
	require.Len(t, conns, 1)
	assert.Equal(t, "svc1", conns[0].FromComponent)
	assert.Equal(t, "bucket1", conns[0].ToComponent)
	assert.Equal(t, "sync", conns[0].ConnectionType)
}

func TestInferCrossProductOrder(t *testing.T) {
	components := []design.Component{
		comp("lb1", design.TypeLoadBalancer),
		comp("lb2", design.TypeLoadBalancer),
		comp("svc1", design.TypeService),
		comp("svc2", design.TypeService),
	}

	conns := Infer(components)
	require.Len(t, conns, 4)
	assert.Equal(t, "lb1", conns[0].FromComponent)
	assert.Equal(t, "svc1", conns[0].ToComponent)
	assert.Equal(t, "lb1", conns[1].FromComponent)
	assert.Equal(t, "svc2", conns[1].ToComponent)
	assert.Equal(t, "lb2", conns[2].FromComponent)
}

func TestInferAPIGatewayMatchesLambdaByNameOrType(t *testing.T) {
	components := []design.Component{
		comp("rest-api", design.TypeAPI),
		comp("resize-fn", design.TypeFunction),
		comp("LegacyLambdaWorker", design.TypeService),
	}

	conns := Infer(components)

	var apiEdges []design.Connection
	for _, c := range conns {
		if c.FromComponent == "rest-api" {
			apiEdges = append(apiEdges, c)
		}
	}
	require.Len(t, apiEdges, 2)
	assert.Equal(t, "resize-fn", apiEdges[0].ToComponent)
	assert.Equal(t, "LegacyLambdaWorker", apiEdges[1].ToComponent)
	for _, e := range apiEdges {
		assert.Equal(t, "http", e.ConnectionType)
	}
}

func TestInferFunctionsPublishToQueues(t *testing.T) {
	components := []design.Component{
		comp("worker", design.TypeFunction),
		comp("jobs", design.TypeQueue),
		comp("sessions", design.TypeCache),
	}

	conns := Infer(components)
	require.Len(t, conns, 2)
	assert.Equal(t, "sync", conns[0].ConnectionType)
	assert.Equal(t, "sessions", conns[0].ToComponent)
	assert.Equal(t, "async", conns[1].ConnectionType)
	assert.Equal(t, "jobs", conns[1].ToComponent)
}

func TestInferNoDeduplication(t *testing.T) {
	// A component typed function and named with "Lambda" satisfies rule 5's
	// filter once, but a pair can still accumulate edges across rules.
	components := []design.Component{
		comp("svc1", design.TypeService),
		comp("db1", design.TypeDatabase),
		comp("db1", design.TypeDatabase), // duplicate names are not rejected
	}

	conns := Infer(components)
	assert.Len(t, conns, 2)
}

func TestInferEmptyComponents(t *testing.T) {
	assert.Empty(t, Infer(nil))
}
