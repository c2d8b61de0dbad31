package artist

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asciicanvas/internal/design"
	"asciicanvas/internal/llmclient"
)

func sampleDesign() *design.Design {
	return &design.Design{
		Title:       "Blog Platform",
		Description: "A simple blog",
		Components: []design.Component{
			{Name: "API", Type: "service", Description: "Serves posts"},
		},
		Connections: []design.Connection{},
		Notes:       []string{},
	}
}

func TestRenderIncludesDesignAndStyle(t *testing.T) {
	fake := &llmclient.FakeClient{Text: "┌────┐\n│API │\n└────┘"}
	a := New(fake)

	diagram, err := a.Render(context.Background(), sampleDesign(), StyleCompact)
	require.NoError(t, err)
	assert.Contains(t, diagram, "API")
	assert.Contains(t, fake.LastUser, "Blog Platform")
	assert.Contains(t, fake.LastUser, "~80 characters")
	assert.Contains(t, fake.LastSystem, "box-drawing characters")
}

func TestRenderUnknownStyleFallsBackToDetailed(t *testing.T) {
	fake := &llmclient.FakeClient{Text: "art"}
	a := New(fake)

	_, err := a.Render(context.Background(), sampleDesign(), "isometric")
	require.NoError(t, err)
	assert.Contains(t, fake.LastUser, "detailed, spacious diagram")
}

func TestRenderEmptyReply(t *testing.T) {
	fake := &llmclient.FakeClient{Text: "  \n "}
	a := New(fake)

	_, err := a.Render(context.Background(), sampleDesign(), StyleDetailed)
	require.ErrorIs(t, err, llmclient.ErrEmptyResponse)
}

func TestRenderError(t *testing.T) {
	fake := &llmclient.FakeClient{Err: errors.New("provider down")}
	a := New(fake)

	_, err := a.Render(context.Background(), sampleDesign(), StyleDetailed)
	require.Error(t, err)
}

func TestRenderMemoized(t *testing.T) {
	fake := &llmclient.FakeClient{Text: "art"}
	a := New(fake)

	_, err := a.Render(context.Background(), sampleDesign(), StyleDetailed)
	require.NoError(t, err)
	_, err = a.Render(context.Background(), sampleDesign(), StyleDetailed)
	require.NoError(t, err)
	assert.Equal(t, 1, fake.TextCalls)

	// A different style misses the cache.
	_, err = a.Render(context.Background(), sampleDesign(), StyleCompact)
	require.NoError(t, err)
	assert.Equal(t, 2, fake.TextCalls)
}

func TestRefineDiagramSendsPrevious(t *testing.T) {
	fake := &llmclient.FakeClient{Text: "better art"}
	a := New(fake)

	got, err := a.RefineDiagram(context.Background(), "old art", sampleDesign(), "make arrows thicker", StyleDetailed)
	require.NoError(t, err)
	assert.Equal(t, "better art", got)
	assert.Contains(t, fake.LastUser, "old art")
	assert.Contains(t, fake.LastUser, "make arrows thicker")
}

func TestRefineDiagramReplacesCachedRender(t *testing.T) {
	fake := &llmclient.FakeClient{Text: "old art"}
	a := New(fake)

	_, err := a.Render(context.Background(), sampleDesign(), StyleCompact)
	require.NoError(t, err)

	fake.Text = "better art"
	_, err = a.RefineDiagram(context.Background(), "old art", sampleDesign(), "make arrows thicker", StyleCompact)
	require.NoError(t, err)

	// Rendering the same design+style again serves the refined diagram
	// from the cache.
	got, err := a.Render(context.Background(), sampleDesign(), StyleCompact)
	require.NoError(t, err)
	assert.Equal(t, "better art", got)
	assert.Equal(t, 2, fake.TextCalls, "second render must not call the provider")
}

func TestValidStyle(t *testing.T) {
	for _, s := range Styles() {
		assert.True(t, ValidStyle(s), s)
	}
	assert.False(t, ValidStyle("isometric"))
	assert.False(t, ValidStyle(""))
}

func TestRenderThroughFallback(t *testing.T) {
	primary := &llmclient.FakeClient{ClientName: "p", Err: errors.New("down")}
	secondary := &llmclient.FakeClient{ClientName: "s", Text: "fallback art"}
	a := New(llmclient.NewFallback(primary, secondary))

	diagram, err := a.Render(context.Background(), sampleDesign(), StyleFlowchart)
	require.NoError(t, err)
	assert.Equal(t, "fallback art", diagram)
	// The secondary received the same style instructions verbatim.
	assert.Contains(t, secondary.LastUser, "flowchart-style diagram")
	assert.Equal(t, primary.LastUser, secondary.LastUser)
	assert.Equal(t, primary.LastSystem, secondary.LastSystem)
}
