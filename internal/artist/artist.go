// Package artist renders Designs into ASCII diagrams by prompting a
// text-generation provider, usually wrapped in a provider fallback.
package artist

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"asciicanvas/internal/design"
	"asciicanvas/internal/llmclient"
)

// Styles accepted by Render. Unknown styles fall back to StyleDetailed's
// instruction text.
const (
	StyleDetailed  = "detailed"
	StyleCompact   = "compact"
	StyleFlowchart = "flowchart"
)

func Styles() []string {
	return []string{StyleDetailed, StyleCompact, StyleFlowchart}
}

// ValidStyle reports whether s is one of the accepted style names.
func ValidStyle(s string) bool {
	_, ok := styleInstructions[s]
	return ok
}

var styleInstructions = map[string]string{
	StyleDetailed:  "Create a detailed, spacious diagram with boxes and clear connections. Use box-drawing characters.",
	StyleCompact:   "Create a compact diagram that fits in ~80 characters width. Be space-efficient.",
	StyleFlowchart: "Create a flowchart-style diagram showing the flow of data/requests through the system.",
}

const renderSystemPrompt = `You are an expert at creating beautiful ASCII art diagrams for system architectures.

Your diagrams should:
- Use box-drawing characters (─ │ ┌ ┐ └ ┘ ├ ┤ ┬ ┴ ┼ ═ ║ ╔ ╗ ╚ ╝)
- Clearly show all components as labeled boxes
- Show connections between components with arrows (→ ← ↔ ↓ ↑)
- Include connection labels where helpful
- Be aesthetically pleasing and easy to understand
- Maintain proper alignment and spacing
- Add a legend if needed for symbols

Be creative but clear. The diagram should be professional and immediately understandable.`

const refineSystemPrompt = `You are an expert at creating and refining ASCII art diagrams.`

// Artist drives the diagram provider. Renders are memoized per
// design+style so a refinement loop does not repeat identical calls.
type Artist struct {
	llm   llmclient.Client
	cache *expirable.LRU[string, string]
}

func New(llm llmclient.Client) *Artist {
	return &Artist{
		llm:   llm,
		cache: expirable.NewLRU[string, string](32, nil, 15*time.Minute),
	}
}

// Render produces an ASCII diagram for the design. The reply is free-form
// text and is accepted as-is, except that an empty reply is an error.
func (a *Artist) Render(ctx context.Context, d *design.Design, style string) (string, error) {
	instructions, ok := styleInstructions[style]
	if !ok {
		instructions = styleInstructions[StyleDetailed]
	}
	designJSON := d.JSON()

	key := cacheKey(designJSON, style)
	if diagram, ok := a.cache.Get(key); ok {
		return diagram, nil
	}

	user := fmt.Sprintf(`Create an ASCII art diagram for this system design:

%s

Style preference: %s

Requirements:
1. Show all components from the design
2. Indicate all connections with appropriate arrows
3. Label connection types where space permits
4. Add a title at the top
5. Optionally add notes at the bottom if they're important

Create a beautiful, clear ASCII diagram now:`, designJSON, instructions)

	diagram, err := a.llm.GenerateText(ctx, renderSystemPrompt, user)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(diagram) == "" {
		return "", llmclient.ErrEmptyResponse
	}
	a.cache.Add(key, diagram)
	return diagram, nil
}

// RefineDiagram returns a full replacement diagram built from the previous
// text plus feedback, and replaces the cached render for the given style.
func (a *Artist) RefineDiagram(ctx context.Context, current string, d *design.Design, feedback, style string) (string, error) {
	user := fmt.Sprintf(`Current diagram:
%s

System design:
%s

User feedback:
%s

Please update the ASCII diagram based on this feedback while maintaining the quality and clarity.
Create the improved diagram now:`, current, d.JSON(), feedback)

	diagram, err := a.llm.GenerateText(ctx, refineSystemPrompt, user)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(diagram) == "" {
		return "", llmclient.ErrEmptyResponse
	}
	a.cache.Add(cacheKey(d.JSON(), style), diagram)
	return diagram, nil
}

func cacheKey(designJSON, style string) string {
	h := sha256.New()
	h.Write([]byte(designJSON))
	h.Write([]byte{0})
	h.Write([]byte(style))
	return hex.EncodeToString(h.Sum(nil))
}
