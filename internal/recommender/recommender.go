// Package recommender turns natural-language system descriptions into
// validated Designs by prompting a JSON-mode generation provider.
package recommender

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"asciicanvas/internal/design"
	"asciicanvas/internal/llmclient"
)

// ErrEmptyDescription rejects blank input before any provider call is made.
var ErrEmptyDescription = errors.New("recommender: empty system description")

// GenerationError wraps any failure to obtain a valid Design from the
// provider. No partial Design accompanies it.
type GenerationError struct {
	Op  string // "recommend" or "refine"
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("recommender: %s failed: %v", e.Op, e.Err)
}
func (e *GenerationError) Unwrap() error { return e.Err }

const recommendSystemPrompt = `You are an expert system architect. Given a description of an application or system,
you must analyze it and recommend a comprehensive system design.

Your response should include:
1. A clear title for the system
2. A summary description
3. All major components (services, databases, APIs, queues, caches, etc.)
4. Connections between components with their types
5. Important architectural notes or considerations

Be thorough but focused on the most important architectural elements.
Think about scalability, reliability, and best practices.`

const designFormat = `{
  "title": "System Title",
  "description": "Brief system description",
  "components": [
    {
      "name": "Component Name",
      "type": "service|database|api|queue|cache|load_balancer|cdn|storage",
      "description": "What this component does"
    }
  ],
  "connections": [
    {
      "from_component": "Source Component Name",
      "to_component": "Target Component Name",
      "connection_type": "http|grpc|async|sync|websocket",
      "description": "What data/requests flow through this connection"
    }
  ],
  "notes": [
    "Important architectural consideration 1",
    "Important architectural consideration 2"
  ]
}`

const refineSystemPrompt = `You are an expert system architect helping refine a system design based on feedback.`

// Recommender drives the design-generation provider.
type Recommender struct {
	llm llmclient.Client
}

func New(llm llmclient.Client) *Recommender {
	return &Recommender{llm: llm}
}

// Recommend generates a Design from a free-text description. The whole call
// fails on a malformed or schema-violating reply.
func (r *Recommender) Recommend(ctx context.Context, description string) (*design.Design, error) {
	if strings.TrimSpace(description) == "" {
		return nil, ErrEmptyDescription
	}

	user := fmt.Sprintf(`Please analyze this system description and provide a detailed system design:

%s

Respond with a JSON object in this exact format:
%s`, description, designFormat)

	raw, err := r.llm.GenerateJSON(ctx, recommendSystemPrompt, user)
	if err != nil {
		return nil, &GenerationError{Op: "recommend", Err: err}
	}
	d, err := design.ParseDesign(raw)
	if err != nil {
		return nil, &GenerationError{Op: "recommend", Err: err}
	}
	return d, nil
}

// Refine sends the full current Design plus feedback and requires a complete
// replacement Design back. It is not an incremental patch.
func (r *Recommender) Refine(ctx context.Context, current *design.Design, feedback string) (*design.Design, error) {
	user := fmt.Sprintf(`Current design:
%s

User feedback:
%s

Please update the design based on this feedback. Respond with the complete updated design in the same JSON format.`, current.JSON(), feedback)

	raw, err := r.llm.GenerateJSON(ctx, refineSystemPrompt, user)
	if err != nil {
		return nil, &GenerationError{Op: "refine", Err: err}
	}
	d, err := design.ParseDesign(raw)
	if err != nil {
		return nil, &GenerationError{Op: "refine", Err: err}
	}
	return d, nil
}
