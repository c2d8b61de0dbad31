package llmclient

import (
	"context"
	"encoding/json"
	"log"
)

// WithLogging logs request sizes and errors around a Client. Provide a custom
// logger or nil to use log.Default().
func WithLogging(next Client, logger *log.Logger) Client {
	if logger == nil {
		logger = log.Default()
	}
	return &logging{next: next, log: logger}
}

type logging struct {
	next Client
	log  *log.Logger
}

func (l *logging) Name() string { return l.next.Name() }
func (l *logging) Close() error { return l.next.Close() }

func (l *logging) GenerateJSON(ctx context.Context, system, user string) (json.RawMessage, error) {
	l.log.Printf("LLM json request (%s): %d bytes", l.next.Name(), len(system)+len(user))
	raw, err := l.next.GenerateJSON(ctx, system, user)
	if err != nil {
		l.log.Printf("LLM error (%s): %v", l.next.Name(), err)
	}
	return raw, err
}

func (l *logging) GenerateText(ctx context.Context, system, user string) (string, error) {
	l.log.Printf("LLM text request (%s): %d bytes", l.next.Name(), len(system)+len(user))
	txt, err := l.next.GenerateText(ctx, system, user)
	if err != nil {
		l.log.Printf("LLM error (%s): %v", l.next.Name(), err)
	}
	return txt, err
}
