package llmclient

import (
	"context"
	"encoding/json"
)

// FakeClient returns canned payloads for offline use and tests.
type FakeClient struct {
	ClientName string
	JSON       json.RawMessage
	Text       string
	Err        error

	// Recorded last prompts, for assertions.
	LastSystem string
	LastUser   string
	JSONCalls  int
	TextCalls  int
}

func (f *FakeClient) Name() string {
	if f.ClientName == "" {
		return "FakeLLM"
	}
	return f.ClientName
}

func (f *FakeClient) Close() error { return nil }

func (f *FakeClient) GenerateJSON(ctx context.Context, system, user string) (json.RawMessage, error) {
	f.JSONCalls++
	f.LastSystem, f.LastUser = system, user
	if f.Err != nil {
		return nil, f.Err
	}
	return f.JSON, nil
}

func (f *FakeClient) GenerateText(ctx context.Context, system, user string) (string, error) {
	f.TextCalls++
	f.LastSystem, f.LastUser = system, user
	if f.Err != nil {
		return "", f.Err
	}
	return f.Text, nil
}
