package llmclient

import (
	"context"
	"encoding/json"
	"fmt"
)

// Fallback tries the primary client and, on any error, retries the identical
// prompts against the secondary. The secondary's output is returned as-is.
type Fallback struct {
	Primary   Client
	Secondary Client

	// OnFallback is called with the primary's error before the secondary
	// attempt, so callers can surface the switch to the user. May be nil.
	OnFallback func(err error)
}

func NewFallback(primary, secondary Client) *Fallback {
	return &Fallback{Primary: primary, Secondary: secondary}
}

func (f *Fallback) Name() string {
	return fmt.Sprintf("%s->%s", f.Primary.Name(), f.Secondary.Name())
}

func (f *Fallback) Close() error {
	err1 := f.Primary.Close()
	err2 := f.Secondary.Close()
	if err1 != nil {
		return err1
	}
	return err2
}

func (f *Fallback) GenerateJSON(ctx context.Context, system, user string) (json.RawMessage, error) {
	raw, err := f.Primary.GenerateJSON(ctx, system, user)
	if err == nil {
		return raw, nil
	}
	if f.OnFallback != nil {
		f.OnFallback(err)
	}
	raw, err2 := f.Secondary.GenerateJSON(ctx, system, user)
	if err2 != nil {
		return nil, fmt.Errorf("primary %s: %w; secondary %s: %v", f.Primary.Name(), err, f.Secondary.Name(), err2)
	}
	return raw, nil
}

func (f *Fallback) GenerateText(ctx context.Context, system, user string) (string, error) {
	txt, err := f.Primary.GenerateText(ctx, system, user)
	if err == nil {
		return txt, nil
	}
	if f.OnFallback != nil {
		f.OnFallback(err)
	}
	txt, err2 := f.Secondary.GenerateText(ctx, system, user)
	if err2 != nil {
		return "", fmt.Errorf("primary %s: %w; secondary %s: %v", f.Primary.Name(), err, f.Secondary.Name(), err2)
	}
	return txt, nil
}
