package llmclient

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackPrimarySucceeds(t *testing.T) {
	primary := &FakeClient{ClientName: "p", Text: "primary art"}
	secondary := &FakeClient{ClientName: "s", Text: "secondary art"}
	f := NewFallback(primary, secondary)

	txt, err := f.GenerateText(context.Background(), "sys", "usr")
	require.NoError(t, err)
	assert.Equal(t, "primary art", txt)
	assert.Equal(t, 0, secondary.TextCalls)
}

func TestFallbackSecondaryGetsSamePrompts(t *testing.T) {
	primary := &FakeClient{ClientName: "p", Err: errors.New("quota exceeded")}
	secondary := &FakeClient{ClientName: "s", Text: "secondary art"}
	f := NewFallback(primary, secondary)

	var notified error
	f.OnFallback = func(err error) { notified = err }

	txt, err := f.GenerateText(context.Background(), "sys prompt", "usr prompt")
	require.NoError(t, err)
	assert.Equal(t, "secondary art", txt)
	assert.Equal(t, "sys prompt", secondary.LastSystem)
	assert.Equal(t, "usr prompt", secondary.LastUser)
	assert.EqualError(t, notified, "quota exceeded")
}

func TestFallbackTriesSecondaryOnPermanentError(t *testing.T) {
	primary := &FakeClient{ClientName: "p", Err: NewPermanentError(errors.New("context length exceeded"))}
	secondary := &FakeClient{ClientName: "s", Text: "secondary art"}
	f := NewFallback(primary, secondary)

	txt, err := f.GenerateText(context.Background(), "sys", "usr")
	require.NoError(t, err)
	assert.Equal(t, "secondary art", txt)
	assert.Equal(t, 1, secondary.TextCalls)
}

func TestFallbackBothFail(t *testing.T) {
	primary := &FakeClient{ClientName: "p", Err: errors.New("down")}
	secondary := &FakeClient{ClientName: "s", Err: errors.New("also down")}
	f := NewFallback(primary, secondary)

	_, err := f.GenerateText(context.Background(), "sys", "usr")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "down")
	assert.Contains(t, err.Error(), "also down")
}

func TestFallbackJSON(t *testing.T) {
	primary := &FakeClient{ClientName: "p", Err: errors.New("down")}
	secondary := &FakeClient{ClientName: "s", JSON: []byte(`{"ok":true}`)}
	f := NewFallback(primary, secondary)

	raw, err := f.GenerateJSON(context.Background(), "sys", "usr")
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(raw))
}
