package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestConsole(input string) (*Console, *bytes.Buffer) {
	var out bytes.Buffer
	return New(strings.NewReader(input), &out), &out
}

func TestAskDefault(t *testing.T) {
	c, _ := newTestConsole("\n")
	assert.Equal(t, "us-east-1", c.Ask("Enter AWS region to scan", "us-east-1"))
}

func TestAskValue(t *testing.T) {
	c, _ := newTestConsole("eu-west-1\n")
	assert.Equal(t, "eu-west-1", c.Ask("Enter AWS region to scan", "us-east-1"))
}

func TestAskChoiceRejectsUnknown(t *testing.T) {
	c, out := newTestConsole("bogus\ncompact\n")
	got := c.AskChoice("Choose diagram style", []string{"detailed", "compact", "flowchart"}, "detailed")
	assert.Equal(t, "compact", got)
	assert.Contains(t, out.String(), "Please choose one of")
}

func TestAskChoiceDefaultOnEmpty(t *testing.T) {
	c, _ := newTestConsole("\n")
	got := c.AskChoice("Choose diagram style", []string{"detailed", "compact", "flowchart"}, "detailed")
	assert.Equal(t, "detailed", got)
}

func TestConfirm(t *testing.T) {
	for input, want := range map[string]bool{"y\n": true, "yes\n": true, "n\n": false, "\n": false} {
		c, _ := newTestConsole(input)
		assert.Equal(t, want, c.Confirm("Save?", false), "input %q", input)
	}
	c, _ := newTestConsole("\n")
	assert.True(t, c.Confirm("Save?", true))
}

func TestMultilineENDTerminated(t *testing.T) {
	c, _ := newTestConsole("a web app\nwith users\nEND\nignored\n")
	assert.Equal(t, "a web app\nwith users", c.Multiline("Describe your system:"))
}

func TestMultilineEOFTerminated(t *testing.T) {
	c, _ := newTestConsole("a web app\nwith users")
	assert.Equal(t, "a web app\nwith users", c.Multiline("Describe your system:"))
}

func TestMultilineEmpty(t *testing.T) {
	c, _ := newTestConsole("")
	assert.Equal(t, "", c.Multiline("Describe your system:"))
}
