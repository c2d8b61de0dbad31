// Package console handles all interactive terminal I/O: the banner, colored
// status lines, and the prompt/confirm/multiline helpers. Reader and writer
// are injected so flows can be driven from tests.
package console

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

const banner = `
╔═══════════════════════════════════════════════════════╗
║                                                       ║
║           ASCII CANVAS AI                             ║
║      System Design Diagram Generator                  ║
║                                                       ║
╚═══════════════════════════════════════════════════════╝
`

var (
	cyan   = color.New(color.FgCyan)
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed)
	bold   = color.New(color.Bold)
)

type Console struct {
	in  *bufio.Reader
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out}
}

func Default() *Console {
	return New(os.Stdin, os.Stdout)
}

func (c *Console) Banner() {
	bold.Fprint(c.out, banner)
}

func (c *Console) Println(args ...any) {
	fmt.Fprintln(c.out, args...)
}

func (c *Console) Printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *Console) Infof(format string, args ...any) {
	cyan.Fprintf(c.out, format+"\n", args...)
}

func (c *Console) Successf(format string, args ...any) {
	green.Fprintf(c.out, "✓ "+format+"\n", args...)
}

func (c *Console) Warnf(format string, args ...any) {
	yellow.Fprintf(c.out, format+"\n", args...)
}

func (c *Console) Errorf(format string, args ...any) {
	red.Fprintf(c.out, format+"\n", args...)
}

// Ask prompts for a single line. An empty reply returns def.
func (c *Console) Ask(prompt, def string) string {
	if def != "" {
		fmt.Fprintf(c.out, "%s [%s]: ", prompt, def)
	} else {
		fmt.Fprintf(c.out, "%s: ", prompt)
	}
	line, _ := c.in.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return def
	}
	return line
}

// AskChoice prompts until one of choices is entered; empty reply returns def.
func (c *Console) AskChoice(prompt string, choices []string, def string) string {
	for {
		fmt.Fprintf(c.out, "%s (%s) [%s]: ", prompt, strings.Join(choices, "/"), def)
		line, err := c.in.ReadString('\n')
		line = strings.TrimSpace(strings.ToLower(line))
		if line == "" {
			return def
		}
		for _, choice := range choices {
			if line == choice {
				return choice
			}
		}
		if err != nil {
			return def
		}
		c.Warnf("Please choose one of: %s", strings.Join(choices, ", "))
	}
}

// Confirm asks a yes/no question; empty reply returns def.
func (c *Console) Confirm(prompt string, def bool) bool {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	fmt.Fprintf(c.out, "%s [%s]: ", prompt, hint)
	line, _ := c.in.ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	case "n", "no":
		return false
	default:
		return def
	}
}

// Multiline reads lines until "END" on its own line or EOF.
func (c *Console) Multiline(prompt string) string {
	bold.Fprintf(c.out, "\n%s\n", prompt)
	fmt.Fprintln(c.out, "(Press Ctrl+D when done, or type 'END' on a new line)")
	fmt.Fprintln(c.out)

	var lines []string
	for {
		line, err := c.in.ReadString('\n')
		trimmed := strings.TrimRight(line, "\r\n")
		if strings.EqualFold(strings.TrimSpace(trimmed), "END") {
			break
		}
		if trimmed != "" || err == nil {
			lines = append(lines, trimmed)
		}
		if err != nil {
			break
		}
	}
	return strings.Join(lines, "\n")
}

// Pause waits for Enter; used by the guided authentication flow.
func (c *Console) Pause(prompt string) {
	fmt.Fprintf(c.out, "%s", prompt)
	_, _ = c.in.ReadString('\n')
}
