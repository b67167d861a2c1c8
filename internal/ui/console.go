// Where: internal/ui/console.go
// What: Console output helpers for the text report and status lines.
// Why: Keep emoji prefixes and indentation uniform across commands.
package ui

import (
	"fmt"
	"io"
	"strings"
)

const indent = "   "

// Console provides helper methods for formatted output.
type Console struct {
	Out io.Writer
}

// New creates a new Console writing to the provided writer.
func New(out io.Writer) *Console {
	return &Console{Out: out}
}

// Header prints a section header with an emoji.
// Example: 📄 docker/Dockerfile (dockerfile)
func (c *Console) Header(emoji, title string) {
	fmt.Fprintf(c.Out, "%s %s\n", emoji, title)
}

// Item prints a key-value item with indentation.
// Example:    Commands:          3
func (c *Console) Item(key string, value any) {
	fmt.Fprintf(c.Out, "%s%-18s %v\n", indent, key+":", value)
}

// ItemPlain prints a generic indented line.
func (c *Console) ItemPlain(msg string) {
	fmt.Fprintf(c.Out, "%s%s\n", indent, msg)
}

// Command prints a shell command line followed by its indented description.
// Example:    $ docker build -t app .
func (c *Console) Command(line, description string) {
	fmt.Fprintf(c.Out, "%s$ %s\n", indent, line)
	if description = strings.TrimSpace(description); description != "" {
		fmt.Fprintf(c.Out, "%s%s%s\n", indent, indent, description)
	}
}

// Success prints a success message with a checkmark.
func (c *Console) Success(msg string) {
	fmt.Fprintf(c.Out, "✅ %s\n", msg)
}

// Info prints an info message with an arrow.
func (c *Console) Info(msg string) {
	fmt.Fprintf(c.Out, "➜ %s\n", msg)
}

// Warn prints a warning line.
func (c *Console) Warn(msg string) {
	fmt.Fprintf(c.Out, "⚠️  %s\n", msg)
}

// Fail prints a failure line.
func (c *Console) Fail(msg string) {
	fmt.Fprintf(c.Out, "✗ %s\n", msg)
}

// Blank prints an empty separator line.
func (c *Console) Blank() {
	fmt.Fprintln(c.Out)
}
