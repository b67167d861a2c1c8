// Where: internal/app/parsers.go
// What: parsers command implementation.
// Why: Show which file types domd recognizes.
package app

import (
	"io"
	"strings"

	"github.com/poruru-code/domd/internal/logging"
	"github.com/poruru-code/domd/internal/parser/builtin"
	"github.com/poruru-code/domd/internal/ui"
)

type ParsersCmd struct{}

func runParsers(_ CLI, deps Dependencies, out io.Writer) int {
	build := deps.Registry
	if build == nil {
		build = builtin.Registry
	}
	console := ui.New(out)
	for _, factory := range build(logging.Discard()).Factories() {
		console.Header("🧩", factory.Name())
		console.ItemPlain(strings.Join(factory.Patterns(), ", "))
	}
	return 0
}
