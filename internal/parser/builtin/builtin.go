// Package builtin assembles the registry of parsers shipped with domd.
package builtin

import (
	"github.com/charmbracelet/log"
	"github.com/poruru-code/domd/internal/parser"
	"github.com/poruru-code/domd/internal/parser/dockerfile"
	"github.com/poruru-code/domd/internal/parser/galaxy"
)

// Registry returns the built-in parsers in dispatch order.
func Registry(logger *log.Logger) *parser.Registry {
	return parser.NewRegistry(
		galaxy.NewFactory(logger),
		dockerfile.NewFactory(logger),
	)
}
