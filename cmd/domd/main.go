// Where: cmd/domd/main.go
// What: CLI entrypoint.
// Why: Execute domd commands with configured dependencies.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/poruru-code/domd/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	deps, closer, err := buildDependencies(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}

	code := app.Run(os.Args[1:], deps)
	if closer != nil {
		_ = closer.Close()
	}
	stop()
	os.Exit(code)
}
