// cmd/baliscrape/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/propwatch/baliscrape/internal/cli"
)

func main() {
	// Cancel the run on interrupt so partial results and the error
	// report still get written.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.ExecuteContext(ctx)
}
