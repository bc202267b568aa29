// Command chunkctl browses and edits the chunks of a vector store backend.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/chunkctl/internal/adapters/driving/cli"
	"github.com/custodia-labs/chunkctl/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// A .env file is optional; variables already set win.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("Loading .env: %v", err)
	}

	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.Execute(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
