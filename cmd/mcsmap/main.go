// mcsmap entry point: maximum common substructure mapping for molecule graphs.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/asad/ReactionDecoder-sub002/internal/interfaces/cli"
)

// Build-time variables injected via ldflags.
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func init() {
	cli.Version = version
	cli.GitCommit = commit
	cli.BuildDate = buildDate
}

func main() {
	// SIGINT/SIGTERM cancel running searches and drain the HTTP server.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

//Personal.AI order the ending
