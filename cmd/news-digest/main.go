package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"news-digest/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.SetVersionInfo(version, commit, date)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx, cli.DefaultDeps(), os.Args[1:])
	stop()
	os.Exit(code)
}
