package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"sia-analytics/cmd/sia-analytics/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := commands.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
