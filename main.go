// Package main provides the entry point for the expense-categorizer CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"fjacquet/expense-categorizer/cmd/root"
	"fjacquet/expense-categorizer/internal/config"
)

func main() {
	// .env must be loaded before the root command reads the environment.
	config.LoadEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := root.Execute(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
