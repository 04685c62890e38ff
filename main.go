// Package main is the entry point for the Enterprise Search plugin service.
package main

import (
	"context"
	"fmt"
	"os"

	"entsearch/bootstrap"
	"entsearch/cmd"
)

// run initializes and starts the plugin service.
func run() error {
	ctx := context.Background()

	// Create and initialize application
	app, err := bootstrap.NewApp(ctx, os.Getenv("ENTSEARCH_CONFIG"))
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	// Start all services
	if err := app.Start(ctx); err != nil {
		app.Shutdown()
		return fmt.Errorf("failed to start application: %w", err)
	}

	// Wait for shutdown signal
	app.WaitForShutdown()

	// Graceful shutdown
	app.Shutdown()

	return nil
}

// main is the entry point.
func main() {
	// Check if running as CLI command
	if len(os.Args) > 1 && os.Args[1] == "config-data" {
		// Strip the subcommand name since the command already knows what it is
		os.Args = append([]string{os.Args[0]}, os.Args[2:]...)

		configDataCmd := cmd.NewConfigDataCmd()
		if err := configDataCmd.Execute(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Otherwise run as normal server
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
