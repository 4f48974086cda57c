package main

import (
	"fmt"
	"log/slog"
	"os"

	"shuttle/internal/cli"
)

func main() {
	// Default logging until the config is loaded by the command layer.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := cli.Execute(); err != nil {
		// Schedulers read step output from stdout, so the diagnostic
		// goes there before the nonzero exit.
		fmt.Fprintf(os.Stdout, "ERROR: %v\n", err)
		os.Exit(2)
	}
}
