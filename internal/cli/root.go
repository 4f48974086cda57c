// Package cli wires the scheduler-step commands. Each command performs
// exactly one job per invocation and exits 0 on success or 2 on any
// aborting error, with the diagnostic written to standard output first.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"shuttle/internal/config"
)

var (
	configPath string
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "shuttle",
	Short:         "Batch file transfer steps for job schedulers",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		setupLogging(cfg.Logging)
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to tool configuration file (default $SHUTTLE_CONFIG)")

	rootCmd.AddCommand(sftpCmd)
	rootCmd.AddCommand(smbCmd)
	rootCmd.AddCommand(moveCmd)
}

func setupLogging(logCfg config.LoggingConfig) {
	var level slog.Level
	switch logCfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	// Step output is read by the scheduler, so logs go to stdout.
	var handler slog.Handler
	if logCfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
