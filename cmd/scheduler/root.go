package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"tools.zach/dev/scheduler/internal/lifecycle"
	"tools.zach/dev/scheduler/internal/paths"
)

// newRootCmd builds the command tree. The root command itself runs the
// daemon; init and version are subcommands.
func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   paths.BinaryName,
		Short: "Idle scheduler daemon with signal-driven graceful shutdown",
		Long: `Load the configuration, configure logging, and idle until SIGINT or
SIGTERM is received, then exit cleanly.

Examples:
  # Run with the default config at config/default.yaml
  scheduler

  # Run with a custom config file
  scheduler --config /etc/scheduler/config.yaml

  # Override the configured level for one run
  SCHEDULER_LOG_LEVEL=debug scheduler`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDaemon(configPath, lifecycle.New())
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", paths.Layout{}.Config(), "Path to config file (YAML, or TOML by .toml extension)")

	root.AddCommand(newInitCmd(&configPath), newVersionCmd())
	return root
}

// runDaemon drives ctl through initialize, signal installation and the idle
// loop. Configuration errors are returned before anything is logged.
func runDaemon(configPath string, ctl *lifecycle.Controller) error {
	cfg, err := ctl.Initialize(configPath)
	if err != nil {
		return err
	}
	defer ctl.Close()
	slog.SetDefault(ctl.Logger())

	slog.Debug("configuration loaded",
		"path", configPath,
		"log_level", cfg.LogLevel,
		"version", resolveVersion(),
	)

	restore := ctl.InstallSignalHandlers()
	defer restore()

	return ctl.Run()
}
