package main

import (
	"io"
	"log/slog"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/gogpu/portfolio"
	"github.com/gogpu/portfolio/internal/config"
)

// globalOptions are the flags every subcommand shares.
type globalOptions struct {
	configPath string
	verbose    bool
}

// version returns the module version from build info.
func version() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			return info.Main.Version
		}
	}
	return "dev"
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	cmd := &cobra.Command{
		Use:          "portfolio",
		Short:        "GPU demo portfolio",
		Long:         `Portfolio shows a set of small GPU demos next to a demo list and a property panel.`,
		Version:      version(),
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			portfolio.SetLogger(newLogger(cmd.ErrOrStderr(), opts.verbose))
		},
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "TOML configuration file")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log debug messages")

	cmd.AddCommand(
		newRunCmd(opts),
		newSnapshotCmd(opts),
		newBackendsCmd(opts),
		newConfigCmd(opts),
	)
	return cmd
}

// newLogger returns a text logger on w at Info, or Debug when verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// loadConfig reads the configuration file named by --config, or the
// defaults without one.
func (o *globalOptions) loadConfig() (config.Config, error) {
	return config.Load(o.configPath)
}
