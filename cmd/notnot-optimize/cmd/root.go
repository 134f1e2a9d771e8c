package cmd

import (
	"io"

	"github.com/notnot-ext/bundleopt/internal/config"
	"github.com/notnot-ext/bundleopt/internal/optimizer"
	"github.com/notnot-ext/bundleopt/kit/colorlog"
	"github.com/spf13/cobra"
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "notnot-optimize",
		Short:        "Bundle and minify the NotNot content script",
		Long:         "Concatenates content-scripts/modules in a fixed order, strips comments, logging calls and whitespace, and writes dist-optimized/ with a build-info.json summary.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			run(cmd.OutOrStdout())
			return nil
		},
	}
}

// run never fails the process: configuration and write errors are logged
// and the command still exits 0.
func run(out io.Writer) {
	cfg, err := config.Load(".env")
	if err != nil {
		colorlog.New("notnot", colorlog.Options{Output: out}).Error("config", "error", err)
		cfg = config.FromEnv()
	}
	log := colorlog.New("notnot", colorlog.Options{Output: out, Level: cfg.LogLevel})

	if _, err := optimizer.Run(cfg, log); err != nil {
		log.Error("optimize failed", "error", err)
		return
	}
	log.Info("Optimization complete")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
