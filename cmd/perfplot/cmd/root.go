package cmd

import (
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/SonaGutha/benchmarkingMemory-Storage/internal/logging"
	"github.com/SonaGutha/benchmarkingMemory-Storage/internal/perfplot"
)

// RootCmd returns the perfplot command. Every flag can also be set through a
// PERFPLOT_ environment variable, e.g. PERFPLOT_OUTPUT_DIR.
func RootCmd() *cobra.Command {
	v := viper.New()
	defaults := perfplot.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "perfplot",
		Short: "Render hashgen timings as bar graphs of elapsed time per thread count",
		Long: `Render hashgen timings as bar graphs of elapsed time per thread count.

The input is a whitespace-delimited table with a header row containing at least
HashThreads, SortThreads, WriteThreads and PerformanceTime(sec). One PNG per
thread column is written to the output directory, which is created if absent.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := logging.SetLevel(v.GetString("log-level")); err != nil {
				return err
			}
			cfg := perfplot.Config{
				InputPath: v.GetString("input"),
				OutputDir: v.GetString("output-dir"),
				Prefix:    v.GetString("prefix"),
				Show:      v.GetBool("show"),
			}
			paths, err := perfplot.Run(cfg)
			if err != nil {
				return err
			}
			log.Infof("wrote %d bar graphs to %s", len(paths), cfg.OutputDir)
			return nil
		},
	}

	cmd.Flags().String("input", defaults.InputPath, "measurement table to plot")
	cmd.Flags().String("output-dir", defaults.OutputDir, "directory the PNG files are written to")
	cmd.Flags().String("prefix", defaults.Prefix, "prefix of the PNG file names")
	cmd.Flags().Bool("show", defaults.Show, "open each graph with the system image viewer")
	cmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	v.SetEnvPrefix("perfplot")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	for _, name := range []string{"input", "output-dir", "prefix", "show", "log-level"} {
		_ = v.BindPFlag(name, cmd.Flags().Lookup(name))
	}

	return cmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := RootCmd().Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
