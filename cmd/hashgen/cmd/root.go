package cmd

import (
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/SonaGutha/benchmarkingMemory-Storage/internal/hashgen"
	"github.com/SonaGutha/benchmarkingMemory-Storage/internal/logging"
)

var flagNames = []string{"hash-threads", "sort-threads", "write-threads", "file", "memory", "size", "debug", "results"}

// RootCmd returns the hashgen command. Flags can also be set through HASHGEN_
// environment variables, e.g. HASHGEN_HASH_THREADS.
func RootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "hashgen",
		Short: "Generate, sort and store BLAKE3 hash records",
		Long: `Generate, sort and store BLAKE3 hash records.

Each record is a 6 byte random nonce and the first 10 bytes of its BLAKE3 hash.
Records are produced in buckets that fit in --memory; every bucket is hashed,
sorted and written by its own thread group, then the buckets are merged into
--file sorted by hash.`,
		Example:       "  hashgen -t 4 -o 2 -i 1 -f data.bin -m 1024 -s 64 --results ../input/configurations_time_64gb.txt",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// without debug only warnings and the summary line are printed
			if !v.GetBool("debug") {
				log.SetLevel(log.WarnLevel)
			} else if err := logging.SetLevel("debug"); err != nil {
				return err
			}

			cfg := hashgen.Config{
				HashThreads:  v.GetInt("hash-threads"),
				SortThreads:  v.GetInt("sort-threads"),
				WriteThreads: v.GetInt("write-threads"),
				Filename:     v.GetString("file"),
				MemorySize:   int64(v.GetFloat64("memory") * hashgen.MiB),
				FileSize:     int64(v.GetFloat64("size") * hashgen.GiB),
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			stats, err := hashgen.Run(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "hashgen t%d o%d i%d m%gMB s%gGB total time %.2f seconds %f MH/s %fMB/s\n",
				cfg.HashThreads, cfg.SortThreads, cfg.WriteThreads, v.GetFloat64("memory"), v.GetFloat64("size"),
				stats.Elapsed.Seconds(), stats.MHps(), stats.MBps())

			if results := v.GetString("results"); results != "" {
				return hashgen.AppendResult(results, hashgen.NewResult(cfg, stats))
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntP("hash-threads", "t", 0, "number of hash threads")
	flags.IntP("sort-threads", "o", 0, "number of sort threads")
	flags.IntP("write-threads", "i", 0, "number of write threads")
	flags.StringP("file", "f", "", "output file")
	flags.Float64P("memory", "m", 0, "maximum memory for records in MB")
	flags.Float64P("size", "s", 0, "file size in GB")
	flags.BoolP("debug", "d", true, "log per bucket progress; false prints only the summary")
	flags.String("results", "", "append the configuration and time to this results table")

	v.SetEnvPrefix("hashgen")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	for _, name := range flagNames {
		_ = v.BindPFlag(name, flags.Lookup(name))
	}

	cmd.AddCommand(verifyCmd())
	return cmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := RootCmd().Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
