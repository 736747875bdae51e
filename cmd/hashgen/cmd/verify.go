package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SonaGutha/benchmarkingMemory-Storage/internal/hashgen"
)

func verifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <file>",
		Short: "Check that a hashgen file is sorted and every hash matches its nonce",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := hashgen.Verify(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d records sorted and verified\n", args[0], n)
			return nil
		},
	}
}
