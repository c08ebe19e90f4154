package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"value-exporter/naming"
)

func newNameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "name <index>...",
		Short: "Print the binding name generated for each index",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				index, err := strconv.Atoi(arg)
				if err != nil {
					return fmt.Errorf("invalid index %q: %w", arg, err)
				}

				if index < 0 {
					return fmt.Errorf("invalid index %d: must not be negative", index)
				}

				if _, err := fmt.Fprintln(cmd.OutOrStdout(), naming.Name(index)); err != nil {
					return err
				}
			}

			return nil
		},
	}
}
