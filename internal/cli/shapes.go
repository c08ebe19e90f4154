package cli

import (
	"github.com/spf13/cobra"

	"value-exporter/internal/analyze"
	"value-exporter/internal/config"
)

func newShapesCmd() *cobra.Command {
	var (
		dir        string
		unexported bool
	)

	cmd := &cobra.Command{
		Use:   "shapes <package>...",
		Short: "Print record shapes of Go struct types as TOML",
		Long: `Shapes loads Go packages and prints a [[shapes]] table for every named
struct type, ready to be used as an export --config file.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			prog := newProgress(logger)

			analyzer := analyze.NewAnalyzer()
			analyzer.Dir = dir
			analyzer.Unexported = unexported

			graph, err := analyzer.LoadPackages(args...)
			if err != nil {
				return err
			}

			for path, pkg := range graph.Packages {
				logger.Debug("loaded package", "path", path, "structs", len(pkg.Structs))
			}

			shapes := analyzer.Shapes()
			if err := config.WriteShapes(cmd.OutOrStdout(), shapes); err != nil {
				return err
			}

			prog.done("Derived shapes")

			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "directory to resolve package patterns in")
	cmd.Flags().BoolVar(&unexported, "unexported", false, "include unexported struct types")

	return cmd
}
