package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"value-exporter/exporter"
	"value-exporter/internal/config"
	"value-exporter/internal/document"
	"value-exporter/value"
)

type exportOptions struct {
	config     string
	output     string
	noOptimize bool
	stats      bool
}

func newExportCmd() *cobra.Command {
	var opts exportOptions

	cmd := &cobra.Command{
		Use:   "export [file|-]",
		Short: "Export a YAML document as a program",
		Long: `Export reads a YAML document and prints a program that rebuilds it.

Anchored nodes referenced through aliases are shared in the output. Mappings
tagged with a local tag (!pkg.Type) become records of that type. Without a
file argument, or with "-", the document is read from standard input.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "TOML config file")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the program to a file")
	cmd.Flags().BoolVar(&opts.noOptimize, "no-optimize", false, "keep dead and single-use bindings")
	cmd.Flags().BoolVar(&opts.stats, "stats", false, "print a summary to stderr")

	return cmd
}

func runExport(cmd *cobra.Command, args []string, opts exportOptions) error {
	logger := loggerFromContext(cmd.Context())
	prog := newProgress(logger)

	cfg := config.Default()

	if opts.config != "" {
		var err error
		if cfg, err = config.LoadFile(opts.config); err != nil {
			return err
		}

		if f := cmd.Flag("verbose"); f == nil || !f.Changed {
			logger.SetLevel(cfg.Level())
		}

		logger.Debug("loaded config", "path", opts.config, "shapes", len(cfg.Shapes))
	}

	reg, err := cfg.Registry()
	if err != nil {
		return err
	}

	loader := document.NewLoader(reg)

	var root value.Node

	if len(args) == 0 || args[0] == "-" {
		root, err = loader.Load(cmd.InOrStdin())
	} else {
		root, err = loader.LoadFile(args[0])
	}

	if err != nil {
		return err
	}

	diags := loader.Diagnostics()
	diags.Log(logger)

	xc := cfg.Exporter(logger)
	if opts.noOptimize {
		xc.Optimize = false
	}

	p, err := exporter.New(xc).Program(root)
	if err != nil {
		return err
	}

	text := p.String()

	if opts.output != "" {
		if err := writeOutput(opts.output, []byte(text+"\n")); err != nil {
			return err
		}
	} else if err := writeProgram(cmd.OutOrStdout(), p); err != nil {
		return err
	}

	if opts.stats {
		renderStats(cmd.ErrOrStderr(), p.Stats(), len(text), loader.Inferred())
	}

	prog.done(fmt.Sprintf("Exported %d statements", p.Stats().Statements))

	return nil
}

// writeProgram prints p followed by a newline.
func writeProgram(w io.Writer, p *exporter.Program) error {
	if _, err := p.WriteTo(w); err != nil {
		return err
	}

	_, err := io.WriteString(w, "\n")

	return err
}
