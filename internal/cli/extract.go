package cli

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agusespa/classweave/internal/batch"
	"github.com/agusespa/classweave/internal/discovery"
	"github.com/agusespa/classweave/internal/output"
	"github.com/agusespa/classweave/internal/source"
	"github.com/agusespa/classweave/internal/types"
)

type extractFlags struct {
	format     string
	workers    int
	ignore     []string
	extensions []string
	outputPath string
	quiet      bool
}

func newExtractCommand(opts *options) *cobra.Command {
	flags := &extractFlags{}

	cmd := &cobra.Command{
		Use:   "extract [path...]",
		Short: "Extract classes, methods and fields from source files",
		Long: `Extract walks each path (a file or a directory, default ".") and prints one
entry per source file:

  {"file": ..., "structure": {"classes": [{"name", "methods", "variables"}]}}

A file that cannot be read or parsed gets an "error" entry instead and does not
stop the rest of the batch.

Examples:
  # Extract every Java and TypeScript file under src/
  classweave extract src

  # Only Java, skipping generated code, as YAML
  classweave extract --ext .java --ignore "**/generated/**" --format yaml .
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, opts, flags, args)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "output format ("+output.FormatNames()+")")
	cmd.Flags().IntVarP(&flags.workers, "workers", "w", 0, "number of files extracted concurrently")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob pattern to skip, relative to the path (repeatable)")
	cmd.Flags().StringSliceVar(&flags.extensions, "ext", nil, "file extension to include (repeatable)")
	cmd.Flags().StringVarP(&flags.outputPath, "output", "o", "", "write results to a file instead of stdout")
	cmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false, "suppress progress output")

	return cmd
}

func runExtract(cmd *cobra.Command, opts *options, flags *extractFlags, args []string) error {
	cfg := opts.cfg

	format := cfg.Output.Format
	if cmd.Flags().Changed("format") {
		format = flags.format
	}
	outFormat, err := output.ParseFormat(format)
	if err != nil {
		return err
	}

	batchOpts := batch.Options{
		Discovery: discovery.Options{
			Extensions: cfg.Extract.Extensions,
			Ignore:     cfg.Extract.Ignore,
		},
		Workers: cfg.Extract.Workers,
		Logger:  opts.logger(cmd.ErrOrStderr(), flags.quiet),
	}
	if cmd.Flags().Changed("ext") {
		batchOpts.Discovery.Extensions = flags.extensions
	}
	if cmd.Flags().Changed("ignore") {
		batchOpts.Discovery.Ignore = append(batchOpts.Discovery.Ignore, flags.ignore...)
	}
	if cmd.Flags().Changed("workers") {
		batchOpts.Workers = flags.workers
	}

	roots := args
	if len(roots) == 0 {
		roots = []string{"."}
	}

	progress := newProgressReporter(cmd.ErrOrStderr(), flags.quiet)
	batchOpts.OnDiscovered = progress.OnDiscovered
	batchOpts.OnFile = progress.OnFile

	var results []types.FileResult
	for _, root := range roots {
		progress.OnDiscoveryStart(root)
		rootResults, err := batch.ExtractDir(cmd.Context(), root, batchOpts)
		if err != nil {
			progress.stop()
			return err
		}
		results = append(results, rootResults...)
	}
	progress.Finish(results)

	var buf bytes.Buffer
	if err := output.Write(&buf, results, outFormat); err != nil {
		return err
	}

	if flags.outputPath != "" {
		if err := source.WriteAtomic(flags.outputPath, buf.Bytes()); err != nil {
			return err
		}
		if !flags.quiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "Results written to %s\n", flags.outputPath)
		}
		return nil
	}

	_, err = cmd.OutOrStdout().Write(buf.Bytes())
	return err
}
