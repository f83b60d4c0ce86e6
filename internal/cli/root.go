package cli

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/agusespa/classweave/pkg/config"
)

type options struct {
	configFile string
	verbose    bool
	cfg        *config.Config
}

// NewRootCommand builds the classweave command tree.
func NewRootCommand(version string) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "classweave",
		Short: "Extract class structure from source files and inject methods into classes",
		Long: `classweave reads Java and TypeScript sources with tree-sitter.

It lists the classes, methods and fields of every file under a directory, and
inserts new method source into a named class right before its closing brace,
leaving the rest of the file byte-for-byte unchanged.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(opts.configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			opts.cfg = cfg
			if opts.verbose && opts.configFile != "" {
				fmt.Fprintln(cmd.ErrOrStderr(), "Using config file:", opts.configFile)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (default is ./classweave.{json,yaml})")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(
		newExtractCommand(opts),
		newInjectCommand(opts),
		newVersionCommand(version),
	)

	return rootCmd
}

// Execute runs the command line and exits non-zero on failure.
func Execute(version string) {
	if err := NewRootCommand(version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func (o *options) logger(w io.Writer, quiet bool) *log.Logger {
	if quiet && !o.verbose {
		return log.New(io.Discard, "", 0)
	}
	return log.New(w, "", log.LstdFlags)
}

func newVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "classweave version %s\n", version)
		},
	}
}
