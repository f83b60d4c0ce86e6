package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agusespa/classweave/internal/inject"
	"github.com/agusespa/classweave/internal/source"
)

type injectFlags struct {
	className  string
	method     string
	methodFile string
	outputPath string
	dryRun     bool
}

func newInjectCommand(opts *options) *cobra.Command {
	flags := &injectFlags{}

	cmd := &cobra.Command{
		Use:   "inject <file>",
		Short: "Insert a method into a class, right before its closing brace",
		Long: `Inject parses the file, finds the first class, interface or enum with the
given name and inserts the method source on its own line immediately before the
closing brace of its body. Nothing else in the file changes.

The file is only written once the whole updated text has been built; when the
class is missing or the file does not parse, nothing is written. Running the
same injection twice inserts the method twice.

Examples:
  # Add a method read from a file
  classweave inject src/test/TestCase1.java --class TestCase1 --method-file verify.java

  # Show the change as a unified diff without writing
  classweave inject Foo.java --class Foo --method 'void y() {}' --dry-run

  # Read the method from stdin and write the result elsewhere
  cat verify.java | classweave inject TestCase1.java --class TestCase1 --method-file - -o TestCase1Modified.java
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInject(cmd, flags, args[0])
		},
	}

	cmd.Flags().StringVarP(&flags.className, "class", "c", "", "name of the class to inject into (case-sensitive)")
	cmd.Flags().StringVarP(&flags.method, "method", "m", "", "method source to insert")
	cmd.Flags().StringVar(&flags.methodFile, "method-file", "", "file holding the method source, or - for stdin")
	cmd.Flags().StringVarP(&flags.outputPath, "output", "o", "", "write the result here instead of overwriting the input")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "print a unified diff instead of writing")
	cmd.MarkFlagRequired("class")
	cmd.MarkFlagsMutuallyExclusive("method", "method-file")
	cmd.MarkFlagsOneRequired("method", "method-file")

	return cmd
}

func runInject(cmd *cobra.Command, flags *injectFlags, path string) error {
	method, err := readMethod(cmd.InOrStdin(), flags)
	if err != nil {
		return err
	}

	res, err := inject.InjectFile(path, flags.className, method, inject.Options{
		OutputPath: flags.outputPath,
		DryRun:     flags.dryRun,
	})
	if err != nil {
		var notFound *inject.ClassNotFoundError
		if errors.As(err, &notFound) {
			return fmt.Errorf("%w; no changes written", err)
		}
		return err
	}

	if flags.dryRun {
		preview, err := res.Preview()
		if err != nil {
			return fmt.Errorf("failed to render diff: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(preview)
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added method to class %s. Modified code written to %s\n", res.Class, res.OutputPath)
	return nil
}

func readMethod(stdin io.Reader, flags *injectFlags) (string, error) {
	var method string
	switch {
	case flags.methodFile == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", &source.IOError{Op: "read", Path: "stdin", Err: err}
		}
		method = string(data)
	case flags.methodFile != "":
		f, err := source.Read(flags.methodFile)
		if err != nil {
			return "", err
		}
		method = string(f.Text)
	default:
		method = flags.method
	}

	method = strings.TrimRight(method, "\r\n")
	if strings.TrimSpace(method) == "" {
		return "", errors.New("method source is empty")
	}
	return method, nil
}
