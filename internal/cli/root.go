// internal/cli/root.go
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"clonexport/internal/appcore"
	"clonexport/internal/config"
	"clonexport/internal/version"
)

// ExitError carries a process exit code out of a command. Err, when set, has
// not been reported yet.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

// ErrUsage marks argument errors (exit 2).
var ErrUsage = errors.New("usage")

// NewRootCommand builds the clonexport command tree over st.
func NewRootCommand(st appcore.Streams) *cobra.Command {
	root := &cobra.Command{
		Use:   "clonexport",
		Short: "Filter, truncate and export clonotype tables",
		Long: `clonexport – clone filtering and export

Reads an assembled clone set, optionally drops non-productive clones
(out-of-frame CDR3, stop codons in coding features), truncates the
abundance-ordered list at a minimal fraction / count, and streams the
remaining clones as tsv, jsonl or fasta.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(st.Stdin)
	root.SetOut(st.Stdout)
	root.SetErr(st.Stderr)
	root.SetVersionTemplate("clonexport version {{.Version}}\n")
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	})

	pf := root.PersistentFlags()
	pf.String("config", "", "YAML config file (flags and CLONEXPORT_* env override it)")
	config.RegisterLogFlags(pf)

	root.AddCommand(newExportCommand(st), newPresetsCommand(), newVersionCommand())
	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "clonexport version %s\n", version.Version)
			return err
		},
	}
}

// usageArgs wraps a cobra positional-args validator so its errors map to exit 2.
func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return fmt.Errorf("%w: %w", ErrUsage, err)
		}
		return nil
	}
}
