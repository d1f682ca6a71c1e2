// internal/cli/export.go
package cli

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"clonexport/internal/appcore"
	"clonexport/internal/config"
	"clonexport/internal/fields"
	"clonexport/internal/logging"
)

const exportExamples = `  # default columns, stop at clones below 0.1%
  clonexport export -q 0.001 sample.clns.json.gz

  # productive clones only, top 100, as JSON lines
  clonexport export -o -t -n 100 --format jsonl sample.clns.json out.jsonl

  # CDR3 nucleotide sequences as FASTA
  clonexport export --format fasta --fasta-feature CDR3 sample.clns.json -`

func newExportCommand(st appcore.Streams) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "export [flags] input.clns.json[.gz] [output|-]",
		Short:   "Export clones to tsv, jsonl or fasta",
		Long:    "Export clones to tsv, jsonl or fasta.\n\n" + fields.Usage(),
		Example: exportExamples,
		Args:    usageArgs(cobra.RangeArgs(1, 2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			v := config.NewViper()
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return &ExitError{Code: appcore.ExitUsage, Err: err}
			}
			cfgFile, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(v, cfgFile)
			if err != nil {
				return &ExitError{Code: appcore.ExitUsage, Err: err}
			}
			log, err := logging.New(logging.Config{Level: cfg.LogLevel, JSON: cfg.LogJSON, Quiet: cfg.Quiet}, st.Stderr)
			if err != nil {
				return &ExitError{Code: appcore.ExitUsage, Err: err}
			}

			o := appcore.Options{Input: args[0], Output: "-", RunID: uuid.NewString(), Config: cfg}
			if len(args) == 2 {
				o.Output = args[1]
			}
			if code := appcore.Run(cmd.Context(), st, o, log); code != appcore.ExitOK {
				// appcore already logged the cause
				return &ExitError{Code: code}
			}
			return nil
		},
	}
	config.RegisterFlags(cmd.Flags())
	return cmd
}
