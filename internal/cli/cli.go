// Package cli defines the pcsmerge command tree: `merge` runs the
// interpreter over a fixture and reports its conflicts; `inspect` checks a
// fixture's shape without merging. Built on spf13/cobra and spf13/pflag,
// the richer POSIX-flag stack used elsewhere in the example corpus, in
// place of the teacher's plain stdlib flag.FlagSet.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/spork3dm/pcsmerge/internal/run"
	"github.com/spork3dm/pcsmerge/internal/tui"
)

// NewRootCommand builds the pcsmerge command tree, writing normal output to
// stdout and nothing else. Cobra's own error and usage printing is silenced;
// errors are returned from Execute for the caller to report.
func NewRootCommand(stdout io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "pcsmerge",
		Short:         "Interpret a merged PCS change set into a syntax tree and report its conflicts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newMergeCommand(stdout))
	root.AddCommand(newInspectCommand(stdout))

	return root
}

func newMergeCommand(stdout io.Writer) *cobra.Command {
	var fixturePath string
	var asJSON bool
	var browse bool

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Run the interpreter over a fixture and report its conflicts",
		RunE: func(cmd *cobra.Command, args []string) error {
			if fixturePath == "" {
				return fmt.Errorf("merge: --fixture is required")
			}

			summary, err := run.Merge(fixturePath)
			if err != nil {
				return err
			}

			if browse {
				return tui.Browse(summary)
			}
			if asJSON {
				return printJSON(stdout, summary)
			}
			printMergeSummary(stdout, summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&fixturePath, "fixture", "", "path to a YAML change-set fixture")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print a machine-readable JSON summary")
	cmd.Flags().BoolVar(&browse, "browse", false, "open the interactive conflict browser instead of printing")

	return cmd
}

func newInspectCommand(stdout io.Writer) *cobra.Command {
	var fixturePath string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Validate a fixture's shape and report node/PCS counts without merging",
		RunE: func(cmd *cobra.Command, args []string) error {
			if fixturePath == "" {
				return fmt.Errorf("inspect: --fixture is required")
			}

			summary, err := run.Inspect(fixturePath)
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(stdout, summary)
			}
			fmt.Fprintf(stdout, "nodes:                %d\n", summary.NodeCount)
			fmt.Fprintf(stdout, "pcs triples:          %d\n", summary.PCSCount)
			fmt.Fprintf(stdout, "content candidates:   %d\n", summary.ContentCandidateCount)
			fmt.Fprintf(stdout, "structural conflicts: %d\n", summary.StructuralConflictCount)
			return nil
		},
	}

	cmd.Flags().StringVar(&fixturePath, "fixture", "", "path to a YAML change-set fixture")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print a machine-readable JSON summary")

	return cmd
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printMergeSummary(w io.Writer, summary run.Summary) {
	fmt.Fprintf(w, "run:       %s\n", summary.RunID)
	fmt.Fprintf(w, "conflicts: %v\n", summary.HasConflicts)
	fmt.Fprintf(w, "nodes:     %d\n", summary.NodeCount)
	fmt.Fprintf(w, "pcs:       %d\n", summary.PCSCount)

	if len(summary.Findings) == 0 {
		fmt.Fprintln(w, "no conflicts found")
		return
	}

	fmt.Fprintf(w, "\n%d finding(s):\n", len(summary.Findings))
	for i, f := range summary.Findings {
		fmt.Fprintf(w, "  %d) [%s] role=%s: %s\n", i+1, f.Kind, f.Role, f.Detail)
	}
}
