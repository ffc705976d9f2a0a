package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/protobuild/protoslice/internal/engine"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run ownership diagnostics without writing anything",
	Long: `Run the partitioning pipeline and report diagnostics only.

Errors (a type owned by two modules the same module depends on) make the
command fail. Warnings (a type generated twice by unrelated peer modules) are
reported but do not affect the exit status.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng := newEngine()

		result, err := eng.Partition(&engine.PartitionRequest{
			ManifestPath: manifestPath(),
		})
		if err != nil {
			return err
		}
		partitioned := result.Partitioned

		for _, warning := range partitioned.Warnings {
			PrintWarning(warning)
		}
		for _, e := range partitioned.Errors {
			PrintError(e)
		}

		if len(partitioned.Errors) > 0 {
			return engine.ErrOwnershipConflict
		}

		if len(partitioned.Warnings) == 0 {
			PrintSuccess(fmt.Sprintf("No ownership problems across %s",
				PrintCount(len(partitioned.Modules()), "module", "modules")))
		} else {
			PrintSuccess(fmt.Sprintf("No blocking problems; %s",
				PrintCount(len(partitioned.Warnings), "warning", "warnings")))
		}
		return nil
	},
}
