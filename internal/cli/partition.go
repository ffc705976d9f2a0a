package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/protobuild/protoslice/internal/engine"
)

var partitionOutDir string

var partitionCmd = &cobra.Command{
	Use:   "partition",
	Short: "Partition the schema and write per-module slices",
	Long: `Partition the manifest's schema across its build modules.

Each module is assigned the types it generates; types generated by a module's
dependencies appear downstream as empty stubs. With --out, one .proto slice per
module is written under the given directory. Ownership errors block slice
output and make the command fail; warnings are reported but non-blocking.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng := newEngine()

		result, err := eng.Partition(&engine.PartitionRequest{
			ManifestPath: manifestPath(),
			OutputDir:    partitionOutDir,
		})
		if err != nil {
			return err
		}
		partitioned := result.Partitioned

		if jsonOutput {
			report := engine.BuildReport(partitioned)
			data, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode report: %w", err)
			}
			fmt.Fprintln(os.Stdout, string(data))
			if len(partitioned.Errors) > 0 {
				return engine.ErrOwnershipConflict
			}
			return nil
		}

		for _, warning := range partitioned.Warnings {
			PrintWarning(warning)
		}
		if len(partitioned.Errors) > 0 {
			for _, e := range partitioned.Errors {
				PrintError(e)
			}
			return engine.ErrOwnershipConflict
		}

		PrintSection("Partitions")
		rows := make([][]string, 0, len(partitioned.Modules()))
		for _, name := range partitioned.Modules() {
			part, _ := partitioned.Partition(name)
			rows = append(rows, []string{
				name,
				strconv.Itoa(len(part.Types)),
				strconv.Itoa(part.TransitiveUpstreamTypes.Len()),
				strconv.Itoa(len(part.Schema.Files())),
			})
		}
		PrintTable([]string{"MODULE", "OWNED", "UPSTREAM", "FILES"}, rows)
		fmt.Println()

		if len(result.Written) > 0 {
			PrintSuccess(fmt.Sprintf("Wrote %s to %s", PrintCount(len(result.Written), "slice file", "slice files"), partitionOutDir))
		} else {
			PrintSuccess(fmt.Sprintf("Partitioned %s across %s",
				PrintCount(len(result.Schema.Identities()), "type", "types"),
				PrintCount(len(partitioned.Modules()), "module", "modules")))
		}
		return nil
	},
}

func init() {
	partitionCmd.Flags().StringVarP(&partitionOutDir, "out", "o", "", "Directory to write per-module slices into")
}
