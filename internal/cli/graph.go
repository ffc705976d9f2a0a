package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/protobuild/protoslice/internal/engine"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Show the module graph's generation order and components",
	Long: `Show the manifest's module dependency graph.

Prints the generation order (a topological order of the graph) and the
weakly-connected components, which bound where peer-duplicate warnings can
occur.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng := newEngine()

		result, err := eng.Graph(&engine.GraphRequest{ManifestPath: manifestPath()})
		if err != nil {
			return err
		}

		if jsonOutput {
			data, err := json.MarshalIndent(struct {
				Order      []string   `json:"order"`
				Components [][]string `json:"components"`
			}{result.Order, result.Components}, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode graph: %w", err)
			}
			fmt.Fprintln(os.Stdout, string(data))
			return nil
		}

		PrintSection("Generation Order")
		if len(result.Order) == 0 {
			PrintEmptyState("no modules")
			return nil
		}
		PrintList(result.Order, 1)

		PrintSection("Disjoint Components")
		for _, component := range result.Components {
			PrintInfo("  " + strings.Join(component, ", "))
		}
		return nil
	},
}
