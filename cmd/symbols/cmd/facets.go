package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/f3rmion/symbols/internal/facet"
)

var facetsCmd = &cobra.Command{
	Use:   "facets",
	Short: "List the labels of a character set",
	Long: `List the labels of a character set with the number of symbols
carrying each label and the code point range they span.

Example:
  symbols facets
  symbols facets --set math --sort range`,
	Args: cobra.NoArgs,
	RunE: runFacets,
}

func init() {
	rootCmd.AddCommand(facetsCmd)
	facetsCmd.Flags().String("sort", "name", "sort order: name or range")
}

func runFacets(cmd *cobra.Command, args []string) error {
	sortFlag, _ := cmd.Flags().GetString("sort")
	order, err := facet.ParseSortOrder(sortFlag)
	if err != nil {
		return err
	}

	env, err := openEnvironment(cmd.Context(), cliLogger())
	if err != nil {
		return err
	}
	defer env.Close()

	setName, entries, err := env.resolve(cmd.Context())
	if err != nil {
		return fmt.Errorf("resolving set %q: %w", setName, err)
	}

	facets := facet.Index(entries, order)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d labels in %s (sorted by %s)\n\n", len(facets), setName, order)
	for _, f := range facets {
		fmt.Fprintf(out, "  %-24s %5d  %s\n", f.Name, f.Count, f.FormatRange())
	}
	return nil
}
