package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/f3rmion/symbols/internal/facet"
	"github.com/f3rmion/symbols/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search a character set",
	Long: `Search a character set by name, label or code point.

Matching is case-insensitive and looks for the query anywhere in the
symbol's name, its labels or its code points.

Example:
  symbols search arrow
  symbols search 20ac
  symbols search --label Currency sign`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().String("label", "", "only show symbols with this label")
}

func runSearch(cmd *cobra.Command, args []string) error {
	label, _ := cmd.Flags().GetString("label")
	query := strings.Join(args, " ")

	env, err := openEnvironment(cmd.Context(), cliLogger())
	if err != nil {
		return err
	}
	defer env.Close()

	setName, entries, err := env.resolve(cmd.Context())
	if err != nil {
		return fmt.Errorf("resolving set %q: %w", setName, err)
	}

	results := search.ByText(entries, query)
	if label != "" {
		f, ok := facet.Find(facet.Index(entries, facet.ByName), label)
		if !ok {
			return fmt.Errorf("set %q has no label %q", setName, label)
		}
		results = search.ByFacet(results, &f)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d results for %q in %s\n\n", len(results), query, setName)
	printEntries(out, results)
	return nil
}
