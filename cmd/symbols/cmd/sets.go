package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var setsCmd = &cobra.Command{
	Use:   "sets",
	Short: "List the configured character sets",
	Long: `List every registered character set, where it comes from and whether
it has been loaded.

Example:
  symbols sets`,
	Args: cobra.NoArgs,
	RunE: runSets,
}

func init() {
	rootCmd.AddCommand(setsCmd)
}

func runSets(cmd *cobra.Command, args []string) error {
	env, err := openEnvironment(cmd.Context(), cliLogger())
	if err != nil {
		return err
	}
	defer env.Close()

	out := cmd.OutOrStdout()
	for _, info := range env.store.Describe() {
		marker := " "
		if info.Name == env.setName() {
			marker = "*"
		}
		switch {
		case info.Source == "":
			fmt.Fprintf(out, "%s %-20s inline  %d entries\n", marker, info.Name, info.Entries)
		case info.Loaded:
			fmt.Fprintf(out, "%s %-20s source  %d entries  %s\n", marker, info.Name, info.Entries, info.Source)
		default:
			fmt.Fprintf(out, "%s %-20s source  not loaded  %s\n", marker, info.Name, info.Source)
		}
	}
	return nil
}
