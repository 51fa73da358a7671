package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/f3rmion/symbols/internal/charset"
	"github.com/f3rmion/symbols/internal/facet"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file.json>",
	Short: "Check a character set file",
	Long: `Check that a JSON character set file can be loaded.

Every entry needs an id and at least one code point written as U+XXXX.
Ids must be unique. Entries without a name are accepted as placeholders.

Example:
  symbols validate sets/math.json`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	entries, err := charset.LoadFile(args[0])
	if err != nil {
		return err
	}

	placeholders := 0
	for _, e := range entries {
		if !e.Selectable() {
			placeholders++
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d entries, %d placeholders, %d labels\n",
		args[0], len(entries), placeholders, len(facet.Index(entries, facet.ByName)))
	return nil
}
