package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/f3rmion/symbols/internal/clipboard"
)

var insertCmd = &cobra.Command{
	Use:   "insert <id>",
	Short: "Insert a symbol by id",
	Long: `Insert the symbol with the given id without opening the picker.

The symbol is recorded as recently used and copied to the clipboard, or
printed with --print.

Example:
  symbols insert U+20AC
  symbols insert --set math --print U+221E`,
	Args: cobra.ExactArgs(1),
	RunE: runInsert,
}

func init() {
	rootCmd.AddCommand(insertCmd)
	insertCmd.Flags().Bool("print", false, "print the symbol instead of copying it")
}

func runInsert(cmd *cobra.Command, args []string) error {
	printResult, _ := cmd.Flags().GetBool("print")
	id := args[0]

	logger := cliLogger()
	env, err := openEnvironment(cmd.Context(), logger)
	if err != nil {
		return err
	}
	defer env.Close()

	setName, entries, err := env.resolve(cmd.Context())
	if err != nil {
		return fmt.Errorf("resolving set %q: %w", setName, err)
	}

	for _, e := range entries {
		if e.ID != id {
			continue
		}
		if !e.Selectable() {
			return fmt.Errorf("symbol %q in %s is a placeholder", id, setName)
		}
		inserter := clipboard.New(cmd.OutOrStdout(), printResult)
		if err := inserter.Insert(e.Text()); err != nil {
			return err
		}
		env.tracker.MarkUsed(e)

		if _, copied := inserter.(clipboard.Clipboard); copied {
			fmt.Fprintf(cmd.ErrOrStderr(), "Copied %s (%s) to the clipboard\n", e.Text(), e.Name)
		}
		logger.Debug().Str("id", id).Str("set", setName).Msg("symbol inserted")
		return nil
	}
	return fmt.Errorf("set %q has no symbol %q", setName, id)
}
