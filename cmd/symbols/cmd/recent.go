package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/f3rmion/symbols/internal/recent"
	"github.com/f3rmion/symbols/internal/storage"
)

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Show or clear recently used symbols",
	Long: `Show the symbols most recently inserted on the configured host.

The list is padded with symbols from the fallback_set of symbols.yaml, the
way the picker fills its recent tab before anything has been used.
--fallback picks another set; --fallback= turns padding off.

Example:
  symbols recent
  symbols recent --fallback default --max 24
  symbols recent --clear
  symbols recent --purge`,
	Args: cobra.NoArgs,
	RunE: runRecent,
}

func init() {
	rootCmd.AddCommand(recentCmd)
	recentCmd.Flags().Bool("clear", false, "forget recently used symbols for this host")
	recentCmd.Flags().Bool("purge", false, "remove every stored value for this host")
	recentCmd.Flags().String("fallback", "", "pad the list with symbols from this set (default fallback_set)")
	recentCmd.Flags().Int("max", recent.DefaultFallbackMax, "maximum length of a padded list")
}

func runRecent(cmd *cobra.Command, args []string) error {
	clearList, _ := cmd.Flags().GetBool("clear")
	purge, _ := cmd.Flags().GetBool("purge")
	fallback, _ := cmd.Flags().GetString("fallback")
	maxLen, _ := cmd.Flags().GetInt("max")

	logger := cliLogger()
	env, err := openEnvironment(cmd.Context(), logger)
	if err != nil {
		return err
	}
	defer env.Close()

	out := cmd.OutOrStdout()
	switch {
	case purge:
		remover, ok := env.backend.(storage.PrefixRemover)
		if !ok {
			return errors.New("storage backend cannot purge keys")
		}
		n, err := remover.RemovePrefix(env.cfg.Host + "|")
		if err != nil {
			return fmt.Errorf("purging %s: %w", env.cfg.Host, err)
		}
		fmt.Fprintf(out, "Removed %d stored values for %s\n", n, env.cfg.Host)
		return nil
	case clearList:
		env.tracker.Clear()
		fmt.Fprintf(out, "Cleared recently used symbols for %s\n", env.cfg.Host)
		return nil
	}

	if !cmd.Flags().Changed("fallback") {
		fallback = env.cfg.FallbackSet
	}

	entries := env.tracker.Recent()
	if fallback != "" {
		entries, err = env.tracker.WithFallback(cmd.Context(), env.store, fallback, maxLen)
		if err != nil {
			logger.Warn().Err(err).Str("set", fallback).Msg("fallback set unavailable")
		}
	}

	if len(entries) == 0 {
		fmt.Fprintln(out, "Nothing here yet...")
		return nil
	}
	fmt.Fprintf(out, "%d recently used on %s (keeping %d)\n\n", len(entries), env.cfg.Host, env.tracker.Limit())
	printEntries(out, entries)
	return nil
}
