package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/f3rmion/symbols/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize symbols configuration",
	Long: `Initialize symbols configuration in your config directory.

This creates:
  - symbols.yaml       (host, default set, storage and character sets)
  - sets/default.json  (the bundled starter character set)

Existing files are kept unless --force is given. Edit symbols.yaml to add
your own sets, either local JSON files or remote URLs.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "overwrite existing configuration")
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	configDir := getConfigDir()

	written, err := config.WriteStarter(configDir, force)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(written) == 0 {
		fmt.Fprintf(out, "Configuration already present in %s\nUse --force to overwrite\n", configDir)
		return nil
	}

	fmt.Fprintf(out, "Initializing symbols configuration in %s\n\n", configDir)
	for _, file := range written {
		fmt.Fprintf(out, "  Created %s\n", file)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. Edit symbols.yaml to add character sets")
	fmt.Fprintln(out, "  2. Run 'symbols validate <file.json>' to check a set")
	fmt.Fprintln(out, "  3. Run 'symbols' to open the picker")
	return nil
}
