// Package cmd contains all CLI commands for the symbols tool.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/f3rmion/symbols/internal/clipboard"
	"github.com/f3rmion/symbols/internal/config"
	"github.com/f3rmion/symbols/internal/logging"
	"github.com/f3rmion/symbols/internal/prefs"
	"github.com/f3rmion/symbols/internal/tui"
	"github.com/f3rmion/symbols/internal/tui/bigchar"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "symbols",
	Short: "Pick and insert special characters",
	Long: `symbols is a special character picker for the terminal.

Character sets are listed in symbols.yaml and are either bundled JSON files
or remote resources fetched on first use. The picker shows:
  - All symbols of the current set
  - Recently used symbols, remembered per host
  - Search results by name, label or code point

Running 'symbols' without arguments launches the interactive picker.
The chosen symbol is copied to the clipboard, or printed with --print.`,
	SilenceUsage: true,
	RunE:         runPicker,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config directory (default is $HOME/.config/symbols)")
	rootCmd.PersistentFlags().Bool("verbose", false, "verbose output")
	rootCmd.PersistentFlags().String("set", "", "character set to use (default from symbols.yaml)")
	rootCmd.Flags().Bool("print", false, "print the chosen symbol instead of copying it")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("set", rootCmd.PersistentFlags().Lookup("set"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.Set("config_dir", cfgFile)
	} else {
		configDir, err := config.DefaultDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}
		viper.Set("config_dir", configDir)
	}

	viper.SetEnvPrefix("SYMBOLS")
	viper.AutomaticEnv()
}

// getConfigDir returns the configuration directory path.
func getConfigDir() string {
	return viper.GetString("config_dir")
}

// runPicker launches the picker modal.
func runPicker(cmd *cobra.Command, args []string) error {
	printResult, _ := cmd.Flags().GetBool("print")
	configDir := getConfigDir()

	// The picker owns the terminal, so logs go to a file.
	logger, logFile, err := logging.NewFile(filepath.Join(configDir, "logs", "symbols.log"), viper.GetBool("verbose"))
	if err != nil {
		logger = logging.Nop()
	} else {
		defer logFile.Close()
	}

	env, err := openEnvironment(cmd.Context(), logger)
	if err != nil {
		return err
	}
	defer env.Close()

	prefsPath := prefs.Path(configDir)
	p, err := prefs.Load(prefsPath)
	if err != nil {
		logger.Warn().Err(err).Str("path", prefsPath).Msg("ignoring unreadable preferences")
	}

	face, err := bigchar.LoadFace(bigchar.SystemFontPaths)
	if err != nil {
		logger.Debug().Err(err).Msg("no symbol font, previews use plain text")
	}

	// Without a clipboard the text is printed once the alternate screen is gone.
	var inserter clipboard.Inserter
	if board := (clipboard.Clipboard{}); !printResult && board.Available() {
		inserter = board
	} else {
		printResult = true
	}

	model := tui.New(tui.Options{
		SetName:  env.setName(),
		Resolver: env.store,
		Tracker:  env.tracker,
		Inserter: inserter,
		Renderer: bigchar.NewRenderer(face),
		Prefs:    p,
		Columns:  env.cfg.Columns,
		Logger:   logger,
	})

	program := tea.NewProgram(model, tea.WithAltScreen())

	// Send blocks until the event loop reads it, and MarkUsed runs inside Update.
	unsubscribe := env.tracker.Subscribe(func() {
		go program.Send(tui.RecentChangedMsg{})
	})
	defer unsubscribe()

	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	result, ok := final.(tui.Model)
	if !ok {
		return nil
	}
	if err := prefs.Save(prefsPath, result.Prefs()); err != nil {
		logger.Warn().Err(err).Msg("saving preferences")
	}

	text, chosen := result.Result()
	if !chosen {
		return nil
	}
	if printResult {
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Copied %s to the clipboard\n", text)
	return nil
}
