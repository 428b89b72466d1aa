package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/steviee/lunar-accounts/internal/cli/accounts"
	"github.com/steviee/lunar-accounts/internal/cli/config"
	"github.com/steviee/lunar-accounts/internal/cli/menu"
	"github.com/steviee/lunar-accounts/internal/state"
	"github.com/steviee/lunar-accounts/internal/tui"
)

var (
	// Global flags
	cfgFile   string
	storePath string
	jsonOut   bool
	quiet     bool
	verbose   bool

	// Global logger
	logger *slog.Logger
)

// NewRootCommand creates and returns the root cobra command
func NewRootCommand(version, commit, date, builtBy string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lunar-accounts",
		Short: "Edit the Lunar Client accounts file",
		Long: `lunar-accounts edits the accounts.json file Lunar Client keeps in
~/.lunarclient/settings/game.

Run without a subcommand it opens an interactive menu to:
  - Create offline accounts from a username and a UUID
  - Remove all, cracked, or premium accounts
  - List the installed accounts

Every change is written back to the accounts file immediately.`,
		Example: `  # Open the interactive menu
  lunar-accounts

  # Edit a different accounts file
  lunar-accounts --store ./accounts.json

  # Create an account without the menu
  lunar-accounts accounts create 069a79f4-44e9-4726-a5be-fca90e38aaf5 Notch

  # List accounts as JSON
  lunar-accounts accounts list --json

  # Browse accounts full-screen
  lunar-accounts browse`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Initialize config
			cfg, err := initConfig(cmd)
			if err != nil {
				return fmt.Errorf("failed to initialize config: %w", err)
			}

			// Initialize logger based on flags and config
			if err := initLogger(os.Stderr, cfg.Logging.Level); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}

			cmd.SetContext(state.ContextWithConfig(cmd.Context(), cfg))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(cmd)
		},
	}

	// Add global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/lunar-accounts/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&storePath, "store", "", "accounts file (default: ~/.lunarclient/settings/game/accounts.json)")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable verbose logging")

	// Mark json and quiet as mutually exclusive
	rootCmd.MarkFlagsMutuallyExclusive("json", "quiet")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	// Add version command
	rootCmd.AddCommand(NewVersionCommand(version, commit, date, builtBy))

	// Add command groups
	rootCmd.AddCommand(NewAccountsCommand())
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewBrowseCommand())

	return rootCmd
}

// NewAccountsCommand creates the accounts command group
func NewAccountsCommand() *cobra.Command {
	return accounts.NewCommand()
}

// NewConfigCommand creates the config command group
func NewConfigCommand() *cobra.Command {
	return config.NewCommand()
}

// NewBrowseCommand creates the full-screen account browser command
func NewBrowseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse accounts in a full-screen view",
		Long: `Open a full-screen list of the installed accounts.

Keys:
  up/k, down/j  move the selection
  d             remove the selected account
  r             reload the accounts file
  q             quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := state.ConfigFromContext(cmd.Context())
			return tui.Run(cmd.Context(), state.NewStoreFromConfig(cfg))
		},
	}
}

// runMenu opens the accounts file and hands it to the interactive menu.
// A malformed file stops the program before the menu is shown.
func runMenu(cmd *cobra.Command) error {
	ctx := cmd.Context()
	cfg := state.ConfigFromContext(ctx)

	store := state.NewStoreFromConfig(cfg)
	doc, err := store.Open(ctx)
	if err != nil {
		logger.Error("failed to open accounts file", "path", store.Path(), "error", err)
		return err
	}

	m := menu.New(cmd.InOrStdin(), cmd.OutOrStdout(), store, doc, menu.Options{
		ClearScreen: cfg.Menu.ClearScreen,
	})
	return m.Run(ctx)
}

// initLogger initializes the global logger based on flags and the
// configured level
func initLogger(out io.Writer, configured string) error {
	var level slog.Level
	var handler slog.Handler

	// Determine log level
	switch {
	case quiet:
		level = slog.LevelError
	case verbose:
		level = slog.LevelDebug
	default:
		l, err := state.ParseLogLevel(configured)
		if err != nil {
			return err
		}
		level = l
	}

	// Create handler based on output format
	opts := &slog.HandlerOptions{
		Level: level,
	}

	if jsonOut {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	logger = slog.New(handler)
	slog.SetDefault(logger)

	return nil
}

// initConfig reads in config file, ENV variables and the --store flag
func initConfig(cmd *cobra.Command) (*state.Config, error) {
	v := viper.New()
	if err := state.ConfigureViper(v, cfgFile); err != nil {
		return nil, err
	}

	if flag := cmd.Flags().Lookup("store"); flag != nil {
		if err := v.BindPFlag("store.path", flag); err != nil {
			return nil, fmt.Errorf("bind store flag: %w", err)
		}
	}

	return state.LoadConfig(v)
}

// GetLogger returns the global logger instance
func GetLogger() *slog.Logger {
	return logger
}

// IsJSONOutput returns true if JSON output is enabled
func IsJSONOutput() bool {
	return jsonOut
}

// IsQuiet returns true if quiet mode is enabled
func IsQuiet() bool {
	return quiet
}

// IsVerbose returns true if verbose mode is enabled
func IsVerbose() bool {
	return verbose
}
