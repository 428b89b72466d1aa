package config

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/steviee/lunar-accounts/internal/cli/output"
	"github.com/steviee/lunar-accounts/internal/state"
)

// NewCommand creates the config command group
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long: `View lunar-accounts configuration settings.

Configuration is read from ~/.config/lunar-accounts/config.yaml when it
exists, then from LUNAR_ACCOUNTS_* environment variables and flags.`,
		Example: `  # View current configuration
  lunar-accounts config show

  # Show configuration and accounts file paths
  lunar-accounts config path`,
		Aliases: []string{"cfg"},
	}

	cmd.AddCommand(NewShowCommand())
	cmd.AddCommand(NewPathCommand())

	return cmd
}

// NewShowCommand creates the config show command.
func NewShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Long:  `Print the configuration in effect after merging the config file, environment, and flags.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd.Context(), cmd.OutOrStdout(), jsonOutput(cmd))
		},
	}
}

// NewPathCommand creates the config path command.
func NewPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show configuration and accounts file paths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPath(cmd.Context(), cmd.OutOrStdout(), jsonOutput(cmd))
		},
	}
}

func runShow(ctx context.Context, w io.Writer, jsonOutput bool) error {
	cfg := state.ConfigFromContext(ctx)

	if jsonOutput {
		return output.Success(w, cfg, "")
	}
	return output.YAML(w, cfg)
}

// Paths lists the files lunar-accounts reads and writes.
type Paths struct {
	Config string `json:"config"`
	Store  string `json:"store"`
}

func runPath(ctx context.Context, w io.Writer, jsonOutput bool) error {
	configPath, err := state.GetConfigPath()
	if err != nil {
		return output.Error(w, jsonOutput, err)
	}

	paths := Paths{
		Config: configPath,
		Store:  state.ConfigFromContext(ctx).Store.Path,
	}

	if jsonOutput {
		return output.Success(w, paths, "")
	}

	_, _ = fmt.Fprintf(w, "Config: %s\n", paths.Config)
	_, _ = fmt.Fprintf(w, "Store:  %s\n", paths.Store)
	return nil
}

func jsonOutput(cmd *cobra.Command) bool {
	v, err := cmd.Flags().GetBool("json")
	return err == nil && v
}
