package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/steviee/lunar-accounts/internal/cli/output"
)

// VersionInfo contains version information for the application
type VersionInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	BuiltBy string `json:"built_by"`
}

// NewVersionCommand creates the version command
func NewVersionCommand(version, commit, date, builtBy string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  "Print the lunar-accounts version together with the build commit, date, and builder.",
		Example: `  # Display version information
  lunar-accounts version

  # Output in JSON format
  lunar-accounts version --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := VersionInfo{
				Version: version,
				Commit:  commit,
				Date:    date,
				BuiltBy: builtBy,
			}
			return printVersion(cmd.OutOrStdout(), info, IsJSONOutput())
		},
	}
}

func printVersion(w io.Writer, info VersionInfo, jsonOutput bool) error {
	if jsonOutput {
		return output.Success(w, info, "")
	}

	_, err := fmt.Fprintf(w, "lunar-accounts version %s\nCommit: %s\nBuilt: %s\nBuilt by: %s\n",
		info.Version, info.Commit, info.Date, info.BuiltBy)
	if err != nil {
		return fmt.Errorf("write version: %w", err)
	}
	return nil
}
