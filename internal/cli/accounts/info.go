package accounts

import (
	"fmt"
	"io"
	"time"

	"github.com/docker/go-units"
	"github.com/spf13/cobra"
	domain "github.com/steviee/lunar-accounts/internal/accounts"
	"github.com/steviee/lunar-accounts/internal/cli/output"
	"github.com/steviee/lunar-accounts/internal/state"
)

// Info describes the accounts file.
type Info struct {
	Path     string    `json:"path"`
	Size     int64     `json:"size_bytes"`
	Modified time.Time `json:"modified"`
	Accounts int       `json:"accounts"`
	Cracked  int       `json:"cracked"`
	Active   string    `json:"active,omitempty"`
}

// NewInfoCommand creates the accounts info command.
func NewInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show accounts file details",
		Long:  `Show where the accounts file lives, its size, and how many accounts it holds.`,
		Example: `  # Show accounts file details
  lunar-accounts accounts info

  # Output in JSON format
  lunar-accounts accounts info --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, doc, err := openStore(cmd.Context())
			if err != nil {
				return output.Error(cmd.OutOrStdout(), jsonOutput(cmd), err)
			}
			return runInfo(cmd.OutOrStdout(), store, doc, jsonOutput(cmd))
		},
	}
}

func runInfo(w io.Writer, store *state.Store, doc *domain.Document, jsonOutput bool) error {
	stat, err := store.Stat()
	if err != nil {
		return output.Error(w, jsonOutput, fmt.Errorf("stat accounts file: %w", err))
	}

	info := Info{
		Path:     store.Path(),
		Size:     stat.Size(),
		Modified: stat.ModTime(),
		Accounts: doc.Len(),
		Active:   doc.ActiveAccountLocalID,
	}
	for id, r := range doc.Accounts {
		if domain.IsCracked(id, r) {
			info.Cracked++
		}
	}

	if jsonOutput {
		return output.Success(w, info, "")
	}

	active := info.Active
	if active == "" {
		active = "(none)"
	}

	_, _ = fmt.Fprintf(w, "Path:     %s\n", info.Path)
	_, _ = fmt.Fprintf(w, "Size:     %s\n", units.HumanSize(float64(info.Size)))
	_, _ = fmt.Fprintf(w, "Modified: %s\n", units.HumanDuration(time.Since(info.Modified))+" ago")
	_, _ = fmt.Fprintf(w, "Accounts: %d (%d cracked, %d premium)\n", info.Accounts, info.Cracked, info.Accounts-info.Cracked)
	_, _ = fmt.Fprintf(w, "Active:   %s\n", active)

	return nil
}
