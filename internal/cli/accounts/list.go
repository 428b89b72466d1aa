package accounts

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	domain "github.com/steviee/lunar-accounts/internal/accounts"
	"github.com/steviee/lunar-accounts/internal/cli/output"
)

// Listing is the structured form of an account listing.
type Listing struct {
	Active   string         `json:"active,omitempty" yaml:"active,omitempty"`
	Count    int            `json:"count" yaml:"count"`
	Accounts []domain.Entry `json:"accounts" yaml:"accounts"`
}

// NewListCommand creates the accounts list command.
func NewListCommand() *cobra.Command {
	var yamlOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List installed accounts",
		Long: `List the installed accounts as "<uuid>: <username>" lines, ordered by UUID.`,
		Example: `  # List accounts
  lunar-accounts accounts list

  # List accounts as JSON
  lunar-accounts accounts list --json

  # List accounts as YAML
  lunar-accounts accounts list --yaml`,
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut := jsonOutput(cmd)
			if jsonOut && yamlOutput {
				return fmt.Errorf("--json and --yaml cannot be used together")
			}

			_, doc, err := openStore(cmd.Context())
			if err != nil {
				return output.Error(cmd.OutOrStdout(), jsonOut, err)
			}
			return runList(cmd.OutOrStdout(), doc, jsonOut, yamlOutput)
		},
	}

	cmd.Flags().BoolVar(&yamlOutput, "yaml", false, "Output in YAML format")

	return cmd
}

func runList(w io.Writer, doc *domain.Document, jsonOutput, yamlOutput bool) error {
	listing := Listing{
		Active:   doc.ActiveAccountLocalID,
		Count:    doc.Len(),
		Accounts: doc.Entries(),
	}

	switch {
	case jsonOutput:
		return output.Success(w, listing, fmt.Sprintf("Found %d account(s)", listing.Count))
	case yamlOutput:
		return output.YAML(w, listing)
	}

	for _, e := range listing.Accounts {
		_, _ = fmt.Fprintf(w, "%s: %s\n", e.ID, e.Username)
	}
	return nil
}
