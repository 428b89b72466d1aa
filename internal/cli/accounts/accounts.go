package accounts

import (
	"context"

	"github.com/spf13/cobra"
	domain "github.com/steviee/lunar-accounts/internal/accounts"
	"github.com/steviee/lunar-accounts/internal/state"
)

// NewCommand creates the accounts command group
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage accounts without the interactive menu",
		Long: `Create, remove, and list accounts from scripts.

Commands in this group perform the same operations as the interactive
menu and write the accounts file after every change.`,
		Example: `  # Create an account
  lunar-accounts accounts create 069a79f4-44e9-4726-a5be-fca90e38aaf5 Notch

  # Create an account with a random UUID
  lunar-accounts accounts create --generate Notch

  # Remove premium accounts
  lunar-accounts accounts remove --premium

  # List accounts
  lunar-accounts accounts list

  # Show accounts file details
  lunar-accounts accounts info`,
		Aliases: []string{"account", "acc"},
	}

	cmd.AddCommand(NewCreateCommand())
	cmd.AddCommand(NewRemoveCommand())
	cmd.AddCommand(NewListCommand())
	cmd.AddCommand(NewInfoCommand())

	return cmd
}

// Persister writes the whole document back to its backing file.
type Persister interface {
	Persist(ctx context.Context, doc *domain.Document) error
}

// openStore resolves the accounts file from the command configuration and
// loads it, creating an empty one first if needed.
func openStore(ctx context.Context) (*state.Store, *domain.Document, error) {
	store := state.NewStoreFromConfig(state.ConfigFromContext(ctx))
	doc, err := store.Open(ctx)
	if err != nil {
		return nil, nil, err
	}
	return store, doc, nil
}

// jsonOutput reports whether the inherited --json flag is set.
func jsonOutput(cmd *cobra.Command) bool {
	v, err := cmd.Flags().GetBool("json")
	return err == nil && v
}
