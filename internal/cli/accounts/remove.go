package accounts

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	domain "github.com/steviee/lunar-accounts/internal/accounts"
	"github.com/steviee/lunar-accounts/internal/cli/output"
)

// Removal filters.
const (
	FilterAll     = "all"
	FilterCracked = "cracked"
	FilterPremium = "premium"
)

// NewRemoveCommand creates the accounts remove command.
func NewRemoveCommand() *cobra.Command {
	var all, cracked, premium bool

	cmd := &cobra.Command{
		Use:   "remove [uuid]",
		Short: "Remove accounts",
		Long: `Remove a single account by UUID, or remove accounts with a filter.

  --all      removes every account
  --cracked  keeps only accounts whose access token equals their UUID
  --premium  keeps only accounts whose access token differs from their UUID

The active account setting is left unchanged.`,
		Example: `  # Remove one account
  lunar-accounts accounts remove 069a79f4-44e9-4726-a5be-fca90e38aaf5

  # Remove every account
  lunar-accounts accounts remove --all

  # Remove premium accounts
  lunar-accounts accounts remove --premium`,
		Args:    cobra.MaximumNArgs(1),
		Aliases: []string{"rm", "del"},
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, id, err := removeTarget(args, all, cracked, premium)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			store, doc, err := openStore(ctx)
			if err != nil {
				return output.Error(cmd.OutOrStdout(), jsonOutput(cmd), err)
			}
			return runRemove(ctx, cmd.OutOrStdout(), store, doc, filter, id, jsonOutput(cmd))
		},
	}

	cmd.Flags().BoolVar(&all, FilterAll, false, "Remove all accounts")
	cmd.Flags().BoolVar(&cracked, FilterCracked, false, "Remove cracked accounts")
	cmd.Flags().BoolVar(&premium, FilterPremium, false, "Remove premium accounts")
	cmd.MarkFlagsMutuallyExclusive(FilterAll, FilterCracked, FilterPremium)

	return cmd
}

// removeTarget checks that exactly one of a UUID argument or a filter
// flag was given.
func removeTarget(args []string, all, cracked, premium bool) (filter, id string, err error) {
	count := len(args)
	for name, set := range map[string]bool{FilterAll: all, FilterCracked: cracked, FilterPremium: premium} {
		if set {
			filter = name
			count++
		}
	}

	if count != 1 {
		return "", "", fmt.Errorf("specify exactly one of a UUID, --all, --cracked, or --premium")
	}
	if len(args) == 1 {
		return "", args[0], nil
	}
	return filter, "", nil
}

func runRemove(ctx context.Context, w io.Writer, store Persister, doc *domain.Document, filter, id string, jsonOutput bool) error {
	var removed int

	switch filter {
	case FilterAll:
		removed = doc.RemoveAll()
	case FilterCracked:
		removed = doc.RemoveCracked()
	case FilterPremium:
		removed = doc.RemovePremium()
	case "":
		if err := domain.ValidateUUID(id); err != nil {
			return output.Error(w, jsonOutput, err)
		}
		if !doc.Remove(id) {
			return output.Error(w, jsonOutput, fmt.Errorf("account %s not found", id))
		}
		removed = 1
	default:
		return output.Error(w, jsonOutput, fmt.Errorf("%w: unknown filter %q", domain.ErrInvalidOption, filter))
	}

	if err := store.Persist(ctx, doc); err != nil {
		return output.Error(w, jsonOutput, err)
	}

	message := fmt.Sprintf("Removed %d account(s), %d remaining", removed, doc.Len())

	if jsonOutput {
		data := map[string]any{
			"removed":   removed,
			"remaining": doc.Len(),
		}
		if filter != "" {
			data["filter"] = filter
		} else {
			data["uuid"] = id
		}
		return output.Success(w, data, message)
	}

	_, _ = fmt.Fprintln(w, message)
	return nil
}
