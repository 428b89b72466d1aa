package accounts

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	domain "github.com/steviee/lunar-accounts/internal/accounts"
	"github.com/steviee/lunar-accounts/internal/cli/output"
)

// NewCreateCommand creates the accounts create command.
func NewCreateCommand() *cobra.Command {
	var generate bool

	cmd := &cobra.Command{
		Use:   "create <uuid> <username>",
		Short: "Create an account",
		Long: `Create an offline account under the given UUID.

An existing account with the same UUID is replaced. The first account
created becomes the active account. Usernames outside 3-16 characters
or containing spaces are accepted with a warning.`,
		Example: `  # Create an account
  lunar-accounts accounts create 069a79f4-44e9-4726-a5be-fca90e38aaf5 Notch

  # Create an account with a random UUID
  lunar-accounts accounts create --generate Notch`,
		Aliases: []string{"add"},
		Args: func(cmd *cobra.Command, args []string) error {
			if generate {
				return cobra.ExactArgs(1)(cmd, args)
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var id, username string
			if generate {
				id, username = uuid.NewString(), args[0]
			} else {
				id, username = args[0], args[1]
			}

			ctx := cmd.Context()
			store, doc, err := openStore(ctx)
			if err != nil {
				return output.Error(cmd.OutOrStdout(), jsonOutput(cmd), err)
			}
			return runCreate(ctx, cmd.OutOrStdout(), store, doc, id, username, jsonOutput(cmd))
		},
	}

	cmd.Flags().BoolVarP(&generate, "generate", "g", false, "Generate a random UUID for the account")

	return cmd
}

func runCreate(ctx context.Context, w io.Writer, store Persister, doc *domain.Document, id, username string, jsonOutput bool) error {
	warnings := domain.CheckUsername(username)

	record, err := doc.Create(id, username)
	if err != nil {
		return output.Error(w, jsonOutput, err)
	}

	if err := store.Persist(ctx, doc); err != nil {
		return output.Error(w, jsonOutput, err)
	}

	if jsonOutput {
		data := map[string]any{
			"account": domain.Entry{ID: id, Username: record.Username},
			"active":  doc.ActiveAccountLocalID == id,
		}
		if len(warnings) > 0 {
			data["warnings"] = warnings
		}
		return output.Success(w, data, fmt.Sprintf("Created account %s", id))
	}

	for _, warning := range warnings {
		_, _ = fmt.Fprintf(w, "Warning: %s\n", warning)
	}
	_, _ = fmt.Fprintf(w, "Created account %s: %s\n", id, record.Username)

	return nil
}
