package accounts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	domain "github.com/steviee/lunar-accounts/internal/accounts"
	"github.com/steviee/lunar-accounts/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	uuidA = "069a79f4-44e9-4726-a5be-fca90e38aaf5"
	uuidB = "853c80ef-3c37-49fd-aa49-938b674adae6"
)

// failingStore rejects every persist.
type failingStore struct{}

func (failingStore) Persist(ctx context.Context, doc *domain.Document) error {
	return errors.New("read-only file system")
}

// testContext returns a context whose configuration points at a fresh
// accounts file in a temp directory.
func testContext(t *testing.T) (context.Context, string) {
	t.Helper()
	cfg := state.DefaultConfig()
	cfg.Store.Path = filepath.Join(t.TempDir(), "settings", "game", "accounts.json")
	return state.ContextWithConfig(context.Background(), cfg), cfg.Store.Path
}

// execute runs the accounts command group with args against ctx.
func execute(ctx context.Context, args ...string) (string, error) {
	cmd := NewCommand()
	cmd.SetArgs(args)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

// mixedDocument holds one cracked and one premium account.
func mixedDocument(t *testing.T) *domain.Document {
	t.Helper()
	doc := domain.NewDocument()
	_, err := doc.Create(uuidA, "Notch")
	require.NoError(t, err)
	premium := domain.NewRecord(uuidB, "jeb_")
	premium.AccessToken = "ey.premium"
	doc.Accounts[uuidB] = premium
	return doc
}

func TestNewCommand(t *testing.T) {
	cmd := NewCommand()

	assert.Equal(t, "accounts", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.NotEmpty(t, cmd.Example)

	names := make([]string, 0, len(cmd.Commands()))
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"create", "remove", "list", "info"}, names)
}

func TestAccountsCommands_EndToEnd(t *testing.T) {
	ctx, path := testContext(t)

	out, err := execute(ctx, "create", uuidB, "jeb_")
	require.NoError(t, err)
	assert.Contains(t, out, "Created account "+uuidB+": jeb_")

	out, err = execute(ctx, "create", uuidA, "Notch")
	require.NoError(t, err)
	assert.NotContains(t, out, "Warning")

	out, err = execute(ctx, "list")
	require.NoError(t, err)
	assert.Equal(t, uuidA+": Notch\n"+uuidB+": jeb_\n", out)

	out, err = execute(ctx, "info")
	require.NoError(t, err)
	assert.Contains(t, out, path)
	assert.Contains(t, out, "Accounts: 2 (2 cracked, 0 premium)")
	assert.Contains(t, out, "Active:   "+uuidB)

	_, err = execute(ctx, "remove", uuidA)
	require.NoError(t, err)

	doc, err := state.NewStore(path).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Entry{{ID: uuidB, Username: "jeb_"}}, doc.Entries())
	assert.Equal(t, uuidB, doc.ActiveAccountLocalID)
}

func TestCreateCommand_Args(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "missing username", args: []string{"create", uuidA}, wantErr: "accepts 2 arg(s)"},
		{name: "generate takes only username", args: []string{"create", "--generate", uuidA, "Notch"}, wantErr: "accepts 1 arg(s)"},
		{name: "invalid uuid", args: []string{"create", "not-a-uuid", "Notch"}, wantErr: "invalid UUID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, path := testContext(t)

			_, err := execute(ctx, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)

			if _, statErr := os.Stat(path); statErr == nil {
				doc, err := state.NewStore(path).Load(ctx)
				require.NoError(t, err)
				assert.Equal(t, 0, doc.Len())
			}
		})
	}
}

func TestCreateCommand_Generate(t *testing.T) {
	ctx, path := testContext(t)

	_, err := execute(ctx, "create", "--generate", "Notch")
	require.NoError(t, err)

	doc, err := state.NewStore(path).Load(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, doc.Len())

	entry := doc.Entries()[0]
	assert.NoError(t, domain.ValidateUUID(entry.ID))
	assert.Equal(t, "Notch", entry.Username)
	assert.Equal(t, entry.ID, doc.ActiveAccountLocalID)
}

func TestRunCreate(t *testing.T) {
	tests := []struct {
		name         string
		username     string
		jsonOutput   bool
		wantContains []string
	}{
		{
			name:         "text output",
			username:     "Notch",
			wantContains: []string{"Created account " + uuidA + ": Notch"},
		},
		{
			name:         "text output with warnings",
			username:     "Mr Notch",
			wantContains: []string{"Warning: username contains a space", "Created account"},
		},
		{
			name:         "json output",
			username:     "Notch",
			jsonOutput:   true,
			wantContains: []string{`"status": "success"`, `"uuid": "` + uuidA + `"`, `"active": true`},
		},
		{
			name:         "json output with warnings",
			username:     "ab",
			jsonOutput:   true,
			wantContains: []string{`"warnings"`, "3-16 characters"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := state.NewStore(filepath.Join(t.TempDir(), "accounts.json"))
			doc := domain.NewDocument()

			var buf bytes.Buffer
			require.NoError(t, runCreate(ctx, &buf, store, doc, uuidA, tt.username, tt.jsonOutput))

			for _, s := range tt.wantContains {
				assert.Contains(t, buf.String(), s)
			}

			loaded, err := store.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, doc, loaded)
		})
	}
}

func TestRunCreate_PersistError(t *testing.T) {
	var buf bytes.Buffer
	err := runCreate(context.Background(), &buf, failingStore{}, domain.NewDocument(), uuidA, "Notch", true)

	require.Error(t, err)
	assert.Contains(t, buf.String(), `"status": "error"`)
	assert.Contains(t, buf.String(), "read-only file system")
}

func TestRemoveTarget(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		all        bool
		cracked    bool
		premium    bool
		wantFilter string
		wantID     string
		wantErr    bool
	}{
		{name: "uuid", args: []string{uuidA}, wantID: uuidA},
		{name: "all", all: true, wantFilter: FilterAll},
		{name: "cracked", cracked: true, wantFilter: FilterCracked},
		{name: "premium", premium: true, wantFilter: FilterPremium},
		{name: "nothing", wantErr: true},
		{name: "uuid and filter", args: []string{uuidA}, all: true, wantErr: true},
		{name: "two filters", cracked: true, premium: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, id, err := removeTarget(tt.args, tt.all, tt.cracked, tt.premium)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantFilter, filter)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestRunRemove(t *testing.T) {
	tests := []struct {
		name        string
		filter      string
		id          string
		wantEntries []domain.Entry
		wantOutput  string
		wantErr     string
	}{
		{
			name:        "all",
			filter:      FilterAll,
			wantEntries: []domain.Entry{},
			wantOutput:  "Removed 2 account(s), 0 remaining",
		},
		{
			name:        "cracked keeps token equal to key",
			filter:      FilterCracked,
			wantEntries: []domain.Entry{{ID: uuidA, Username: "Notch"}},
			wantOutput:  "Removed 1 account(s), 1 remaining",
		},
		{
			name:        "premium keeps token different from key",
			filter:      FilterPremium,
			wantEntries: []domain.Entry{{ID: uuidB, Username: "jeb_"}},
			wantOutput:  "Removed 1 account(s), 1 remaining",
		},
		{
			name:        "single account",
			id:          uuidB,
			wantEntries: []domain.Entry{{ID: uuidA, Username: "Notch"}},
			wantOutput:  "Removed 1 account(s), 1 remaining",
		},
		{
			name:    "unknown account",
			id:      "00000000-0000-0000-0000-000000000000",
			wantErr: "not found",
		},
		{
			name:    "invalid uuid",
			id:      "nope",
			wantErr: "invalid UUID",
		},
		{
			name:    "unknown filter",
			filter:  "expired",
			wantErr: "unknown filter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := state.NewStore(filepath.Join(t.TempDir(), "accounts.json"))
			doc := mixedDocument(t)

			var buf bytes.Buffer
			err := runRemove(ctx, &buf, store, doc, tt.filter, tt.id, false)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Equal(t, 2, doc.Len())
				assert.NoFileExists(t, store.Path())
				return
			}

			require.NoError(t, err)
			assert.Contains(t, buf.String(), tt.wantOutput)
			assert.Equal(t, tt.wantEntries, doc.Entries())
			assert.Equal(t, uuidA, doc.ActiveAccountLocalID)

			loaded, err := store.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.wantEntries, loaded.Entries())
		})
	}
}

func TestRunRemove_JSON(t *testing.T) {
	store := state.NewStore(filepath.Join(t.TempDir(), "accounts.json"))

	var buf bytes.Buffer
	require.NoError(t, runRemove(context.Background(), &buf, store, mixedDocument(t), FilterPremium, "", true))

	var result struct {
		Status string         `json:"status"`
		Data   map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	assert.Equal(t, "success", result.Status)
	assert.Equal(t, FilterPremium, result.Data["filter"])
	assert.Equal(t, float64(1), result.Data["removed"])
	assert.Equal(t, float64(1), result.Data["remaining"])
}

func TestRemoveCommand_RequiresTarget(t *testing.T) {
	ctx, _ := testContext(t)

	_, err := execute(ctx, "remove")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "specify exactly one")

	_, err = execute(ctx, "remove", "--all", "--premium")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "none of the others can be")
}

func TestRunList(t *testing.T) {
	tests := []struct {
		name       string
		jsonOutput bool
		yamlOutput bool
		want       string
		contains   []string
	}{
		{
			name: "text",
			want: uuidA + ": Notch\n" + uuidB + ": jeb_\n",
		},
		{
			name:       "json",
			jsonOutput: true,
			contains:   []string{`"status": "success"`, `"count": 2`, `"active": "` + uuidA + `"`, `"username": "jeb_"`},
		},
		{
			name:       "yaml",
			yamlOutput: true,
			contains:   []string{"active: " + uuidA, "count: 2", "- uuid: " + uuidB, "username: jeb_"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, runList(&buf, mixedDocument(t), tt.jsonOutput, tt.yamlOutput))

			if tt.want != "" {
				assert.Equal(t, tt.want, buf.String())
			}
			for _, s := range tt.contains {
				assert.Contains(t, buf.String(), s)
			}
		})
	}
}

func TestRunList_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, runList(&buf, domain.NewDocument(), false, false))
	assert.Empty(t, buf.String())

	buf.Reset()
	require.NoError(t, runList(&buf, domain.NewDocument(), true, false))
	assert.Contains(t, buf.String(), `"accounts": []`)
}

func TestRunInfo(t *testing.T) {
	ctx := context.Background()
	store := state.NewStore(filepath.Join(t.TempDir(), "accounts.json"))
	doc := mixedDocument(t)
	require.NoError(t, store.Persist(ctx, doc))

	var buf bytes.Buffer
	require.NoError(t, runInfo(&buf, store, doc, false))

	out := buf.String()
	assert.Contains(t, out, "Path:     "+store.Path())
	assert.Contains(t, out, "Size:     ")
	assert.Contains(t, out, "ago")
	assert.Contains(t, out, "Accounts: 2 (1 cracked, 1 premium)")
	assert.Contains(t, out, "Active:   "+uuidA)

	buf.Reset()
	require.NoError(t, runInfo(&buf, store, doc, true))

	var result struct {
		Data Info `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	assert.Equal(t, store.Path(), result.Data.Path)
	assert.Positive(t, result.Data.Size)
	assert.Equal(t, 2, result.Data.Accounts)
	assert.Equal(t, 1, result.Data.Cracked)
}

func TestRunInfo_NoActive(t *testing.T) {
	ctx := context.Background()
	store := state.NewStore(filepath.Join(t.TempDir(), "accounts.json"))
	doc, err := store.Open(ctx)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, runInfo(&buf, store, doc, false))
	assert.Contains(t, buf.String(), "Active:   (none)")
}

func TestCommands_MalformedStore(t *testing.T) {
	ctx, path := testContext(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	for _, args := range [][]string{{"list"}, {"info"}, {"create", uuidA, "Notch"}, {"remove", "--all"}} {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			_, err := execute(ctx, args...)
			require.Error(t, err)
			assert.True(t, domain.IsMalformedStore(err))

			content, readErr := os.ReadFile(path)
			require.NoError(t, readErr)
			assert.Equal(t, "{not json", string(content))
		})
	}
}

// Commands read --json from the root's persistent flags.
func TestJSONOutputFlag(t *testing.T) {
	cmd := &cobra.Command{Use: "x"}
	assert.False(t, jsonOutput(cmd))

	cmd.Flags().Bool("json", false, "")
	require.NoError(t, cmd.Flags().Set("json", "true"))
	assert.True(t, jsonOutput(cmd))
}
