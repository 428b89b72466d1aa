package accounts

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecord(t *testing.T) {
	r := NewRecord(uuidA, "Notch")

	assert.Equal(t, uuidA, r.AccessToken)
	assert.Equal(t, uuidA, r.LocalID)
	assert.Equal(t, uuidA, r.RemoteID)
	assert.Equal(t, uuidA, r.MinecraftProfile.ID)
	assert.Equal(t, "Notch", r.MinecraftProfile.Name)
	assert.Equal(t, "Notch", r.Username)
	assert.Equal(t, PlaceholderExpiry, r.AccessTokenExpiresAt)
	assert.Equal(t, AccountTypeXbox, r.Type)
	assert.False(t, r.EligibleForMigration)
	assert.False(t, r.HasMultipleProfiles)
	assert.True(t, r.Legacy)
	assert.True(t, r.Persistent)
	assert.NotNil(t, r.UserProperties)
	assert.Empty(t, r.UserProperties)
}

func TestRecord_MarshalJSON_FieldNames(t *testing.T) {
	data, err := json.Marshal(NewRecord(uuidA, "Notch"))
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))

	for _, key := range recordKeys {
		assert.Contains(t, fields, key)
	}
	assert.Equal(t, []any{}, fields["userProperties"])
	assert.Equal(t, map[string]any{"id": uuidA, "name": "Notch"}, fields["minecraftProfile"])
	assert.Equal(t, "Xbox", fields["type"])
	assert.Len(t, fields, len(recordKeys))
}

func TestDocument_RoundTrip(t *testing.T) {
	doc := NewDocument()
	_, err := doc.Create(uuidA, "Notch")
	require.NoError(t, err)
	_, err = doc.Create(uuidB, "jeb_")
	require.NoError(t, err)

	data, err := json.MarshalIndent(doc, "", "  ")
	require.NoError(t, err)

	loaded := &Document{}
	require.NoError(t, json.Unmarshal(data, loaded))

	assert.Equal(t, doc, loaded)
}

func TestDocument_PreservesUnknownFields(t *testing.T) {
	input := `{
  "accounts": {
    "` + uuidA + `": {
      "accessToken": "premium-token",
      "username": "Notch",
      "minecraftProfile": {"id": "` + uuidA + `", "name": "Notch"},
      "skin": {"url": "https://example.invalid/skin.png", "slim": true}
    }
  },
  "activeAccountLocalId": "` + uuidA + `",
  "launcherVersion": 3
}`

	var doc Document
	require.NoError(t, json.Unmarshal([]byte(input), &doc))

	assert.Equal(t, map[string]any{"launcherVersion": float64(3)}, doc.Extra)
	require.Contains(t, doc.Accounts, uuidA)
	assert.Equal(t, map[string]any{
		"skin": map[string]any{"url": "https://example.invalid/skin.png", "slim": true},
	}, doc.Accounts[uuidA].Extra)

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var again Document
	require.NoError(t, json.Unmarshal(data, &again))
	assert.Equal(t, doc, again)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, float64(3), raw["launcherVersion"])
}

func TestRecord_MarshalKeepsKeysAsRead(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "launcher premium record",
			input: `{"accessToken": "ey.tok", "userProperites": [], "localId": "` + uuidA + `", "username": "Prem", "type": "Xbox"}`,
		},
		{
			name:  "partial profile",
			input: `{"accessToken": "ey.tok", "minecraftProfile": {"name": "Prem"}}`,
		},
		{
			name:  "null profile",
			input: `{"accessToken": "ey.tok", "minecraftProfile": null, "userProperties": null}`,
		},
		{
			name:  "zero values that were present",
			input: `{"legacy": false, "persistent": false, "remoteId": "", "minecraftProfile": {"id": "", "name": ""}}`,
		},
		{
			name:  "empty object",
			input: `{}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Record
			require.NoError(t, json.Unmarshal([]byte(tt.input), &r))

			data, err := json.Marshal(r)
			require.NoError(t, err)
			assert.JSONEq(t, tt.input, string(data))
		})
	}
}

func TestRecord_MarshalWritesFieldsSetAfterDecode(t *testing.T) {
	var r Record
	require.NoError(t, json.Unmarshal([]byte(`{"accessToken": "ey.tok"}`), &r))

	r.Username = "Prem"
	r.MinecraftProfile.Name = "Prem"

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"accessToken": "ey.tok", "username": "Prem", "minecraftProfile": {"name": "Prem"}}`, string(data))
}

func TestDocument_MarshalKeepsUntouchedRecords(t *testing.T) {
	input := `{
  "accounts": {
    "` + uuidC + `": {"accessToken": "ey.tok", "userProperites": [], "username": "Prem"}
  },
  "activeAccountLocalId": "` + uuidC + `"
}`

	var doc Document
	require.NoError(t, json.Unmarshal([]byte(input), &doc))
	_, err := doc.Create(uuidA, "Notch")
	require.NoError(t, err)

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var raw struct {
		Accounts map[string]json.RawMessage `json:"accounts"`
	}
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.JSONEq(t, `{"accessToken": "ey.tok", "userProperites": [], "username": "Prem"}`, string(raw.Accounts[uuidC]))

	var created map[string]any
	require.NoError(t, json.Unmarshal(raw.Accounts[uuidA], &created))
	assert.Len(t, created, len(recordKeys))
}

func TestDocument_UnmarshalMissingAccounts(t *testing.T) {
	var doc Document
	require.NoError(t, json.Unmarshal([]byte(`{"activeAccountLocalId": "x"}`), &doc))

	assert.NotNil(t, doc.Accounts)
	assert.Equal(t, 0, doc.Len())
	assert.Equal(t, "x", doc.ActiveAccountLocalID)
}

func TestDocument_MarshalEmpty(t *testing.T) {
	data, err := json.Marshal(Document{})
	require.NoError(t, err)

	assert.JSONEq(t, `{"accounts": {}}`, string(data))
}

func TestDocument_UnmarshalWrongShape(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "array", input: `[]`},
		{name: "accounts is a list", input: `{"accounts": []}`},
		{name: "record is a number", input: `{"accounts": {"a": 5}}`},
		{name: "not json", input: `accounts`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var doc Document
			assert.Error(t, json.Unmarshal([]byte(tt.input), &doc))
		})
	}
}
