package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVersionCommand(t *testing.T) {
	cmd := NewVersionCommand("1.0.0", "abc123", "2026-03-01", "goreleaser")

	assert.Equal(t, "version", cmd.Use)
	assert.Equal(t, "Print version information", cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.NotEmpty(t, cmd.Example)
}

func TestPrintVersion(t *testing.T) {
	info := VersionInfo{
		Version: "1.0.0",
		Commit:  "abc123",
		Date:    "2026-03-01",
		BuiltBy: "goreleaser",
	}

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, printVersion(&buf, info, false))

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 4)
		assert.Equal(t, "lunar-accounts version 1.0.0", lines[0])
		assert.Equal(t, "Commit: abc123", lines[1])
		assert.Equal(t, "Built: 2026-03-01", lines[2])
		assert.Equal(t, "Built by: goreleaser", lines[3])
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, printVersion(&buf, info, true))

		var result struct {
			Status string      `json:"status"`
			Data   VersionInfo `json:"data"`
		}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
		assert.Equal(t, "success", result.Status)
		assert.Equal(t, info, result.Data)
	})
}

func TestVersionCommand_Execute(t *testing.T) {
	tests := []struct {
		name       string
		jsonMode   bool
		wantOutput []string
	}{
		{
			name:       "text output",
			wantOutput: []string{"lunar-accounts version 1.0.0", "Commit: abc123"},
		},
		{
			name:       "json output",
			jsonMode:   true,
			wantOutput: []string{`"status": "success"`, `"version": "1.0.0"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jsonOut = tt.jsonMode
			defer func() { jsonOut = false }()

			cmd := NewVersionCommand("1.0.0", "abc123", "2026-03-01", "goreleaser")
			cmd.SetArgs([]string{})

			var out bytes.Buffer
			cmd.SetOut(&out)
			cmd.SetErr(&out)

			require.NoError(t, cmd.Execute())
			for _, want := range tt.wantOutput {
				assert.Contains(t, out.String(), want)
			}
		})
	}
}
