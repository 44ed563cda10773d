package proxy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTable(t *testing.T) {
	table := DefaultTable("http://localhost:5000")
	require.NoError(t, table.Validate())
	assert.Len(t, table.Rules, 3)

	rule, ok := table.Match("/socket.io/?EIO=4&transport=websocket")
	require.True(t, ok)
	assert.True(t, rule.WebSocket)
}

func TestMatchLongestPrefixWins(t *testing.T) {
	table := DefaultTable("http://localhost:5000")

	rule, ok := table.Match("/api/v1/citizens")
	require.True(t, ok)
	assert.Equal(t, "/api/v1", rule.Prefix)

	rule, ok = table.Match("/api/feedback")
	require.True(t, ok)
	assert.Equal(t, "/api", rule.Prefix)

	_, ok = table.Match("/queue")
	assert.False(t, ok)
}

func TestLoadTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := `target: http://127.0.0.1:5000
rules:
  - prefix: /api/v1
  - prefix: /api
  - prefix: /socket.io
    websocket: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	table, err := LoadTable(path)
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:5000", table.Target)
	assert.Len(t, table.Rules, 3)
	assert.True(t, table.Rules[2].WebSocket)
}

func TestLoadTableRejectsBadInput(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadTable(filepath.Join(dir, "absent.yaml"))
	assert.Error(t, err)

	badTarget := filepath.Join(dir, "bad-target.yaml")
	require.NoError(t, os.WriteFile(badTarget, []byte("target: not-a-url\nrules:\n  - prefix: /api\n"), 0o644))
	_, err = LoadTable(badTarget)
	assert.ErrorContains(t, err, "not an absolute URL")

	badPrefix := filepath.Join(dir, "bad-prefix.yaml")
	require.NoError(t, os.WriteFile(badPrefix, []byte("target: http://localhost:5000\nrules:\n  - prefix: api\n"), 0o644))
	_, err = LoadTable(badPrefix)
	assert.ErrorContains(t, err, "must start with /")

	noRules := filepath.Join(dir, "no-rules.yaml")
	require.NoError(t, os.WriteFile(noRules, []byte("target: http://localhost:5000\n"), 0o644))
	_, err = LoadTable(noRules)
	assert.ErrorContains(t, err, "no rules")
}
