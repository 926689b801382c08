package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cornerpeek/internal/journal"
	"cornerpeek/internal/peek"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestExecuteReportsUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown flag", []string{"--bogus-flag"}, "unknown flag: --bogus-flag"},
		{"unknown command", []string{"nosuch"}, `unknown command "nosuch"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stderr bytes.Buffer
			rootCmd.SetOut(&bytes.Buffer{})
			rootCmd.SetErr(&stderr)
			rootCmd.SetArgs(tt.args)

			require.Error(t, executeRoot())
			assert.Contains(t, stderr.String(), "Error: ")
			assert.Contains(t, stderr.String(), tt.want)
		})
	}
}

func TestConfigCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"corner_zone": 250}`), 0600))

	out := execute(t, "--config", path, "config")

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 250.0, got["corner_zone"])
	assert.Equal(t, 500.0, got["widget_size"])

	out = execute(t, "--config", path, "config", "path")
	assert.Equal(t, path, strings.TrimSpace(out))
}

func TestStatsAndPruneCommands(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "journal.db")

	j, err := journal.Open(dbPath)
	require.NoError(t, err)
	now := time.Now()
	require.NoError(t, j.Record(t.Context(), "hidden", now.Add(-72*time.Hour)))
	require.NoError(t, j.Record(t.Context(), "peeking", now.Add(-time.Minute)))
	require.NoError(t, j.Close())

	out := execute(t, "--journal", dbPath, "stats", "--recent", "5")
	assert.Contains(t, out, "peeking   1")
	assert.Contains(t, out, "total     2")
	assert.Contains(t, out, "Recent:")

	out = execute(t, "--journal", dbPath, "prune", "--older-than", "24h")
	assert.Contains(t, out, "Removed 1 transitions")

	out = execute(t, "--journal", dbPath, "stats", "--recent", "0")
	assert.Contains(t, out, "total     1")
	assert.NotContains(t, out, "Recent:")
}

func TestWriteStats_Empty(t *testing.T) {
	var buf bytes.Buffer
	writeStats(&buf, journal.Summary{Counts: map[string]int{}}, nil, time.Now())
	assert.Equal(t, "No transitions recorded\n", buf.String())
}

func TestWriteStats(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := journal.Summary{
		Counts: map[string]int{"hidden": 1500, "peeking": 1499, "expanded": 1},
		Total:  3000,
		Last:   now.Add(-3 * time.Hour),
	}
	recent := []journal.Transition{
		{ID: 3000, State: "hidden", At: now.Add(-3 * time.Hour)},
	}

	var buf bytes.Buffer
	writeStats(&buf, s, recent, now)

	want := `hidden    1,500
peeking   1,499
expanded  1
total     3,000
last      3 hours ago

Recent:
  hidden    3 hours ago
`
	assert.Equal(t, want, buf.String())
}

func TestWriteGeometry(t *testing.T) {
	var buf bytes.Buffer
	writeGeometry(&buf, peek.NewGeometry(1920, 1080, peek.DefaultParams()))

	want := `screen   1920x1080
hidden   (1520, 680)
peek     (1420, 580)
corner   x >= 1620, y >= 780
`
	assert.Equal(t, want, buf.String())
}
