package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/notion-ingest/internal/core/domain"
)

// execute runs the root command with args and captures output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		flagConfig = ""
		flagVerbose = false
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

// missingConfig points the CLI at a config file that does not exist.
func missingConfig(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "config.toml")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "notion-ingest version")
}

func TestSyncCommand(t *testing.T) {
	t.Run("fails without a token", func(t *testing.T) {
		t.Setenv("NOTION_TOKEN", "")

		_, err := execute(t, "sync", "--config", missingConfig(t))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "token")
	})

	t.Run("fails without any seed ids", func(t *testing.T) {
		t.Setenv("NOTION_TOKEN", "")

		_, err := execute(t, "sync",
			"--config", missingConfig(t),
			"--token", "secret_test")

		require.Error(t, err)
	})

	t.Run("rejects malformed seed ids", func(t *testing.T) {
		t.Setenv("NOTION_TOKEN", "")

		_, err := execute(t, "sync",
			"--config", missingConfig(t),
			"--token", "secret_test",
			"--page-ids", "not-a-uuid")

		require.Error(t, err)
	})
}

func TestValidateCommand(t *testing.T) {
	t.Run("fails without a token", func(t *testing.T) {
		t.Setenv("NOTION_TOKEN", "")

		_, err := execute(t, "validate", "--config", missingConfig(t))

		require.Error(t, err)
	})
}

func TestStatusCommand(t *testing.T) {
	t.Run("reports when no sync has run", func(t *testing.T) {
		out, err := execute(t, "status", "--data-dir", t.TempDir())

		require.NoError(t, err)
		assert.Contains(t, out, "No sync has run yet")
	})
}

func TestStaticTokenProvider(t *testing.T) {
	t.Run("serves the configured token", func(t *testing.T) {
		p := staticTokenProvider{token: "secret"}

		token, err := p.GetToken(context.Background())
		require.NoError(t, err)

		assert.Equal(t, "secret", token)
		assert.True(t, p.IsAuthenticated())
	})

	t.Run("empty token requires auth", func(t *testing.T) {
		p := staticTokenProvider{}

		_, err := p.GetToken(context.Background())

		assert.ErrorIs(t, err, domain.ErrAuthRequired)
		assert.False(t, p.IsAuthenticated())
	})
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList("a, b"))
	assert.Equal(t, []string{"a"}, splitList("a,,"))
	assert.Empty(t, splitList(""))
}
