package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) (string, bool) { return "", false }

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644))
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir, noEnv)

	require.NoError(t, err)
	assert.Equal(t, "", cfg.Prefix)
	assert.Empty(t, cfg.Prefixes)
	assert.Equal(t, DefaultMaxLength, cfg.MaxLength)
	assert.False(t, cfg.UseAI)
	assert.Equal(t, "", cfg.OpenAIAPIKey)
	assert.Equal(t, DefaultModel, cfg.OpenAIModel)
	assert.False(t, cfg.ConventionalCommits)
}

func TestLoad_PartialFileFillsOnlyMissingKeys(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `[autocommit]
max_length = 50
use_ai = TRUE
`)

	cfg, err := Load(dir, noEnv)

	require.NoError(t, err)
	assert.Equal(t, 50, cfg.MaxLength)
	assert.True(t, cfg.UseAI)
	// Absent keys keep their defaults.
	assert.Equal(t, "", cfg.Prefix)
	assert.Equal(t, DefaultModel, cfg.OpenAIModel)
	assert.False(t, cfg.ConventionalCommits)
}

func TestLoad_FullFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `[autocommit]
prefix = [JIRA-42]
prefixes = feat:, fix:, docs:
max_length = 100
use_ai = true
openai_api_key = sk-test
openai_model = gpt-4o
conventional_commits = true
`)

	cfg, err := Load(dir, noEnv)

	require.NoError(t, err)
	assert.Equal(t, "[JIRA-42]", cfg.Prefix)
	assert.Equal(t, []string{"feat:", "fix:", "docs:"}, cfg.Prefixes)
	assert.Equal(t, 100, cfg.MaxLength)
	assert.True(t, cfg.UseAI)
	assert.Equal(t, "sk-test", cfg.OpenAIAPIKey)
	assert.Equal(t, "gpt-4o", cfg.OpenAIModel)
	assert.True(t, cfg.ConventionalCommits)
}

func TestLoad_UnknownKeysIgnored(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `[autocommit]
max_length = 60
no_such_key = whatever
`)

	cfg, err := Load(dir, noEnv)

	require.NoError(t, err)
	assert.Equal(t, 60, cfg.MaxLength)
}

func TestLoad_MalformedValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad int", "[autocommit]\nmax_length = many\n"},
		{"negative length", "[autocommit]\nmax_length = -5\n"},
		{"bad bool use_ai", "[autocommit]\nuse_ai = maybe\n"},
		{"bad bool conventional", "[autocommit]\nconventional_commits = 7up\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tt.content)

			_, err := Load(dir, noEnv)
			require.Error(t, err)
		})
	}
}

func TestLoad_EnvFillsOnlyBlankKey(t *testing.T) {
	env := func(name string) (string, bool) {
		if name == EnvAPIKey {
			return "sk-from-env", true
		}
		return "", false
	}

	t.Run("blank key takes env", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "[autocommit]\nopenai_api_key =\n")

		cfg, err := Load(dir, env)
		require.NoError(t, err)
		assert.Equal(t, "sk-from-env", cfg.OpenAIAPIKey)
	})

	t.Run("configured key wins over env", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "[autocommit]\nopenai_api_key = sk-from-file\n")

		cfg, err := Load(dir, env)
		require.NoError(t, err)
		assert.Equal(t, "sk-from-file", cfg.OpenAIAPIKey)
	})
}

func TestSetup_WritesLoadableDefaults(t *testing.T) {
	dir := t.TempDir()

	path, err := Setup(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, FileName), path)

	cfg, err := Load(dir, noEnv)
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxLength, cfg.MaxLength)
	assert.Equal(t, DefaultModel, cfg.OpenAIModel)
	assert.False(t, cfg.UseAI)
	assert.False(t, cfg.ConventionalCommits)
	assert.NotEmpty(t, cfg.Prefixes)
}

func TestSetup_SecondRunFailsWithoutTouchingFile(t *testing.T) {
	dir := t.TempDir()

	path, err := Setup(dir)
	require.NoError(t, err)

	before, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = Setup(dir)
	require.ErrorIs(t, err, ErrConfigExists)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}
