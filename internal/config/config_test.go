package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ReadsJSONFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	content := `{"user_id": "u-123", "verbose": true, "lite_model": "gemini-2.5-flash-lite", "standard_model": "gemini-2.5-flash"}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "u-123", cfg.UserID)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, "gemini-2.5-flash-lite", cfg.LiteModel)
}

func TestLoadConfig_EmptyPathFails(t *testing.T) {
	_, err := LoadConfig("")
	require.Error(t, err)
}

func TestLoadConfig_InvalidJSONFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestValidate_ModelsMustBeSetTogether(t *testing.T) {
	cfg := Config{LiteModel: "gemini-2.5-flash-lite"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be set together")
}

func TestValidate_MissingSchemaFileFails(t *testing.T) {
	cfg := Config{SchemaPath: "/nonexistent/schema.json"}
	err := cfg.Validate()
	require.Error(t, err)
}

func TestFromEnv_FillsOnlyEmptyFields(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("DATABASE_URL", "postgres://env")

	cfg := Config{APIKey: "explicit-key"}
	cfg.FromEnv()

	assert.Equal(t, "explicit-key", cfg.APIKey)
	assert.Equal(t, "postgres://env", cfg.DatabaseURL)
}

func TestMergeWithDefaults_FillsEmptyStrings(t *testing.T) {
	cfg := Config{UserID: "u-1"}
	merged := cfg.MergeWithDefaults(Config{UserID: "u-default", DatabaseURL: "postgres://default"})

	assert.Equal(t, "u-1", merged.UserID)
	assert.Equal(t, "postgres://default", merged.DatabaseURL)
}
