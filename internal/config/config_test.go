package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/studyplanner/internal/llm"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"STUDYPLANNER_ADDR", "STUDYPLANNER_LOG_LEVEL", "STUDYPLANNER_LOG_FORMAT",
		"STUDYPLANNER_LLM_PROVIDER", "STUDYPLANNER_LLM_MODEL", "GEMINI_API_KEY",
	} {
		t.Setenv(k, "")
	}
	// STUDYPLANNER_DB distinguishes unset from empty.
	if v, ok := os.LookupEnv("STUDYPLANNER_DB"); ok {
		require.NoError(t, os.Unsetenv("STUDYPLANNER_DB"))
		t.Cleanup(func() { _ = os.Setenv("STUDYPLANNER_DB", v) })
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, DefaultDBPath(), cfg.Database.Path)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "auto", cfg.Logging.Format)
	assert.Equal(t, llm.ProviderGemini, cfg.LLM.Provider)
	assert.Equal(t, "gemini-2.5-flash", cfg.LLM.Model)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "studyplanner.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: "127.0.0.1:9090"
database:
  path: ""
logging:
  level: debug
  format: json
llm:
  provider: ollama
  model: llama3.2
  timeout_ms: 5000
`), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr)
	assert.Empty(t, cfg.Database.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, llm.ProviderOllama, cfg.LLM.Provider)
	assert.Equal(t, "llama3.2", cfg.LLM.Model)
	assert.Equal(t, 5000, cfg.LLM.TimeoutMs)
	// Task timeouts not named in the file keep their defaults.
	assert.Equal(t, 90000, cfg.LLM.Tasks[llm.TaskAnalysis].TimeoutMs)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "studyplanner.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  addr: \":7000\"\n"), 0600))

	t.Setenv("STUDYPLANNER_ADDR", ":7100")
	t.Setenv("STUDYPLANNER_DB", "/tmp/plans.db")
	t.Setenv("STUDYPLANNER_LOG_LEVEL", "warn")
	t.Setenv("GEMINI_API_KEY", "k")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7100", cfg.Server.Addr)
	assert.Equal(t, "/tmp/plans.db", cfg.Database.Path)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "k", cfg.LLM.APIKey)
}

func TestLoad_MalformedYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestValidate_RejectsUnknownValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LLM.Provider = "openai"
	assert.ErrorContains(t, cfg.Validate(), "invalid LLM provider")

	cfg = DefaultConfig()
	cfg.Logging.Format = "xml"
	assert.ErrorContains(t, cfg.Validate(), "invalid log format")

	cfg = DefaultConfig()
	cfg.Logging.Format = "JSON"
	assert.NoError(t, cfg.Validate())
}

func TestSave_RoundTripsThroughLoad(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "studyplanner.yaml")

	cfg := DefaultConfig()
	cfg.Server.Addr = ":6000"
	cfg.Database.Path = "plans.db"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":6000", loaded.Server.Addr)
	assert.Equal(t, "plans.db", loaded.Database.Path)
}

func TestDefaultPath_PrefersEnv(t *testing.T) {
	t.Setenv("STUDYPLANNER_CONFIG", "")
	assert.Equal(t, "studyplanner.yaml", DefaultPath())

	t.Setenv("STUDYPLANNER_CONFIG", "/etc/studyplanner.yaml")
	assert.Equal(t, "/etc/studyplanner.yaml", DefaultPath())
}
