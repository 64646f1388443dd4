package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, List{"gemini", "openai"}, cfg.LLM.FallbackOrder)
	assert.Equal(t, List{"googletts", "gtranslate"}, cfg.TTS.FallbackOrder)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lectorgo.yaml")
	data := `
llm:
  fallback_order: "deepseek,gemini"
  gemini:
    models: [gemini-2.5-pro]
tts:
  fallback_order: [edgetts]
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, List{"deepseek", "gemini"}, cfg.LLM.FallbackOrder)
	assert.Equal(t, List{"gemini-2.5-pro"}, cfg.LLM.Gemini.Models)
	assert.Equal(t, List{"edgetts"}, cfg.TTS.FallbackOrder)
	// Untouched sections keep defaults.
	assert.Equal(t, List{"gpt-4o-mini"}, cfg.LLM.OpenAI.Models)
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("LLM_FALLBACK_ORDER", "openai")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("GEMINI_MODELS", "gemini-2.5-flash, gemini-2.5-flash-lite")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, List{"openai"}, cfg.LLM.FallbackOrder)
	assert.Equal(t, "test-key", cfg.LLM.Gemini.Key)
	assert.Equal(t, List{"gemini-2.5-flash", "gemini-2.5-flash-lite"}, cfg.LLM.Gemini.Models)
}

func TestGoogleTTSKeyFallsBackToGemini(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "shared-key")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "shared-key", cfg.TTS.GoogleTTS.Key)
}

func TestGenerateDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "configs", "lectorgo.yaml")
	require.NoError(t, GenerateDefault(path))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, List{"gemini", "openai"}, cfg.LLM.FallbackOrder)
}
