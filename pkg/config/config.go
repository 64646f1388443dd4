// Package config loads the layered lectorgo configuration:
// built-in defaults, then the YAML config file, then a local .env file,
// then process environment variables. Later layers win.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Log     LogConfig     `yaml:"log"`
	Request RequestConfig `yaml:"request"`
	Reader  ReaderConfig  `yaml:"reader"`
	LLM     LLMConfig     `yaml:"llm"`
	TTS     TTSConfig     `yaml:"tts"`
	Audio   AudioConfig   `yaml:"audio"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"` // empty = stderr only
}

// RequestConfig holds HTTP request settings.
type RequestConfig struct {
	Retries int           `yaml:"retries"`
	Timeout Duration      `yaml:"timeout"`
	Backoff BackoffConfig `yaml:"backoff"`
}

// BackoffConfig holds exponential backoff settings.
type BackoffConfig struct {
	BaseDelay Duration `yaml:"base_delay"`
	MaxDelay  Duration `yaml:"max_delay"`
}

// ReaderConfig holds settings for fetching article content from URLs.
type ReaderConfig struct {
	Endpoint string   `yaml:"endpoint"` // reader proxy, prepended to the target URL
	Timeout  Duration `yaml:"timeout"`
}

// LLMConfig holds settings for the summarization capability.
type LLMConfig struct {
	FallbackOrder List   `yaml:"fallback_order"`
	TranslateTo   string `yaml:"translate_to_lang"`

	Gemini   GeminiConfig   `yaml:"gemini"`
	OpenAI   OpenAIConfig   `yaml:"openai"`
	DeepSeek DeepSeekConfig `yaml:"deepseek"`
	Ollama   OllamaConfig   `yaml:"ollama"`
}

// GeminiConfig holds settings for the Google Gemini provider.
type GeminiConfig struct {
	Key    string `yaml:"key"`
	Models List   `yaml:"models"`
}

// OpenAIConfig holds settings for the OpenAI provider.
type OpenAIConfig struct {
	Key     string `yaml:"key"`
	BaseURL string `yaml:"base_url"` // override for OpenAI-compatible endpoints
	Models  List   `yaml:"models"`
}

// DeepSeekConfig holds settings for the DeepSeek provider.
type DeepSeekConfig struct {
	Key    string `yaml:"key"`
	Models List   `yaml:"models"`
}

// OllamaConfig holds settings for a local Ollama server.
// The base URL doubles as the credential: no URL, no provider.
type OllamaConfig struct {
	BaseURL string `yaml:"base_url"`
	Models  List   `yaml:"models"`
}

// TTSConfig holds settings for the speech synthesis capability.
type TTSConfig struct {
	FallbackOrder List `yaml:"fallback_order"`

	GoogleTTS  GoogleTTSConfig  `yaml:"google_tts"`
	GTranslate GTranslateConfig `yaml:"gtranslate"`
	EdgeTTS    EdgeTTSConfig    `yaml:"edge_tts"`
}

// GoogleTTSConfig holds settings for Google Cloud Text-to-Speech.
// Voices act as the provider's model list for fallback purposes.
type GoogleTTSConfig struct {
	Key      string `yaml:"key"`
	Language string `yaml:"language"`
	Voices   List   `yaml:"voices"`
}

// GTranslateConfig holds settings for the Google Translate TTS fallback.
// The endpoint is voice-less; only the language is configurable.
type GTranslateConfig struct {
	Language string `yaml:"language"`
}

// EdgeTTSConfig holds settings for Microsoft Edge TTS.
type EdgeTTSConfig struct {
	Voices List `yaml:"voices"`
}

// AudioConfig holds playback settings.
type AudioConfig struct {
	VolumeDB float64 `yaml:"volume_db"` // negative = quieter, 0 = unchanged
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level: "INFO",
			Path:  "",
		},
		Request: RequestConfig{
			Retries: 3,
			Timeout: Duration(45 * time.Second),
			Backoff: BackoffConfig{
				BaseDelay: Duration(1 * time.Second),
				MaxDelay:  Duration(30 * time.Second),
			},
		},
		Reader: ReaderConfig{
			Endpoint: "https://r.jina.ai/",
			Timeout:  Duration(30 * time.Second),
		},
		LLM: LLMConfig{
			FallbackOrder: List{"gemini", "openai"},
			TranslateTo:   "en",
			Gemini: GeminiConfig{
				Key:    "",
				Models: List{"gemini-2.5-flash", "gemini-2.5-flash-lite"},
			},
			OpenAI: OpenAIConfig{
				Key:     "",
				BaseURL: "https://api.openai.com/v1",
				Models:  List{"gpt-4o-mini"},
			},
			DeepSeek: DeepSeekConfig{
				Key:    "",
				Models: List{"deepseek-chat"},
			},
			Ollama: OllamaConfig{
				BaseURL: "",
				Models:  List{},
			},
		},
		TTS: TTSConfig{
			FallbackOrder: List{"googletts", "gtranslate"},
			GoogleTTS: GoogleTTSConfig{
				Key:      "",
				Language: "en-US",
				Voices:   List{"en-US-Wavenet-D"},
			},
			GTranslate: GTranslateConfig{
				Language: "en",
			},
			EdgeTTS: EdgeTTSConfig{
				Voices: List{"en-US-AvaMultilingualNeural"},
			},
		},
		Audio: AudioConfig{
			VolumeDB: 0,
		},
	}
}

// Load loads the configuration from the given path.
// A missing file is not an error; the environment alone is a valid
// configuration (keys are usually provided via .env).
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if data, err := os.ReadFile(path); err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	// Local .env, then the process environment on top.
	_ = godotenv.Load()
	cfg.applyEnv()

	return cfg, nil
}

// applyEnv overlays environment variables onto the configuration.
// The variable names mirror the classic speaker-script surface
// (GEMINI_API_KEY, LLM_FALLBACK_ORDER, ...).
func (c *Config) applyEnv() {
	setString(&c.Log.Level, "LECTORGO_LOG_LEVEL")

	setList(&c.LLM.FallbackOrder, "LLM_FALLBACK_ORDER")
	setString(&c.LLM.TranslateTo, "TRANSLATE_TO_LANG")

	setString(&c.LLM.Gemini.Key, "GEMINI_API_KEY")
	setList(&c.LLM.Gemini.Models, "GEMINI_MODELS", "GEMINI_MODEL")
	setString(&c.LLM.OpenAI.Key, "OPENAI_API_KEY")
	setString(&c.LLM.OpenAI.BaseURL, "OPENAI_BASE_URL")
	setList(&c.LLM.OpenAI.Models, "OPENAI_MODELS", "OPENAI_MODEL")
	setString(&c.LLM.DeepSeek.Key, "DEEPSEEK_API_KEY")
	setList(&c.LLM.DeepSeek.Models, "DEEPSEEK_MODELS", "DEEPSEEK_MODEL")
	setString(&c.LLM.Ollama.BaseURL, "OLLAMA_BASE_URL")
	setList(&c.LLM.Ollama.Models, "OLLAMA_MODELS", "OLLAMA_MODEL")

	setList(&c.TTS.FallbackOrder, "TTS_FALLBACK_ORDER")
	setString(&c.TTS.GoogleTTS.Key, "GOOGLE_TTS_API_KEY")
	setString(&c.TTS.GoogleTTS.Language, "GOOGLE_TTS_LANGUAGE")
	setList(&c.TTS.GoogleTTS.Voices, "GOOGLE_TTS_VOICES", "GOOGLE_TTS_VOICE")
	setString(&c.TTS.GTranslate.Language, "GTRANSLATE_LANGUAGE")
	setList(&c.TTS.EdgeTTS.Voices, "EDGE_TTS_VOICES", "EDGE_TTS_VOICE")

	// The classic script reused the Gemini key for Google TTS.
	if c.TTS.GoogleTTS.Key == "" {
		c.TTS.GoogleTTS.Key = c.LLM.Gemini.Key
	}
}

func setString(dst *string, names ...string) {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			*dst = v
			return
		}
	}
}

func setList(dst *List, names ...string) {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			*dst = SplitList(v)
			return
		}
	}
}

// GenerateDefault writes a default config file to the path.
func GenerateDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# lectorgo configuration
# ----------------------
# Values here are overridden by .env and environment variables
# (GEMINI_API_KEY, LLM_FALLBACK_ORDER, TTS_FALLBACK_ORDER, ...).
# Duration units: ns, us, ms, s, m, h, d (day), w (week)

`)
	return os.WriteFile(path, append(header, data...), 0o644)
}
