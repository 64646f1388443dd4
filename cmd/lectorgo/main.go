// Command lectorgo reads text or web articles aloud. Input is summarized
// or translated by the first LLM provider that works, synthesized by the
// first TTS provider that works, and the winners are remembered per
// terminal session so the next invocation skips straight to them.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/google/uuid"

	"lectorgo/pkg/affinity"
	"lectorgo/pkg/audio"
	"lectorgo/pkg/config"
	"lectorgo/pkg/content"
	"lectorgo/pkg/fallback"
	"lectorgo/pkg/llm"
	"lectorgo/pkg/llm/deepseek"
	"lectorgo/pkg/llm/gemini"
	"lectorgo/pkg/llm/ollama"
	"lectorgo/pkg/llm/openai"
	"lectorgo/pkg/logging"
	"lectorgo/pkg/request"
	"lectorgo/pkg/session"
	"lectorgo/pkg/textproc"
	"lectorgo/pkg/tracker"
	"lectorgo/pkg/tts"
	"lectorgo/pkg/tts/edgetts"
	"lectorgo/pkg/tts/googletts"
	"lectorgo/pkg/tts/gtranslate"
	"lectorgo/pkg/version"
)

func main() {
	var (
		summarize   = flag.Bool("s", false, "summarize the input before reading it")
		translate   = flag.Bool("t", false, "translate the input before reading it")
		configPath  = flag.String("config", "", "path to config file")
		lang        = flag.String("lang", "", "target language override")
		resetCache  = flag.Bool("reset-cache", false, "forget the remembered providers for this terminal")
		verbose     = flag.Bool("v", false, "enable debug logging")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println("lectorgo " + version.Version)
		return
	}

	if err := run(*summarize, *translate, *configPath, *lang, *resetCache, *verbose, flag.Args()); err != nil {
		slog.Error("failed", "error", err)
		os.Exit(1)
	}
}

func run(summarize, translate bool, configPath, lang string, resetCache, verbose bool, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	level := cfg.Log.Level
	if verbose {
		level = "DEBUG"
	}
	closeLog, err := logging.Init(level, cfg.Log.Path)
	if err != nil {
		return err
	}
	defer closeLog()

	if cfg.Log.Path != "" {
		tts.SetLogPath(filepath.Join(filepath.Dir(cfg.Log.Path), "tts.log"))
	}

	lang = resolveTargetLang(lang, cfg, translate)

	scope := session.Resolve()
	llmStore := affinity.NewStore(fallback.CapabilitySummarize, scope)
	ttsStore := affinity.NewStore(fallback.CapabilitySpeak, scope)
	if resetCache {
		llmStore.Clear()
		ttsStore.Clear()
		slog.Info("provider affinity cleared", "session", scope.Token())
		if len(args) == 0 {
			return nil
		}
	}

	if len(args) == 0 {
		return fmt.Errorf("nothing to read: pass text or a URL")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tr := tracker.New()
	rc := request.New(request.Options{
		Retries:     cfg.Request.Retries,
		Timeout:     cfg.Request.Timeout.Std(),
		BackoffBase: cfg.Request.Backoff.BaseDelay.Std(),
		BackoffMax:  cfg.Request.Backoff.MaxDelay.Std(),
	}, tr)
	defer func() {
		if summary := tr.Summary(); summary != "" {
			slog.Debug("provider statistics\n" + summary)
		}
	}()

	// 1. Acquire text.
	text, err := acquireText(ctx, cfg, rc, args)
	if err != nil {
		return err
	}
	text = textproc.Clean(text)
	if text == "" {
		return fmt.Errorf("no text left after cleanup")
	}

	// 2. Optionally summarize and/or translate. Combining -s and -t asks
	// for the summary in the target language in a single step. An
	// exhausted LLM chain degrades to reading the original text rather
	// than staying silent.
	if summarize || translate {
		speech, err := generateSpeechText(ctx, cfg, rc, tr, llmStore, text, lang, translate && !summarize)
		if err != nil {
			var ex *fallback.ExhaustedError
			if !errors.As(err, &ex) {
				return err
			}
			slog.Warn("all llm providers failed, reading original text", "error", err)
		} else {
			text = textproc.Clean(speech)
		}
	}

	// 3. Synthesize and play.
	return speak(ctx, cfg, rc, tr, ttsStore, text)
}

// resolveTargetLang picks the language the LLM output should be in. A
// plain summary stays in the input's own language; only -t, or an
// explicit -lang, forces one.
func resolveTargetLang(flagLang string, cfg *config.Config, translate bool) string {
	if flagLang != "" {
		return flagLang
	}
	if translate {
		return cfg.LLM.TranslateTo
	}
	return ""
}

// acquireText joins the arguments into the input text, fetching it when
// the sole argument is a URL.
func acquireText(ctx context.Context, cfg *config.Config, rc *request.Client, args []string) (string, error) {
	if len(args) == 1 && content.IsURL(args[0]) {
		fetcher := content.NewFetcher(cfg.Reader.Endpoint, rc)
		slog.Info("fetching article", "url", args[0])
		text, err := fetcher.Fetch(ctx, args[0])
		if err != nil {
			return "", err
		}
		slog.Debug("fetched content\n" + text)
		return text, nil
	}
	return strings.Join(args, " "), nil
}

func generateSpeechText(ctx context.Context, cfg *config.Config, rc *request.Client, tr *tracker.Tracker, store fallback.Store, text, lang string, translateOnly bool) (string, error) {
	history := llmHistory(cfg)

	providers := map[string]llm.Provider{}
	providers["gemini"] = gemini.NewClient(cfg.LLM.Gemini.Key, history, tr)
	if c, err := openai.NewClient("openai", cfg.LLM.OpenAI.Key, cfg.LLM.OpenAI.BaseURL, history, rc); err == nil {
		providers["openai"] = c
	}
	if c, err := deepseek.NewClient(cfg.LLM.DeepSeek.Key, history, rc); err == nil {
		providers["deepseek"] = c
	}
	if c, err := ollama.NewClient(cfg.LLM.Ollama.BaseURL, history, rc); err == nil {
		providers["ollama"] = c
	}

	exec := fallback.NewExecutor(summarizePlan(cfg), store)
	result, err := exec.Execute(ctx, func(ctx context.Context, c fallback.Candidate) (any, error) {
		provider, ok := providers[c.Provider]
		if !ok {
			return nil, fmt.Errorf("unknown llm provider %q", c.Provider)
		}
		if translateOnly {
			return provider.Translate(ctx, c.Model, text, lang)
		}
		return provider.Summarize(ctx, c.Model, text, lang)
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

func speak(ctx context.Context, cfg *config.Config, rc *request.Client, tr *tracker.Tracker, store fallback.Store, text string) error {
	providers := map[string]tts.Provider{
		"googletts":  googletts.NewProvider(cfg.TTS.GoogleTTS.Key, cfg.TTS.GoogleTTS.Language, rc),
		"gtranslate": gtranslate.NewProvider(cfg.TTS.GTranslate.Language, rc),
		"edgetts":    edgetts.NewProvider(tr),
	}

	outputPath := filepath.Join(os.TempDir(), "lectorgo_"+uuid.New().String()+".mp3")
	defer os.Remove(outputPath)

	exec := fallback.NewExecutor(speakPlan(cfg), store)
	_, err := exec.Execute(ctx, func(ctx context.Context, c fallback.Candidate) (any, error) {
		provider, ok := providers[c.Provider]
		if !ok {
			return nil, fmt.Errorf("unknown tts provider %q", c.Provider)
		}
		return provider.Synthesize(ctx, text, c.Model, outputPath)
	})
	if err != nil {
		return err
	}

	player := audio.NewPlayer(cfg.Audio.VolumeDB)
	return player.Play(ctx, outputPath)
}

// summarizePlan maps the LLM config onto the fallback plan. Providers
// the user never listed do not appear at all.
func summarizePlan(cfg *config.Config) fallback.Plan {
	specs := map[string]fallback.ProviderSpec{
		"gemini": {
			Name:       "gemini",
			Models:     cfg.LLM.Gemini.Models,
			Credential: cfg.LLM.Gemini.Key,
			ConfigHint: "GEMINI_API_KEY",
		},
		"openai": {
			Name:       "openai",
			Models:     cfg.LLM.OpenAI.Models,
			Credential: cfg.LLM.OpenAI.Key,
			ConfigHint: "OPENAI_API_KEY",
		},
		"deepseek": {
			Name:       "deepseek",
			Models:     cfg.LLM.DeepSeek.Models,
			Credential: cfg.LLM.DeepSeek.Key,
			ConfigHint: "DEEPSEEK_API_KEY",
		},
		// The base URL doubles as the credential: no URL, no provider.
		"ollama": {
			Name:       "ollama",
			Models:     cfg.LLM.Ollama.Models,
			Credential: cfg.LLM.Ollama.BaseURL,
			ConfigHint: "OLLAMA_BASE_URL",
		},
	}
	return buildPlan(fallback.CapabilitySummarize, cfg.LLM.FallbackOrder, specs)
}

func speakPlan(cfg *config.Config) fallback.Plan {
	specs := map[string]fallback.ProviderSpec{
		"googletts": {
			Name:       "googletts",
			Models:     cfg.TTS.GoogleTTS.Voices,
			Credential: cfg.TTS.GoogleTTS.Key,
			ConfigHint: "GOOGLE_TTS_API_KEY",
		},
		"gtranslate": {
			Name:   "gtranslate",
			NoAuth: true,
		},
		"edgetts": {
			Name:   "edgetts",
			Models: cfg.TTS.EdgeTTS.Voices,
			NoAuth: true,
		},
	}
	return buildPlan(fallback.CapabilitySpeak, cfg.TTS.FallbackOrder, specs)
}

func buildPlan(capability fallback.Capability, order []string, specs map[string]fallback.ProviderSpec) fallback.Plan {
	plan := fallback.Plan{Capability: capability}
	for _, name := range order {
		spec, ok := specs[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			slog.Warn("ignoring unknown provider in fallback order", "capability", capability, "provider", name)
			continue
		}
		plan.Providers = append(plan.Providers, spec)
	}
	return plan
}

func llmHistory(cfg *config.Config) *llm.History {
	if cfg.Log.Path == "" {
		return nil
	}
	return llm.NewHistory(filepath.Join(filepath.Dir(cfg.Log.Path), "llm_history.log"))
}
