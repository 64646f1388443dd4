// Package gtranslate implements tts.Provider against the public Google
// Translate speech endpoint. It needs no credentials and no voice; the
// only knob is the language. Audio quality is below the cloud voices, so
// it sits late in the fallback order.
package gtranslate

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"lectorgo/pkg/request"
	"lectorgo/pkg/tts"
)

const (
	defaultEndpoint = "https://translate.google.com/translate_tts"

	// maxChunkLen is the longest text the endpoint accepts per request.
	maxChunkLen = 200
)

// Provider implements tts.Provider for the Translate speech endpoint.
type Provider struct {
	language string
	endpoint string
	rc       *request.Client
}

// NewProvider creates a new provider speaking the given language.
func NewProvider(language string, rc *request.Client) *Provider {
	if language == "" {
		language = "en"
	}
	return &Provider{
		language: language,
		endpoint: defaultEndpoint,
		rc:       rc,
	}
}

// Synthesize fetches the text chunk by chunk and concatenates the MP3
// frames into outputPath. The voice argument is ignored; the endpoint has
// exactly one voice per language.
func (p *Provider) Synthesize(ctx context.Context, text, voice, outputPath string) (string, error) {
	chunks := splitChunks(text, maxChunkLen)
	if len(chunks) == 0 {
		return "", fmt.Errorf("no text to synthesize")
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	for i, chunk := range chunks {
		params := url.Values{}
		params.Set("ie", "UTF-8")
		params.Set("client", "tw-ob")
		params.Set("tl", p.language)
		params.Set("q", chunk)
		params.Set("total", strconv.Itoa(len(chunks)))
		params.Set("idx", strconv.Itoa(i))
		params.Set("textlen", strconv.Itoa(len([]rune(chunk))))

		audio, err := p.rc.Get(ctx, request.BuildURL(p.endpoint, params))
		if err != nil {
			tts.Log("GTRANSLATE", chunk, 0, err)
			return "", fmt.Errorf("gtranslate request failed (chunk %d/%d): %w", i+1, len(chunks), err)
		}
		if _, err := f.Write(audio); err != nil {
			return "", fmt.Errorf("failed to write audio: %w", err)
		}
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close audio file: %w", err)
	}
	if err := tts.VerifyOutput(outputPath); err != nil {
		return "", err
	}

	tts.Log("GTRANSLATE", text, 200, nil)
	return "mp3", nil
}

// splitChunks breaks text into whitespace-separated chunks of at most max
// runes. A single word longer than max becomes its own chunk; the
// endpoint truncates rather than rejects those.
func splitChunks(text string, max int) []string {
	words := strings.Fields(text)
	var chunks []string
	var current strings.Builder
	currentLen := 0

	for _, word := range words {
		wordLen := len([]rune(word))
		if currentLen > 0 && currentLen+1+wordLen > max {
			chunks = append(chunks, current.String())
			current.Reset()
			currentLen = 0
		}
		if currentLen > 0 {
			current.WriteByte(' ')
			currentLen++
		}
		current.WriteString(word)
		currentLen += wordLen
	}
	if currentLen > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}
