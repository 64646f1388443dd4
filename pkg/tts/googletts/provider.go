// Package googletts implements tts.Provider against the Google Cloud
// Text-to-Speech REST endpoint, authenticated with a plain API key.
package googletts

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"

	"lectorgo/pkg/request"
	"lectorgo/pkg/tts"
)

const defaultEndpoint = "https://texttospeech.googleapis.com/v1/text:synthesize"

// Provider implements tts.Provider for Google Cloud Text-to-Speech.
type Provider struct {
	key      string
	language string
	endpoint string
	rc       *request.Client
}

// NewProvider creates a new Google TTS provider.
func NewProvider(key, language string, rc *request.Client) *Provider {
	return &Provider{
		key:      key,
		language: language,
		endpoint: defaultEndpoint,
		rc:       rc,
	}
}

type synthesizeRequest struct {
	Input struct {
		Text string `json:"text"`
	} `json:"input"`
	Voice struct {
		LanguageCode string `json:"languageCode"`
		Name         string `json:"name,omitempty"`
	} `json:"voice"`
	AudioConfig struct {
		AudioEncoding string `json:"audioEncoding"`
	} `json:"audioConfig"`
}

type synthesizeResponse struct {
	AudioContent string `json:"audioContent"`
}

// Synthesize generates an mp3 file via the REST API.
func (p *Provider) Synthesize(ctx context.Context, text, voice, outputPath string) (string, error) {
	if p.key == "" {
		return "", fmt.Errorf("google tts api key is missing")
	}

	var sreq synthesizeRequest
	sreq.Input.Text = text
	sreq.Voice.LanguageCode = languageCode(voice, p.language)
	sreq.Voice.Name = voice
	sreq.AudioConfig.AudioEncoding = "MP3"

	body, err := json.Marshal(sreq)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	params := url.Values{}
	params.Set("key", p.key)
	u := request.BuildURL(p.endpoint, params)

	respBody, err := p.rc.Post(ctx, u, body, "application/json")
	if err != nil {
		tts.Log("GOOGLETTS", text, 0, err)
		return "", fmt.Errorf("google tts request failed: %w", err)
	}

	var sresp synthesizeResponse
	if err := json.Unmarshal(respBody, &sresp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if sresp.AudioContent == "" {
		tts.Log("GOOGLETTS", text, 0, fmt.Errorf("empty audioContent"))
		return "", fmt.Errorf("google tts returned no audio")
	}

	audio, err := base64.StdEncoding.DecodeString(sresp.AudioContent)
	if err != nil {
		return "", fmt.Errorf("failed to decode audio content: %w", err)
	}

	if err := os.WriteFile(outputPath, audio, 0o644); err != nil {
		return "", fmt.Errorf("failed to write audio file: %w", err)
	}
	if err := tts.VerifyOutput(outputPath); err != nil {
		return "", err
	}

	tts.Log("GOOGLETTS", text, 200, nil)
	return "mp3", nil
}

// languageCode derives the voice's language from its name prefix, e.g.
// "en-US-Wavenet-D" speaks en-US. Voice-less calls use the configured
// language.
func languageCode(voice, fallback string) string {
	parts := strings.SplitN(voice, "-", 3)
	if len(parts) >= 2 && len(parts[0]) == 2 {
		return parts[0] + "-" + parts[1]
	}
	if fallback == "" {
		return "en-US"
	}
	return fallback
}
