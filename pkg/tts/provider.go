// Package tts defines the interface the speech synthesis providers
// implement plus shared output checks and logging.
package tts

import (
	"context"
	"fmt"
	"os"
)

const (
	// MinAudioSize is the minimum size of a synthesized audio file (1KB).
	// Files smaller than this are likely failed synthesis attempts.
	MinAudioSize = 1024
)

// Provider defines the interface for Text-To-Speech engines. The voice is
// passed per call because the fallback layer walks a list of
// (provider, voice) candidates; providers without voices ignore it.
type Provider interface {
	// Synthesize generates audio from text and writes it to outputPath.
	// Returns the audio format ("mp3", "wav") and error.
	Synthesize(ctx context.Context, text, voice, outputPath string) (string, error)
}

// VerifyOutput checks that the synthesized file exists and is plausibly
// audio rather than a truncated or empty response.
func VerifyOutput(path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("synthesized file missing: %w", err)
	}
	if fi.Size() < MinAudioSize {
		return fmt.Errorf("synthesized file too small (%d bytes)", fi.Size())
	}
	return nil
}
