// Package audio plays synthesized speech files through the default
// output device.
package audio

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

const targetSampleRate = beep.SampleRate(48000)

// Player decodes and plays audio files. Playback is blocking; the CLI
// has nothing else to do while speech runs.
type Player struct {
	volumeDB float64

	mu          sync.Mutex
	initialized bool
}

// NewPlayer creates a player with the given gain in decibels. 0 plays at
// the file's native level.
func NewPlayer(volumeDB float64) *Player {
	return &Player{volumeDB: volumeDB}
}

// Play decodes the file (mp3 or wav) and blocks until playback finishes
// or the context is cancelled.
func (p *Player) Play(ctx context.Context, path string) error {
	streamer, format, err := decodeStreamer(path)
	if err != nil {
		return err
	}
	defer streamer.Close()

	if err := p.ensureSpeakerInitialized(); err != nil {
		return err
	}

	resampled := beep.Resample(3, format.SampleRate, targetSampleRate, streamer)
	vol := &effects.Volume{
		Streamer: resampled,
		Base:     10,
		Volume:   p.volumeDB / 20,
		Silent:   false,
	}

	done := make(chan struct{})
	speaker.Play(beep.Seq(vol, beep.Callback(func() {
		close(done)
	})))

	slog.Debug("playing audio", "path", path, "sample_rate", format.SampleRate)

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		speaker.Clear()
		return ctx.Err()
	}
}

func (p *Player) ensureSpeakerInitialized() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initialized {
		return nil
	}
	if err := speaker.Init(targetSampleRate, targetSampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("failed to initialize speaker: %w", err)
	}
	p.initialized = true
	return nil
}

func decodeStreamer(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}

	// Try MP3 first
	streamer, format, err := mp3.Decode(f)
	if err == nil {
		return streamer, format, nil
	}

	// Reopen file for WAV attempt (MP3 decode failure might leave file state uncertain)
	f.Close()
	f, err = os.Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}

	streamer, format, err = wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("failed to decode audio file %s: %w", path, err)
	}

	return streamer, format, nil
}
