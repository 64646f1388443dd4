package gtranslate

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"lectorgo/pkg/request"
	"lectorgo/pkg/tracker"
	"lectorgo/pkg/tts"
)

func testRequestClient() *request.Client {
	return request.New(request.Options{Retries: 1, BackoffBase: time.Millisecond}, tracker.New())
}

func TestSplitChunks(t *testing.T) {
	tests := []struct {
		name string
		text string
		max  int
		want []string
	}{
		{"empty", "", 10, nil},
		{"single short", "hello", 10, []string{"hello"}},
		{"splits on words", "one two three four", 9, []string{"one two", "three", "four"}},
		{"long word kept whole", "extraordinarily", 5, []string{"extraordinarily"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitChunks(tt.text, tt.max)
			if len(got) != len(tt.want) {
				t.Fatalf("splitChunks() = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("chunk[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSplitChunksNeverExceedsMax(t *testing.T) {
	text := strings.Repeat("word ", 200)
	for _, chunk := range splitChunks(text, maxChunkLen) {
		if len([]rune(chunk)) > maxChunkLen {
			t.Errorf("chunk exceeds max length: %d", len([]rune(chunk)))
		}
	}
}

func TestSynthesizeConcatenatesChunks(t *testing.T) {
	frame := bytes.Repeat([]byte{0xfb}, tts.MinAudioSize)

	var queries []string
	svr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("tl") != "pl" {
			t.Errorf("language not passed, got %q", r.URL.Query().Get("tl"))
		}
		queries = append(queries, r.URL.Query().Get("q"))
		if _, err := w.Write(frame); err != nil {
			t.Logf("write failed: %v", err)
		}
	}))
	defer svr.Close()

	p := NewProvider("pl", testRequestClient())
	p.endpoint = svr.URL

	long := strings.Repeat("słowo ", 60) // forces at least two chunks
	out := filepath.Join(t.TempDir(), "speech.mp3")
	format, err := p.Synthesize(context.Background(), long, "", out)
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
	if format != "mp3" {
		t.Errorf("format = %q, want mp3", format)
	}
	if len(queries) < 2 {
		t.Errorf("expected chunked requests, got %d", len(queries))
	}

	fi, err := os.Stat(out)
	if err != nil {
		t.Fatal(err)
	}
	if fi.Size() != int64(len(frame)*len(queries)) {
		t.Errorf("output size %d, want %d", fi.Size(), len(frame)*len(queries))
	}
}

func TestSynthesizeEmptyText(t *testing.T) {
	p := NewProvider("en", testRequestClient())
	if _, err := p.Synthesize(context.Background(), "   ", "", "out.mp3"); err == nil {
		t.Error("expected error on empty text")
	}
}
