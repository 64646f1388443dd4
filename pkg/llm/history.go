package llm

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// History appends prompt/response pairs to a plain text file so a session
// can be reconstructed after the fact. A nil History discards everything.
type History struct {
	path string
	mu   sync.Mutex
}

// NewHistory creates a history writer. An empty path disables logging.
func NewHistory(path string) *History {
	if path == "" {
		return nil
	}
	return &History{path: path}
}

// Log records one exchange. Failures are swallowed; prompt history is
// never worth failing a request over.
func (h *History) Log(provider, model, prompt, response string) {
	if h == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(h.path), 0o755); err != nil {
		return
	}
	f, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	entry := fmt.Sprintf("[%s] %s (%s)\nPROMPT:\n%s\n\nRESPONSE:\n%s\n%s\n",
		timestamp, provider, model, WordWrap(prompt, 80), WordWrap(response, 80), strings.Repeat("-", 80))

	_, _ = f.WriteString(entry)
}
