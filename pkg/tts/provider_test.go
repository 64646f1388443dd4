package tts

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestVerifyOutput(t *testing.T) {
	dir := t.TempDir()

	missing := filepath.Join(dir, "missing.mp3")
	if err := VerifyOutput(missing); err == nil {
		t.Error("missing file must fail verification")
	}

	small := filepath.Join(dir, "small.mp3")
	if err := os.WriteFile(small, []byte("stub"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := VerifyOutput(small); err == nil {
		t.Error("tiny file must fail verification")
	}

	ok := filepath.Join(dir, "ok.mp3")
	if err := os.WriteFile(ok, bytes.Repeat([]byte{0xff}, MinAudioSize), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := VerifyOutput(ok); err != nil {
		t.Errorf("valid-size file failed verification: %v", err)
	}
}

func TestLogDisabledByDefault(t *testing.T) {
	// Must not panic or create files when no path is configured.
	SetLogPath("")
	Log("TEST", "hello", 200, nil)
}

func TestLogWritesEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "tts.log")
	SetLogPath(path)
	defer SetLogPath("")

	Log("GOOGLETTS", "hello world", 200, nil)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), "[GOOGLETTS] STATUS: 200") {
		t.Errorf("unexpected log entry: %s", data)
	}
}
