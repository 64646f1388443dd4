// Package affinity persists the winning (provider, model) candidate per
// capability and terminal session, so repeated invocations from the same
// terminal skip straight to the provider that worked last time.
package affinity

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"lectorgo/pkg/fallback"
	"lectorgo/pkg/session"
)

// FileStore keeps one candidate in a single one-line file named
// lectorgo_<capability>_<uid>_<tty> under the user runtime directory.
// Every operation is best-effort: a missing, corrupt or unwritable file
// only costs the optimization.
type FileStore struct {
	scope session.Scope
	path  string
}

// NewStore builds the store for one capability in one session scope.
func NewStore(capability fallback.Capability, scope session.Scope) *FileStore {
	name := fmt.Sprintf("lectorgo_%s_%s", capability, scope.Token())
	return &FileStore{
		scope: scope,
		path:  filepath.Join(runtimeDir(), name),
	}
}

// Path returns the backing file location, mainly for diagnostics.
func (s *FileStore) Path() string { return s.path }

// Read returns the cached candidate if the record exists, parses and the
// session terminal is still alive. A record left behind by a closed
// terminal is deleted on sight so a recycled device name starts fresh.
func (s *FileStore) Read() (fallback.Candidate, bool) {
	if !s.scope.Alive() {
		s.Clear()
		return fallback.Candidate{}, false
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fallback.Candidate{}, false
	}
	line, _, _ := strings.Cut(string(data), "\n")
	cand, ok := fallback.ParseCandidate(line)
	if !ok {
		slog.Debug("discarding corrupt affinity record", "path", s.path)
		s.Clear()
		return fallback.Candidate{}, false
	}
	return cand, true
}

// Write replaces the record atomically via a temp file in the same
// directory followed by a rename, so a concurrent reader sees either the
// old record or the new one, never a partial line.
func (s *FileStore) Write(c fallback.Candidate) {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*")
	if err != nil {
		slog.Warn("cannot persist provider affinity", "path", s.path, "error", err)
		return
	}
	_, werr := tmp.WriteString(c.String() + "\n")
	cerr := tmp.Close()
	if werr != nil || cerr != nil {
		os.Remove(tmp.Name())
		slog.Warn("cannot persist provider affinity", "path", s.path, "error", werr)
		return
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		slog.Warn("cannot persist provider affinity", "path", s.path, "error", err)
	}
}

// Clear removes the record. Absence is not an error.
func (s *FileStore) Clear() {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		slog.Debug("cannot remove affinity record", "path", s.path, "error", err)
	}
}

// runtimeDir picks the per-user runtime directory, falling back to the
// system temp directory when the session has none.
func runtimeDir() string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return dir
	}
	return os.TempDir()
}
