// Package session resolves the terminal session identity that scopes the
// provider affinity cache. The identity combines the effective user id with
// the controlling terminal device, so two terminals (or two users sharing a
// device name) never collide.
package session

import (
	"fmt"
	"os"
	"strings"
)

// NoTTY is the sentinel token used when no controlling terminal exists
// (input piped or redirected). All such invocations share one scope.
const NoTTY = "notty"

// Scope identifies one terminal session.
type Scope struct {
	UID    int
	Device string // terminal device path, e.g. "/dev/pts/2", or "" without a tty
}

// Resolve derives the scope for the current process. It never fails:
// without a controlling terminal it degrades to the shared NoTTY scope.
// Call once at startup and pass the value down explicitly.
func Resolve() Scope {
	return Scope{
		UID:    os.Geteuid(),
		Device: ttyDevice(),
	}
}

// Token returns the filename-safe identity string, e.g. "1000_pts_2".
func (s Scope) Token() string {
	tty := NoTTY
	if s.Device != "" {
		tty = strings.ReplaceAll(strings.TrimPrefix(s.Device, "/dev/"), "/", "_")
	}
	return fmt.Sprintf("%d_%s", s.UID, tty)
}

// Alive reports whether the underlying terminal device still exists.
// The NoTTY scope is always alive: there is nothing to outlive.
func (s Scope) Alive() bool {
	if s.Device == "" {
		return true
	}
	_, err := os.Stat(s.Device)
	return err == nil
}

// ttyDevice resolves the controlling terminal device of stdin, or "" if
// stdin is not a terminal.
func ttyDevice() string {
	fi, err := os.Stdin.Stat()
	if err != nil || fi.Mode()&os.ModeCharDevice == 0 {
		return ""
	}
	target, err := os.Readlink("/proc/self/fd/0")
	if err != nil || !strings.HasPrefix(target, "/dev/") {
		return ""
	}
	return target
}
