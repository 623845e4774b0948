// Package clipboard copies rendered prompt text to the system
// clipboard. A missing clipboard utility is reported with install
// hints; the caller decides whether to fall back to printing.
package clipboard

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// ErrNoUtility means no clipboard command is installed on this system.
type ErrNoUtility struct {
	OS string
}

func (e *ErrNoUtility) Error() string {
	switch e.OS {
	case "linux":
		return "no clipboard utility found; install xclip, xsel, or wl-clipboard"
	case "darwin":
		return "pbcopy not available"
	case "windows":
		return "clip command not available"
	default:
		return fmt.Sprintf("clipboard not supported on %s", e.OS)
	}
}

// Copy writes text to the system clipboard.
func Copy(text string) error {
	switch runtime.GOOS {
	case "darwin":
		return pipeTo(text, "pbcopy")
	case "windows":
		return pipeTo(text, "cmd", "/c", "clip")
	case "linux":
		return copyLinux(text)
	default:
		return &ErrNoUtility{OS: runtime.GOOS}
	}
}

// copyLinux tries the common clipboard utilities in preference order.
func copyLinux(text string) error {
	candidates := [][]string{
		{"xclip", "-selection", "clipboard"},
		{"xsel", "--clipboard", "--input"},
		{"wl-copy"},
	}

	var lastErr error
	tried := false
	for _, c := range candidates {
		if !commandExists(c[0]) {
			continue
		}
		tried = true
		if err := pipeTo(text, c[0], c[1:]...); err != nil {
			lastErr = fmt.Errorf("%s failed: %w", c[0], err)
			continue
		}
		return nil
	}

	if tried {
		return lastErr
	}
	return &ErrNoUtility{OS: "linux"}
}

// IsAvailable reports whether a clipboard utility can be used.
func IsAvailable() bool {
	switch runtime.GOOS {
	case "darwin":
		return commandExists("pbcopy")
	case "windows":
		return true
	case "linux":
		return commandExists("xclip") || commandExists("xsel") || commandExists("wl-copy")
	default:
		return false
	}
}

func pipeTo(text, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}

func commandExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
