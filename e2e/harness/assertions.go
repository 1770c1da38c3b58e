package harness

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

// Assertions provides E2E-specific assertions.
type Assertions struct {
	t *testing.T
}

// NewAssertions creates an assertions helper.
func NewAssertions(t *testing.T) *Assertions {
	return &Assertions{t: t}
}

// OutputContains asserts the output contains all given strings.
func (a *Assertions) OutputContains(output string, expected ...string) {
	a.t.Helper()
	output = ansi.Strip(output)
	for _, exp := range expected {
		if !strings.Contains(output, exp) {
			a.t.Errorf("expected output to contain %q, got:\n%s", exp, truncate(output, 500))
		}
	}
}

// OutputNotContains asserts the output does not contain any of the given strings.
func (a *Assertions) OutputNotContains(output string, unexpected ...string) {
	a.t.Helper()
	output = ansi.Strip(output)
	for _, unexp := range unexpected {
		if strings.Contains(output, unexp) {
			a.t.Errorf("expected output NOT to contain %q, got:\n%s", unexp, truncate(output, 500))
		}
	}
}

// ModeVisible asserts the status bar shows mode.
func (a *Assertions) ModeVisible(output, mode string) {
	a.t.Helper()
	if !strings.Contains(statusBar(output), mode) {
		a.t.Errorf("expected mode %q in status bar:\n%s", mode, statusBar(output))
	}
}

// Modified asserts whether the status bar shows the modified flag.
func (a *Assertions) Modified(output string, want bool) {
	a.t.Helper()
	got := strings.Contains(statusBar(output), "[modified]")
	if got != want {
		a.t.Errorf("expected modified=%v, status bar:\n%s", want, statusBar(output))
	}
}

// MessageIs asserts the bottom line equals msg.
func (a *Assertions) MessageIs(output, msg string) {
	a.t.Helper()
	if got := messageBar(output); got != msg {
		a.t.Errorf("expected message %q, got %q", msg, got)
	}
}

func statusBar(output string) string {
	lines := strings.Split(output, "\n")
	if len(lines) < 2 {
		return ""
	}
	return ansi.Strip(lines[len(lines)-2])
}

func messageBar(output string) string {
	lines := strings.Split(output, "\n")
	return ansi.Strip(lines[len(lines)-1])
}

// truncate truncates a string to maxLen characters.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "... (truncated)"
}
