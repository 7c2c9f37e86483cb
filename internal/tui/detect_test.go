package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestDetectMode_EnvOverrides(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"explicit non-interactive", "BULKLOAD_NON_INTERACTIVE", "1"},
		{"ci convention", "CI", "true"},
		{"no-color convention", "NO_COLOR", "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if got := DetectMode(); got != ModeNonInteractive {
				t.Errorf("DetectMode() = %v, want ModeNonInteractive", got)
			}
			if IsInteractive() {
				t.Error("IsInteractive() = true, want false")
			}
		})
	}
}

func TestDetectMode_NonTTYIsNonInteractive(t *testing.T) {
	// Test binaries never run with a TTY on stdin, so without any env
	// override detection must still land on non-interactive.
	t.Setenv("CI", "")
	t.Setenv("NO_COLOR", "")
	t.Setenv("BULKLOAD_NON_INTERACTIVE", "")
	if got := DetectMode(); got != ModeNonInteractive {
		t.Errorf("DetectMode() = %v, want ModeNonInteractive", got)
	}
}

func TestProgressModel_TracksRowCount(t *testing.T) {
	m := newProgressModel("loading users", 100)

	updated, _ := m.Update(progressMsg(40))
	m = updated.(progressModel)
	if m.done != 40 {
		t.Errorf("done = %d, want 40", m.done)
	}

	updated, cmd := m.Update(finishedMsg{err: nil})
	m = updated.(progressModel)
	if cmd == nil {
		t.Error("finishedMsg must quit the program")
	}
	if m.err != nil {
		t.Errorf("err = %v, want nil", m.err)
	}
}

func TestProgressModel_IgnoresKeys(t *testing.T) {
	m := newProgressModel("loading", 10)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd != nil {
		t.Error("key presses must not produce commands")
	}
	if updated.(progressModel).done != 0 {
		t.Error("key presses must not mutate the model")
	}
}

func TestRunWithProgress_NonInteractiveRunsDirectly(t *testing.T) {
	t.Setenv("BULKLOAD_NON_INTERACTIVE", "1")

	ran := false
	err := RunWithProgress("loading", 10, func(report func(int)) error {
		ran = true
		report(5)
		report(10)
		return nil
	})
	if err != nil {
		t.Fatalf("RunWithProgress() error = %v", err)
	}
	if !ran {
		t.Error("fn did not run")
	}
}
