package cli

import (
	"strings"
	"testing"
)

func TestProgressBar(t *testing.T) {
	tests := []struct {
		name    string
		current int64
		total   int64
		percent string
	}{
		{"empty", 0, 100, "0.0%"},
		{"half", 50, 100, "50.0%"},
		{"full", 100, 100, "100.0%"},
		{"over full is clamped", 150, 100, "100.0%"},
		{"negative is clamped", -5, 100, "0.0%"},
		{"zero total", 10, 0, "100.0%"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			bar := ProgressBar(test.current, test.total, 30)
			if !strings.Contains(bar, test.percent) {
				t.Errorf("Expected bar to contain %q, got %q", test.percent, bar)
			}
		})
	}
}

func TestProgressBar_DefaultWidth(t *testing.T) {
	bar := ProgressBar(50, 100, 0)
	if !strings.Contains(bar, "50.0%") {
		t.Errorf("Expected bar with default width to contain 50.0%%, got %q", bar)
	}
}
