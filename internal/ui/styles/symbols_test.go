package styles

import (
	"testing"

	"github.com/raphi011/repodash/internal/git"
)

func TestFormatTracking(t *testing.T) {
	Init("none", true)
	defer Init("default", true)

	tests := []struct {
		name string
		in   *git.Tracking
		want string
	}{
		{"no upstream", nil, "-"},
		{"in sync", &git.Tracking{}, "="},
		{"ahead", &git.Tracking{Ahead: 2}, "↑2"},
		{"behind", &git.Tracking{Behind: 3}, "↓3"},
		{"diverged", &git.Tracking{Ahead: 1, Behind: 4}, "↑1 ↓4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatTracking(tt.in); got != tt.want {
				t.Errorf("FormatTracking() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatClean(t *testing.T) {
	Init("none", true)
	defer Init("default", true)

	if got := FormatClean(true); got != "✓ clean" {
		t.Errorf("FormatClean(true) = %q", got)
	}
	if got := FormatClean(false); got != "● dirty" {
		t.Errorf("FormatClean(false) = %q", got)
	}
}

func TestFormatCount(t *testing.T) {
	Init("none", true)
	defer Init("default", true)

	if got := FormatCount(0); got != "0" {
		t.Errorf("FormatCount(0) = %q", got)
	}
	if got := FormatCount(5); got != "5" {
		t.Errorf("FormatCount(5) = %q", got)
	}
}
