package styles

import (
	"testing"

	"charm.land/lipgloss/v2"
)

func TestInit(t *testing.T) {
	tests := []struct {
		name    string
		preset  string
		colored bool
		want    Theme
	}{
		{"default", "default", true, DefaultTheme},
		{"empty name", "", true, DefaultTheme},
		{"unknown name", "solarized", true, DefaultTheme},
		{"dracula", "dracula", true, DraculaTheme},
		{"nord", "nord", true, NordTheme},
		{"none", "none", true, NoneTheme},
		{"not colored", "dracula", false, NoneTheme},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Init(tt.preset, tt.colored)
			if got := Current(); got != tt.want {
				t.Errorf("Init(%q, %v) theme = %+v, want %+v", tt.preset, tt.colored, got, tt.want)
			}
			if Primary != tt.want.Primary {
				t.Errorf("Primary = %v, want %v", Primary, tt.want.Primary)
			}
		})
	}

	Init("default", true)
}

func TestInit_NoneRendersPlain(t *testing.T) {
	Init("none", true)
	defer Init("default", true)

	if got := SuccessStyle.Render("ok"); got != "ok" {
		t.Errorf("SuccessStyle.Render() = %q, want plain text", got)
	}
	if _, ok := Error.(lipgloss.NoColor); !ok {
		t.Errorf("Error = %T, want lipgloss.NoColor", Error)
	}
}
