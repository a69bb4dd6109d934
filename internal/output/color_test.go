package output

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestResolveColorMode(t *testing.T) {
	tests := []struct {
		name      string
		colorMode string
		isTTY     bool
		want      bool
	}{
		{name: "never disables on TTY", colorMode: "never", isTTY: true, want: false},
		{name: "always enables on non-TTY", colorMode: "always", isTTY: false, want: true},
		{name: "auto follows TTY", colorMode: "auto", isTTY: true, want: true},
		{name: "empty string defaults to auto", colorMode: "", isTTY: false, want: false},
		{name: "unknown value defaults to auto", colorMode: "bogus", isTTY: true, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveColorMode(tt.colorMode, tt.isTTY); got != tt.want {
				t.Errorf("ResolveColorMode(%q, %v) = %v, want %v", tt.colorMode, tt.isTTY, got, tt.want)
			}
		})
	}
}

func TestIsTTY_Buffer(t *testing.T) {
	var buf bytes.Buffer
	if IsTTY(&buf) {
		t.Error("IsTTY(buffer) should return false")
	}
}

func TestNewPrinter_PlainStylesWithoutTTY(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, false)

	empty := lipgloss.NewStyle()
	if printer.styles.Error.GetForeground() != empty.GetForeground() {
		t.Error("Error style should have no foreground color without a TTY")
	}

	printer.Error(NewUserError("export dir not set"))
	if bytes.Contains(buf.Bytes(), []byte("\033[")) {
		t.Errorf("plain printer produced ANSI codes: %q", buf.String())
	}
}
