package output

import (
	"errors"
	"fmt"
	"testing"
)

func TestExitCodeConstants(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		expected int
	}{
		{"ExitSuccess", ExitSuccess, 0},
		{"ExitUserError", ExitUserError, 1},
		{"ExitSystemError", ExitSystemError, 2},
		{"ExitNoSource", ExitNoSource, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.code != tt.expected {
				t.Errorf("%s = %d, want %d", tt.name, tt.code, tt.expected)
			}
		})
	}
}

func TestExitErrorWrapping(t *testing.T) {
	underlying := errors.New("permission denied")
	err := NewSystemErrorWithCause("cannot create output directory", underlying)

	if err.Code != ExitSystemError {
		t.Errorf("Code = %d, want %d", err.Code, ExitSystemError)
	}
	if !errors.Is(err, underlying) {
		t.Error("errors.Is should find underlying error")
	}
	if err.Error() != "cannot create output directory" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestNewNoSourceError(t *testing.T) {
	cause := errors.New("no post file among 2 tabular files")
	err := NewNoSourceError(cause)

	if err.Code != ExitNoSource {
		t.Errorf("Code = %d, want %d", err.Code, ExitNoSource)
	}
	if err.Error() != cause.Error() {
		t.Errorf("Error() = %q, want %q", err.Error(), cause.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the selector error")
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil error", err: nil, expected: ExitSuccess},
		{name: "user error", err: NewUserError("export dir not set"), expected: ExitUserError},
		{name: "system error", err: NewSystemError("disk full"), expected: ExitSystemError},
		{name: "no source", err: NewNoSourceError(errors.New("none")), expected: ExitNoSource},
		{
			name:     "wrapped exit error keeps code",
			err:      fmt.Errorf("import: %w", NewSystemError("disk full")),
			expected: ExitSystemError,
		},
		{name: "plain error defaults to user error", err: errors.New("boom"), expected: ExitUserError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.expected {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.expected)
			}
		})
	}
}
