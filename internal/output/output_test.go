package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestPrinterSuccess(t *testing.T) {
	t.Run("human", func(t *testing.T) {
		var buf bytes.Buffer
		printer := NewPrinter(&buf, false, false)
		if err := printer.Success("Imported 3 posts", map[string]any{"created": 3}); err != nil {
			t.Fatal(err)
		}
		if got := buf.String(); got != "Imported 3 posts\n" {
			t.Errorf("output = %q", got)
		}
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		printer := NewPrinter(&buf, true, false)
		if err := printer.Success("Imported 3 posts", map[string]any{"created": 3}); err != nil {
			t.Fatal(err)
		}
		var got map[string]any
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
		}
		if got["message"] != "Imported 3 posts" {
			t.Errorf("message = %v", got["message"])
		}
		if got["created"] != float64(3) {
			t.Errorf("created = %v", got["created"])
		}
	})
}

func TestPrinterError(t *testing.T) {
	t.Run("json carries code", func(t *testing.T) {
		var buf bytes.Buffer
		NewPrinter(&buf, true, false).Error(NewNoSourceError(errors.New("nothing to import")))

		var got map[string]any
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if got["code"] != float64(ExitNoSource) {
			t.Errorf("code = %v, want %d", got["code"], ExitNoSource)
		}
		if got["error"] != "nothing to import" {
			t.Errorf("error = %v", got["error"])
		}
	})

	t.Run("human goes to stderr writer", func(t *testing.T) {
		var out, errOut bytes.Buffer
		printer := NewPrinter(&out, false, false).WithStderr(&errOut)
		printer.Error(errors.New("boom"))

		if out.Len() != 0 {
			t.Errorf("stdout = %q, want empty", out.String())
		}
		if errOut.String() != "Error: boom\n" {
			t.Errorf("stderr = %q", errOut.String())
		}
	})
}

func TestPrinterWarn(t *testing.T) {
	var out, errOut bytes.Buffer
	printer := NewPrinter(&out, false, false).WithStderr(&errOut)
	printer.Warn("git step skipped: %s", "not a repository")

	if errOut.String() != "Warning: git step skipped: not a repository\n" {
		t.Errorf("stderr = %q", errOut.String())
	}
}

func TestPrinterTable(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, false)
	printer.Table([]string{"FILE", "SCORE"}, [][]string{
		{"Shares.csv", "27"},
		{"Posts/Articles.csv", "5"},
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), buf.String())
	}
	if lines[0] != "FILE                SCORE" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "Shares.csv          27" {
		t.Errorf("row = %q", lines[1])
	}
}

func TestPrinterKeyValue(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, false, false).KeyValue("Text column", "ShareCommentary")
	if buf.String() != "Text column: ShareCommentary\n" {
		t.Errorf("output = %q", buf.String())
	}
}
