package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Printer renders command results either as JSON or as styled text.
type Printer struct {
	w      io.Writer
	errW   io.Writer
	json   bool
	isTTY  bool
	styles *Styles
}

// Styles holds lipgloss styles for human-readable output.
type Styles struct {
	Error   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Bold    lipgloss.Style
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Key     lipgloss.Style
}

// NewPrinter creates a Printer writing to writer.
// Colors are only applied when isTTY is true.
func NewPrinter(writer io.Writer, jsonMode bool, isTTY bool) *Printer {
	styles := plainStyles()
	if isTTY {
		styles = &Styles{
			Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true), // Red
			Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),           // Green
			Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),           // Yellow
			Bold:    lipgloss.NewStyle().Bold(true),
			Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")), // Blue
			Muted:   lipgloss.NewStyle().Faint(true),
			Key:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")), // Cyan
		}
	}

	return &Printer{
		w:      writer,
		errW:   writer,
		json:   jsonMode,
		isTTY:  isTTY,
		styles: styles,
	}
}

func plainStyles() *Styles {
	return &Styles{
		Error:   lipgloss.NewStyle(),
		Success: lipgloss.NewStyle(),
		Warning: lipgloss.NewStyle(),
		Bold:    lipgloss.NewStyle(),
		Title:   lipgloss.NewStyle(),
		Muted:   lipgloss.NewStyle(),
		Key:     lipgloss.NewStyle(),
	}
}

// WithStderr sets a separate writer for errors and warnings in human mode.
// In JSON mode, errors still go to the main writer.
func (p *Printer) WithStderr(w io.Writer) *Printer {
	p.errW = w
	return p
}

// IsJSON returns true if the printer is in JSON mode.
func (p *Printer) IsJSON() bool {
	return p.json
}

// IsTTY returns true if the printer output is a TTY.
func (p *Printer) IsTTY() bool {
	return p.isTTY
}

// Success prints a one-line success message, or the whole data map in JSON mode.
func (p *Printer) Success(message string, data map[string]any) error {
	if p.json {
		payload := make(map[string]any, len(data)+1)
		for key, val := range data {
			payload[key] = val
		}
		payload["message"] = message
		return p.writeJSON(payload)
	}
	mustWrite(fmt.Fprintln(p.w, p.styles.Success.Render(message)))
	return nil
}

// Error outputs an error.
// JSON mode writes {"error": "...", "code": N} to the main writer;
// human mode writes a styled line to the error writer.
func (p *Printer) Error(err error) {
	exitErr := &ExitError{}
	if !errors.As(err, &exitErr) {
		exitErr = &ExitError{Code: ExitUserError, Message: err.Error()}
	}

	if p.json {
		mustWrite(p.w.Write(ErrorJSON(exitErr.Message, exitErr.Code)))
		mustWrite(fmt.Fprintln(p.w))
		return
	}

	mustWrite(fmt.Fprintf(p.errW, "%s: %s\n", p.styles.Error.Render("Error"), exitErr.Message))
}

// Warn outputs a non-fatal warning.
func (p *Printer) Warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if p.json {
		_ = p.writeJSON(map[string]any{"warning": msg})
		return
	}
	mustWrite(fmt.Fprintf(p.errW, "%s: %s\n", p.styles.Warning.Render("Warning"), msg))
}

// Println writes a line to the output.
func (p *Printer) Println(args ...any) {
	mustWrite(fmt.Fprintln(p.w, args...))
}

// WriteJSON encodes any value as indented JSON.
func (p *Printer) WriteJSON(data any) error {
	return p.writeJSON(data)
}

func (p *Printer) writeJSON(data any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// ErrorJSON returns JSON-formatted error bytes: {"code": N, "error": "message"}.
func ErrorJSON(message string, code int) []byte {
	result, _ := json.Marshal(map[string]any{
		"error": message,
		"code":  code,
	})
	return result
}

// mustWrite panics if a write to stdout/stderr or a buffer fails.
func mustWrite(_ int, err error) {
	if err != nil {
		panic(fmt.Sprintf("write failed: %v", err))
	}
}

// Section renders a title followed by an underline.
func (p *Printer) Section(title string) {
	mustWrite(fmt.Fprintln(p.w, p.styles.Title.Render(title)))
	mustWrite(fmt.Fprintln(p.w, p.styles.Muted.Render(strings.Repeat("─", len(title)))))
}

// KeyValue renders "Key: Value".
func (p *Printer) KeyValue(key string, value string) {
	mustWrite(fmt.Fprintf(p.w, "%s %s\n", p.styles.Key.Render(key+":"), value))
}

// Table renders rows under bold headers with columns padded to equal width.
func (p *Printer) Table(headers []string, rows [][]string) {
	if len(headers) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	p.tableRow(headers, widths, p.styles.Bold)
	for _, row := range rows {
		p.tableRow(row, widths, lipgloss.NewStyle())
	}
}

func (p *Printer) tableRow(cells []string, widths []int, style lipgloss.Style) {
	for i, cell := range cells {
		if i >= len(widths) {
			break
		}
		if i > 0 {
			mustWrite(fmt.Fprint(p.w, "  "))
		}
		padded := cell
		if len(cell) < widths[i] && i < len(widths)-1 {
			padded = cell + strings.Repeat(" ", widths[i]-len(cell))
		}
		mustWrite(fmt.Fprint(p.w, style.Render(padded)))
	}
	mustWrite(fmt.Fprintln(p.w))
}
