// Package post derives the on-disk identity and content of an imported post.
package post

import (
	"crypto/sha1" //nolint:gosec // content fingerprint, not a security boundary
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// Platform is the fixed platform tag written into every post's front matter.
const Platform = "linkedin"

// Limits and fallbacks used when naming files.
const (
	previewLen     = 80
	slugLen        = 80
	fingerprintLen = 10
	fallbackSlug   = "post"
)

// Record is one post ready to be written.
type Record struct {
	Date   string // YYYY-MM-DD
	Text   string // trimmed body
	Source string // optional URL
}

// NewRecord builds a Record from raw cell values. ok is false when the text
// is blank, in which case the row must be skipped.
func NewRecord(text, date, source string, now time.Time) (rec Record, ok bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Record{}, false
	}
	return Record{
		Date:   ParseDate(date, now),
		Text:   text,
		Source: strings.TrimSpace(source),
	}, true
}

// Filename returns "{date}-{slug}-{fingerprint}.md".
func (r Record) Filename() string {
	return fmt.Sprintf("%s-%s-%s.md", r.Date, Slugify(Preview(r.Text)), Fingerprint(r.Text))
}

// Render returns the file content: front matter, a blank line, the body and a
// trailing newline.
func (r Record) Render() []byte {
	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "date: %s\n", r.Date)
	fmt.Fprintf(&b, "platform: %s\n", Platform)
	if r.Source != "" {
		fmt.Fprintf(&b, "source: %s\n", r.Source)
	}
	b.WriteString("---\n\n")
	b.WriteString(r.Text)
	b.WriteString("\n")
	return []byte(b.String())
}

// Preview returns the first line of text, cut to 80 characters. Any line
// break character ends the line, including a lone CR and U+2028.
func Preview(text string) string {
	line := strings.TrimSpace(text)
	if i := strings.IndexFunc(line, isLineBreak); i >= 0 {
		line = line[:i]
	}
	if utf8.RuneCountInString(line) <= previewLen {
		return line
	}
	return string([]rune(line)[:previewLen])
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases s, collapses every run of characters outside [a-z0-9]
// into one hyphen, trims hyphens and cuts the result to 80 characters.
// Returns "post" when nothing is left.
func Slugify(s string) string {
	slug := nonAlnum.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > slugLen {
		slug = slug[:slugLen]
	}
	if slug == "" {
		return fallbackSlug
	}
	return slug
}

// Fingerprint returns the first 10 hex characters of the SHA-1 of the trimmed text.
// It depends on nothing but the text.
func Fingerprint(text string) string {
	sum := sha1.Sum([]byte(strings.TrimSpace(text))) //nolint:gosec // see import
	return hex.EncodeToString(sum[:])[:fingerprintLen]
}
