package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultSampleLimit caps how many data rows are read per file while scoring.
const DefaultSampleLimit = 3000

// Rules holds the ordered tables that drive source selection.
// Keywords and column names are matched case-insensitively.
type Rules struct {
	Allow       []string `yaml:"allow"        json:"allow"`
	Block       []string `yaml:"block"        json:"block"`
	TextColumns []string `yaml:"text_columns" json:"text_columns"`
	DateColumns []string `yaml:"date_columns" json:"date_columns"`
	URLColumns  []string `yaml:"url_columns"  json:"url_columns"`
	SampleLimit int      `yaml:"sample_limit" json:"sample_limit"`
}

// DefaultRules returns the built-in tables for LinkedIn exports.
func DefaultRules() Rules {
	return Rules{
		Allow: []string{
			"posts", "shares", "updates", "user-generated-content", "ugc", "articles", "activity",
		},
		Block: []string{
			"messages", "connections", "contacts", "invitations", "learning", "email", "phone",
			"inferences", "ad_targeting", "registration", "endorsement", "recommendations", "rich_media",
		},
		TextColumns: []string{"content", "text", "sharecommentary", "commentary", "post", "body"},
		DateColumns: []string{"date", "timestamp", "time", "created at", "createdat"},
		URLColumns:  []string{"url", "link", "permalink", "sharelink"},
		SampleLimit: DefaultSampleLimit,
	}
}

// LoadRules reads a YAML rules file. Tables present in the file replace the
// corresponding default table; absent ones keep their defaults.
// An empty path returns DefaultRules.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()
	if path == "" {
		return rules, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("reading rules file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&rules); err != nil && !errors.Is(err, io.EOF) {
		return Rules{}, fmt.Errorf("parsing rules file %s: %w", path, err)
	}

	if err := rules.Validate(); err != nil {
		return Rules{}, fmt.Errorf("rules file %s: %w", path, err)
	}
	return rules.normalized(), nil
}

// Validate reports tables that would make selection impossible.
func (r Rules) Validate() error {
	if len(r.Allow) == 0 {
		return errors.New("allow list is empty")
	}
	if len(r.TextColumns) == 0 {
		return errors.New("text_columns is empty")
	}
	if r.SampleLimit <= 0 {
		return fmt.Errorf("sample_limit must be positive, got %d", r.SampleLimit)
	}
	return nil
}

// normalized returns a copy with every keyword and column name trimmed and lowercased.
func (r Rules) normalized() Rules {
	return Rules{
		Allow:       lowerAll(r.Allow),
		Block:       lowerAll(r.Block),
		TextColumns: lowerAll(r.TextColumns),
		DateColumns: lowerAll(r.DateColumns),
		URLColumns:  lowerAll(r.URLColumns),
		SampleLimit: r.SampleLimit,
	}
}

func lowerAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if value = strings.ToLower(strings.TrimSpace(value)); value != "" {
			out = append(out, value)
		}
	}
	return out
}

// firstKeyword returns the first keyword contained in name, or "".
func firstKeyword(name string, keywords []string) string {
	lower := strings.ToLower(name)
	for _, keyword := range keywords {
		if strings.Contains(lower, keyword) {
			return keyword
		}
	}
	return ""
}
