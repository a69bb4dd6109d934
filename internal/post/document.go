package post

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"
)

// Meta is the front matter of an imported post.
type Meta struct {
	Date     string `yaml:"date"     json:"date"`
	Platform string `yaml:"platform" json:"platform"`
	Source   string `yaml:"source"   json:"source,omitempty"`
}

// Document is a post file read back from the output directory.
type Document struct {
	Name string `json:"name"`
	Meta Meta   `json:"meta"`
	Body string `json:"body"`
}

// Title returns the preview line used for listings.
func (d Document) Title() string {
	return Preview(d.Body)
}

// ParseDocument splits a post file into front matter and body.
// Files without front matter are rejected.
func ParseDocument(name string, data []byte) (Document, error) {
	var meta Meta
	body, err := frontmatter.MustParse(bytes.NewReader(data), &meta)
	if err != nil {
		return Document{}, fmt.Errorf("parsing %s: %w", name, err)
	}
	return Document{
		Name: name,
		Meta: meta,
		Body: strings.TrimSpace(string(body)),
	}, nil
}
