package importer

import (
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/gorewood/postsync/internal/post"
	"github.com/gorewood/postsync/internal/store"
)

// Listing is the set of posts found in an output directory.
type Listing struct {
	Posts   []post.Document `json:"posts"`
	Skipped []string        `json:"skipped,omitempty"`
}

// ListPosts reads every Markdown file in st, newest first.
// Files that cannot be read or have no front matter are reported in Skipped.
func ListPosts(st store.Store, logger *log.Logger) (*Listing, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	names, err := st.List()
	if err != nil {
		return nil, err
	}

	listing := &Listing{Posts: []post.Document{}}
	for _, name := range names {
		if !strings.HasSuffix(name, ".md") {
			continue
		}
		data, err := st.Read(name)
		if err != nil {
			logger.Warn("cannot read post", "file", name, "err", err)
			listing.Skipped = append(listing.Skipped, name)
			continue
		}
		doc, err := post.ParseDocument(name, data)
		if err != nil {
			logger.Debug("not a post", "file", name, "err", err)
			listing.Skipped = append(listing.Skipped, name)
			continue
		}
		listing.Posts = append(listing.Posts, doc)
	}

	sort.SliceStable(listing.Posts, func(i, j int) bool {
		a, b := listing.Posts[i], listing.Posts[j]
		if a.Meta.Date != b.Meta.Date {
			return a.Meta.Date > b.Meta.Date
		}
		return a.Name < b.Name
	})
	return listing, nil
}
