package source

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoTabularFiles is returned when an export contains no tabular files at all.
var ErrNoTabularFiles = errors.New("no tabular files found")

// maxListedFiles caps how many seen files a NoSourceError lists.
const maxListedFiles = 80

// NoSourceError reports that tabular files exist but none holds post content.
type NoSourceError struct {
	Root string
	Seen []string // sorted, relative to Root
}

func (e *NoSourceError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "no post content found in %s: none of the %d tabular files passed the post filters\n",
		e.Root, len(e.Seen))
	b.WriteString("tabular files seen:\n")

	listed := e.Seen
	if len(listed) > maxListedFiles {
		listed = listed[:maxListedFiles]
	}
	for _, rel := range listed {
		fmt.Fprintf(&b, "  - %s\n", rel)
	}
	if extra := len(e.Seen) - len(listed); extra > 0 {
		fmt.Fprintf(&b, "  ... and %d more\n", extra)
	}

	b.WriteString("The archive likely lacks post content. Request the complete LinkedIn data export " +
		"(not the fast \"first file\" download), which includes Shares.csv.")
	return b.String()
}
