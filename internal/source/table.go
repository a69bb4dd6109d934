package source

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// delimiters maps tabular file extensions to their field separator.
var delimiters = map[string]rune{
	".csv": ',',
	".tsv": '\t',
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// IsTabular reports whether name has a recognized tabular extension.
func IsTabular(name string) bool {
	_, ok := delimiters[strings.ToLower(filepath.Ext(name))]
	return ok
}

// Table reads a delimited file with a header row.
type Table struct {
	file   *os.File
	reader *csv.Reader
	header []string
}

// Row is one data record, addressed by column index.
type Row []string

// Get returns the value at idx, or "" when idx is negative or past the end
// of a short record.
func (r Row) Get(idx int) string {
	if idx < 0 || idx >= len(r) {
		return ""
	}
	return r[idx]
}

// OpenTable opens path and reads its header row. A leading UTF-8 byte order
// mark is dropped. An empty file yields an empty header.
func OpenTable(path string) (*Table, error) {
	delim, ok := delimiters[strings.ToLower(filepath.Ext(path))]
	if !ok {
		delim = ','
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	buffered := bufio.NewReader(file)
	if prefix, peekErr := buffered.Peek(len(utf8BOM)); peekErr == nil && bytes.Equal(prefix, utf8BOM) {
		_, _ = buffered.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(newCRPreserver(buffered, delim))
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	table := &Table{file: file, reader: reader}

	header, err := reader.Read()
	switch {
	case errors.Is(err, io.EOF):
	case err != nil:
		_ = file.Close()
		return nil, fmt.Errorf("reading header of %s: %w", path, err)
	default:
		table.header = header
	}
	return table, nil
}

// Header returns the header row as read from the file.
func (t *Table) Header() []string {
	return t.header
}

// Column returns the index of the first header equal to name, or -1.
// Header cells are trimmed before comparison; name is compared as given.
func (t *Table) Column(name string) int {
	if name == "" {
		return -1
	}
	for idx, header := range t.header {
		if strings.TrimSpace(header) == name {
			return idx
		}
	}
	return -1
}

// Next returns the next data row. Malformed records are reported as
// *csv.ParseError and the reader stays usable; io.EOF marks the end.
func (t *Table) Next() (Row, error) {
	record, err := t.reader.Read()
	if err != nil {
		return nil, err
	}
	return Row(record), nil
}

// Close releases the underlying file.
func (t *Table) Close() error {
	return t.file.Close()
}

// matchColumn returns the header that matches the earliest name in names,
// comparing trimmed, lowercased header cells. Returns "" when none match.
func matchColumn(header []string, names []string) string {
	for _, name := range names {
		for _, cell := range header {
			if strings.ToLower(strings.TrimSpace(cell)) == name {
				return strings.TrimSpace(cell)
			}
		}
	}
	return ""
}
