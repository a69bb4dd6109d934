package importer

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gorewood/postsync/internal/source"
	"github.com/gorewood/postsync/internal/store"
)

var runDate = time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return runDate }

// writeSource writes a single-file export and returns its selected candidate.
func writeSource(t *testing.T, name, content string) *source.Candidate {
	t.Helper()
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, name), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	cand, err := source.NewSelector(source.DefaultRules(), nil).Select(root)
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	return cand
}

func TestRun_Scenario(t *testing.T) {
	cand := writeSource(t, "Shares.csv", "Date,ShareCommentary,Url\n2024-01-01,\"Hello world\",https://example.com/p\n")
	mem := store.NewMemory(nil)

	result, err := New(mem, WithClock(fixedClock)).Run(cand)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Created != 1 || result.Updated != 0 {
		t.Fatalf("created/updated = %d/%d, want 1/0", result.Created, result.Updated)
	}
	if result.TextColumn != "ShareCommentary" || result.Source != "Shares.csv" {
		t.Errorf("result = %+v", result)
	}

	names, _ := mem.List()
	if len(names) != 1 {
		t.Fatalf("files = %v, want one", names)
	}
	if !regexp.MustCompile(`^2024-01-01-hello-world-[0-9a-f]{10}\.md$`).MatchString(names[0]) {
		t.Errorf("filename = %q", names[0])
	}

	data, _ := mem.Read(names[0])
	want := "---\ndate: 2024-01-01\nplatform: linkedin\nsource: https://example.com/p\n---\n\nHello world\n"
	if string(data) != want {
		t.Errorf("content =\n%q\nwant\n%q", data, want)
	}
}

func TestRun_BlankRowsSkipped(t *testing.T) {
	cand := writeSource(t, "posts.csv", "Date,Content\n2024-01-01,first\n2024-01-02,   \n2024-01-03,\n2024-01-04,\"\n\t\"\n2024-01-05,second\n")
	mem := store.NewMemory(nil)

	result, err := New(mem, WithClock(fixedClock)).Run(cand)
	if err != nil {
		t.Fatal(err)
	}
	if result.Created != 2 || result.Updated != 0 {
		t.Errorf("created/updated = %d/%d, want 2/0", result.Created, result.Updated)
	}
	if result.Skipped != 3 {
		t.Errorf("Skipped = %d, want 3", result.Skipped)
	}
	if mem.Writes() != 2 {
		t.Errorf("Writes() = %d, want 2", mem.Writes())
	}
}

func TestRun_Idempotent(t *testing.T) {
	cand := writeSource(t, "Shares.csv", "Date,ShareCommentary,ShareLink\n"+
		"2024-01-01,One,https://x/1\n"+
		"05/02/2024,Two,https://x/2\n"+
		"garbage,Three,\n")
	dir, err := store.OpenDir(filepath.Join(t.TempDir(), "posts"))
	if err != nil {
		t.Fatal(err)
	}
	m := New(dir, WithClock(fixedClock))

	first, err := m.Run(cand)
	if err != nil {
		t.Fatal(err)
	}
	if first.Created != 3 {
		t.Fatalf("first run created %d, want 3", first.Created)
	}

	second, err := m.Run(cand)
	if err != nil {
		t.Fatal(err)
	}
	if second.Created != 0 || second.Updated != 0 || second.Changed() {
		t.Errorf("second run created/updated = %d/%d, want 0/0", second.Created, second.Updated)
	}
	if second.Unchanged != 3 {
		t.Errorf("Unchanged = %d, want 3", second.Unchanged)
	}
}

func TestRun_URLChangeKeepsFilenameAndUpdates(t *testing.T) {
	mem := store.NewMemory(nil)
	m := New(mem, WithClock(fixedClock))

	before := writeSource(t, "Shares.csv", "Date,ShareCommentary,Url\n2024-01-01,Same text,https://example.com/old\n")
	if _, err := m.Run(before); err != nil {
		t.Fatal(err)
	}
	namesBefore, _ := mem.List()

	after := writeSource(t, "Shares.csv", "Date,ShareCommentary,Url\n2024-01-01,Same text,https://example.com/new\n")
	result, err := m.Run(after)
	if err != nil {
		t.Fatal(err)
	}
	namesAfter, _ := mem.List()

	if strings.Join(namesBefore, ",") != strings.Join(namesAfter, ",") {
		t.Errorf("filenames changed: %v -> %v", namesBefore, namesAfter)
	}
	if result.Created != 0 || result.Updated != 1 {
		t.Errorf("created/updated = %d/%d, want 0/1", result.Created, result.Updated)
	}
	data, _ := mem.Read(namesAfter[0])
	if !strings.Contains(string(data), "source: https://example.com/new") {
		t.Errorf("content not updated:\n%s", data)
	}
}

func TestRun_DateFallbacks(t *testing.T) {
	cand := writeSource(t, "posts.csv", "Date,Content\nnot-a-date,undated\n2024-03-05T10:00:00Z,iso\n")
	mem := store.NewMemory(nil)

	if _, err := New(mem, WithClock(fixedClock)).Run(cand); err != nil {
		t.Fatal(err)
	}

	names, _ := mem.List()
	joined := strings.Join(names, "\n")
	if !strings.Contains(joined, "2026-10-19-undated-") {
		t.Errorf("undated row should use the run date, files:\n%s", joined)
	}
	if !strings.Contains(joined, "2024-03-05-iso-") {
		t.Errorf("ISO-prefixed date should keep its first ten chars, files:\n%s", joined)
	}
}

func TestRun_NoDateColumnUsesRunDate(t *testing.T) {
	cand := writeSource(t, "posts.csv", "Content\nHello\n")
	mem := store.NewMemory(nil)

	if _, err := New(mem, WithClock(fixedClock)).Run(cand); err != nil {
		t.Fatal(err)
	}
	names, _ := mem.List()
	if len(names) != 1 || !strings.HasPrefix(names[0], "2026-10-19-hello-") {
		t.Errorf("files = %v", names)
	}
}

func TestRun_ShortRecords(t *testing.T) {
	cand := writeSource(t, "posts.csv", "Content,Date,Url\nOnly text\n")
	mem := store.NewMemory(nil)

	result, err := New(mem, WithClock(fixedClock)).Run(cand)
	if err != nil {
		t.Fatal(err)
	}
	if result.Created != 1 {
		t.Errorf("Created = %d, want 1", result.Created)
	}
}

func TestRun_MultilineAndQuotedText(t *testing.T) {
	cand := writeSource(t, "Shares.csv", "Date,ShareCommentary\n2024-01-01,\"First line, with comma\n\nSecond \"\"quoted\"\" line\"\n")
	mem := store.NewMemory(nil)

	if _, err := New(mem, WithClock(fixedClock)).Run(cand); err != nil {
		t.Fatal(err)
	}
	names, _ := mem.List()
	if len(names) != 1 || !strings.HasPrefix(names[0], "2024-01-01-first-line-with-comma-") {
		t.Fatalf("files = %v", names)
	}
	data, _ := mem.Read(names[0])
	if !strings.HasSuffix(string(data), "\n\nFirst line, with comma\n\nSecond \"quoted\" line\n") {
		t.Errorf("content = %q", data)
	}
}

func TestRun_MissingSource(t *testing.T) {
	cand := &source.Candidate{Path: filepath.Join(t.TempDir(), "gone.csv"), Rel: "gone.csv", TextColumn: "Content"}
	if _, err := New(store.NewMemory(nil)).Run(cand); err == nil {
		t.Error("Run() expected error for missing source file")
	}
}

type failingStore struct{ *store.Memory }

func (failingStore) Write(string, []byte) error { return errors.New("disk full") }

func TestRun_WriteFailureAborts(t *testing.T) {
	cand := writeSource(t, "posts.csv", "Content\nHello\n")
	_, err := New(failingStore{store.NewMemory(nil)}).Run(cand)
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("Run() error = %v, want disk full", err)
	}
}

func TestRun_CRLFMultilinePost(t *testing.T) {
	cand := writeSource(t, "Shares.csv", "Date,ShareCommentary\r\n2024-01-01,\"Hello\r\nworld\"\r\n")
	mem := store.NewMemory(nil)

	if _, err := New(mem, WithClock(fixedClock)).Run(cand); err != nil {
		t.Fatal(err)
	}

	const name = "2024-01-01-hello-f247e849ed.md"
	data, err := mem.Read(name)
	if err != nil {
		names, _ := mem.List()
		t.Fatalf("expected %s, files = %v", name, names)
	}
	if !strings.HasSuffix(string(data), "\n\nHello\r\nworld\n") {
		t.Errorf("body should keep CRLF, content = %q", data)
	}
}
