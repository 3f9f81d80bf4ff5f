package compare_test

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"rstcheck/internal/compare"
)

func testdata(name string) string {
	return filepath.Join("testdata", name)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestCheck_Identical(t *testing.T) {
	var buf bytes.Buffer
	res, err := compare.Check(&buf, testdata("ref.csv"), testdata("same.csv"))
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if res.Verdict() != compare.VerdictMatch {
		t.Errorf("Verdict = %q, want match", res.Verdict())
	}
	want := "\nChecking result...\n\n" +
		"Read: testdata/ref.csv\n" +
		"Read: testdata/same.csv\n\n" +
		"Success!\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestCheck_ChangedLine(t *testing.T) {
	var buf bytes.Buffer
	res, err := compare.Check(&buf, testdata("ref.csv"), testdata("changed.csv"))
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if res.Match() {
		t.Fatal("expected mismatch")
	}
	wantEntries := []compare.Entry{
		{Kind: compare.Removed, Text: "b,2\n"},
		{Kind: compare.Added, Text: "b,3\n"},
	}
	if diff := cmp.Diff(wantEntries, res.Entries); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
	out := buf.String()
	if !strings.Contains(out, "- b,2\n+ b,3\n") {
		t.Errorf("expected removed then added lines in report:\n%s", out)
	}
	if !strings.HasSuffix(out, "Error!\n") {
		t.Errorf("report should end with Error!:\n%s", out)
	}
}

func TestCheck_EmptyReference(t *testing.T) {
	var buf bytes.Buffer
	res, err := compare.Check(&buf, testdata("empty.csv"), testdata("one.csv"))
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if res.Verdict() != compare.VerdictMismatch {
		t.Errorf("Verdict = %q, want mismatch", res.Verdict())
	}
	if res.Added() != 1 || res.Removed() != 0 {
		t.Errorf("added=%d removed=%d, want 1/0", res.Added(), res.Removed())
	}
	if !strings.HasSuffix(buf.String(), "+ x\nError!\n") {
		t.Errorf("unexpected report:\n%s", buf.String())
	}
}

func TestCheck_MissingReference(t *testing.T) {
	var buf bytes.Buffer
	res, err := compare.Check(&buf, testdata("does-not-exist.csv"), testdata("ref.csv"))
	if err == nil {
		t.Fatal("expected error for missing reference")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("error should wrap fs.ErrNotExist, got %v", err)
	}
	if res != nil {
		t.Errorf("expected nil result, got %+v", res)
	}
	out := buf.String()
	if strings.Contains(out, "Success!") || strings.Contains(out, "Error!") {
		t.Errorf("no verdict expected on inaccessible input:\n%s", out)
	}
	if strings.Contains(out, "Read:") {
		t.Errorf("files should not be acknowledged on inaccessible input:\n%s", out)
	}
}

func TestCheck_MissingCandidate(t *testing.T) {
	var buf bytes.Buffer
	_, err := compare.Check(&buf, testdata("ref.csv"), testdata("does-not-exist.csv"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
	if strings.Contains(buf.String(), "Error!") {
		t.Errorf("no verdict expected:\n%s", buf.String())
	}
}

func TestCompare_Idempotent(t *testing.T) {
	first, err := compare.Compare(testdata("ref.csv"), testdata("changed.csv"))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		again, err := compare.Compare(testdata("ref.csv"), testdata("changed.csv"))
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("run %d differs (-first +again):\n%s", i, diff)
		}
	}
}

func TestCompare_SwapRoles(t *testing.T) {
	pairs := [][2]string{
		{"ref.csv", "same.csv"},
		{"ref.csv", "changed.csv"},
		{"empty.csv", "one.csv"},
		{"ref.csv", "no_trailing_newline.csv"},
	}
	for _, p := range pairs {
		t.Run(p[0]+"_"+p[1], func(t *testing.T) {
			fwd, err := compare.Compare(testdata(p[0]), testdata(p[1]))
			if err != nil {
				t.Fatal(err)
			}
			rev, err := compare.Compare(testdata(p[1]), testdata(p[0]))
			if err != nil {
				t.Fatal(err)
			}
			if fwd.Verdict() != rev.Verdict() {
				t.Errorf("verdict changed on swap: %s vs %s", fwd.Verdict(), rev.Verdict())
			}
			if fwd.Added() != rev.Removed() || fwd.Removed() != rev.Added() {
				t.Errorf("swap should exchange tags: fwd +%d -%d, rev +%d -%d",
					fwd.Added(), fwd.Removed(), rev.Added(), rev.Removed())
			}
		})
	}
}

func TestCompare_TrailingNewlineIsContent(t *testing.T) {
	res, err := compare.Compare(testdata("ref.csv"), testdata("no_trailing_newline.csv"))
	if err != nil {
		t.Fatal(err)
	}
	want := []compare.Entry{
		{Kind: compare.Removed, Text: "b,2\n"},
		{Kind: compare.Added, Text: "b,2"},
	}
	if diff := cmp.Diff(want, res.Entries); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestCompare_Reordered(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.csv", "1\n2\n3\n")
	b := writeFile(t, dir, "b.csv", "1\n3\n2\n")
	res, err := compare.Compare(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if res.Match() {
		t.Fatal("reordered lines must be a mismatch")
	}
}

func TestCompare_RepeatedLinesIdentical(t *testing.T) {
	dir := t.TempDir()
	content := strings.Repeat("0.000,0.000\n", 500)
	a := writeFile(t, dir, "a.csv", content)
	b := writeFile(t, dir, "b.csv", content)
	res, err := compare.Compare(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Match() {
		t.Errorf("identical files reported %d differences", len(res.Entries))
	}
}

func TestCompare_BothEmpty(t *testing.T) {
	res, err := compare.Compare(testdata("empty.csv"), testdata("empty.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if !res.Match() {
		t.Errorf("two empty files should match, got %+v", res.Entries)
	}
}

type recordingPrinter struct {
	calls []string
}

func (p *recordingPrinter) Header(_ io.Writer) { p.calls = append(p.calls, "header") }
func (p *recordingPrinter) Opened(_ io.Writer, _, _ string) {
	p.calls = append(p.calls, "opened")
}
func (p *recordingPrinter) Entry(_ io.Writer, e compare.Entry) {
	p.calls = append(p.calls, e.Kind.String())
}
func (p *recordingPrinter) Verdict(_ io.Writer, match bool) {
	if match {
		p.calls = append(p.calls, "success")
		return
	}
	p.calls = append(p.calls, "error")
}

func TestCheck_WithPrinterOrder(t *testing.T) {
	p := &recordingPrinter{}
	if _, err := compare.Check(io.Discard, testdata("ref.csv"), testdata("changed.csv"), compare.WithPrinter(p)); err != nil {
		t.Fatal(err)
	}
	want := []string{"header", "opened", "removed", "added", "error"}
	if diff := cmp.Diff(want, p.calls); diff != "" {
		t.Errorf("printer call order (-want +got):\n%s", diff)
	}
}
