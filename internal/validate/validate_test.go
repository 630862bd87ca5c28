package validate

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/guidekit-labs/guidekit/internal/manifest"
)

// writeGuides creates a guides root containing the given relative files.
func writeGuides(t *testing.T, files ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, rel := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("# guide\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func mustParse(t *testing.T, doc string) *manifest.Manifest {
	t.Helper()
	m, err := manifest.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return m
}

func TestCheckCleanWhenManifestCoversStoreExactly(t *testing.T) {
	root := writeGuides(t, "wcag/a.md", "patterns/c.md")
	m := mustParse(t, "wcag:\n  - wcag/a.md\npatterns:\n  - patterns/c.md\n")

	report := Check(m, root)
	if len(report.Records) != 0 {
		t.Errorf("Records = %+v, want empty report", report.Records)
	}
	if report.Failed() {
		t.Error("Failed() = true for clean report")
	}
}

func TestCheckReportsExactlyOneMissing(t *testing.T) {
	root := writeGuides(t, "wcag/a.md")
	m := mustParse(t, "wcag:\n  - wcag/a.md\n  - wcag/b.md\n")

	report := Check(m, root)
	if len(report.Records) != 1 {
		t.Fatalf("len(Records) = %d, want 1: %+v", len(report.Records), report.Records)
	}
	rec := report.Records[0]
	if rec.Kind != KindMissing {
		t.Errorf("Kind = %q, want %q", rec.Kind, KindMissing)
	}
	if rec.ID != "wcag/b.md" {
		t.Errorf("ID = %q, want %q", rec.ID, "wcag/b.md")
	}
	if rec.Category != "wcag" {
		t.Errorf("Category = %q, want %q", rec.Category, "wcag")
	}
	if !report.Failed() {
		t.Error("Failed() = false with a missing record")
	}
}

func TestCheckCollectsAllProblemsInOnePass(t *testing.T) {
	root := writeGuides(t, "wcag/a.md", "stray/unlisted.md")
	m := mustParse(t, "wcag:\n  - wcag/a.md\n  - wcag/gone1.md\n  - wcag/gone2.md\n")

	report := Check(m, root)
	if got := report.Count(KindMissing); got != 2 {
		t.Errorf("missing count = %d, want 2", got)
	}
	if got := report.Count(KindOrphaned); got != 1 {
		t.Errorf("orphaned count = %d, want 1", got)
	}
}

func TestCheckDisabledEntriesAreNotMissingButStillClaimFiles(t *testing.T) {
	// b.md is disabled and absent: no missing record. a.md is disabled and
	// present: its file is referenced, not an orphan.
	root := writeGuides(t, "wcag/a.md")
	m := mustParse(t, "wcag:\n  - \"!wcag/a.md\"\n  - \"!wcag/b.md\"\n")

	report := Check(m, root)
	if len(report.Records) != 0 {
		t.Errorf("Records = %+v, want empty report", report.Records)
	}
}

func TestCheckSkipsManifestAndHiddenFiles(t *testing.T) {
	root := writeGuides(t, "wcag/a.md", ".cache/tmp.md", ".hidden.md")
	if err := os.WriteFile(filepath.Join(root, "guides.yaml"), []byte("wcag:\n  - wcag/a.md\n"), 0644); err != nil {
		t.Fatal(err)
	}
	m := mustParse(t, "wcag:\n  - wcag/a.md\n")

	report := Check(m, root)
	if len(report.Records) != 0 {
		t.Errorf("Records = %+v, want empty report", report.Records)
	}
}

func TestCheckCaseMismatchSurfacesBothDirections(t *testing.T) {
	root := writeGuides(t, "wcag/Contrast.md")
	m := mustParse(t, "wcag:\n  - wcag/contrast.md\n")

	report := Check(m, root)
	// On a case-sensitive filesystem the mismatch is one missing plus one
	// orphan; on a case-insensitive one the stat succeeds and only the
	// orphan may collapse. Either way the report is deterministic per
	// platform; here we assert the case-sensitive shape when it appears.
	if report.Count(KindMissing) == 1 && report.Count(KindOrphaned) != 1 {
		t.Errorf("missing without matching orphan: %+v", report.Records)
	}
}

func TestDuplicateReport(t *testing.T) {
	_, err := manifest.Parse([]byte("wcag:\n  - a.md\npatterns:\n  - a.md\n"))
	var dup *manifest.DuplicateEntryError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateEntryError, got %v", err)
	}

	report := DuplicateReport(dup)
	if !report.Failed() {
		t.Error("Failed() = false for duplicate report")
	}
	if report.Records[0].Kind != KindDuplicate || report.Records[0].ID != "a.md" {
		t.Errorf("record = %+v, want duplicate a.md", report.Records[0])
	}
}

func TestCheckUnreadableDirectoryAsEntry(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "wcag", "a.md"), 0755); err != nil {
		t.Fatal(err)
	}
	m := mustParse(t, "wcag:\n  - wcag/a.md\n")

	report := Check(m, root)
	if got := report.Count(KindMissing); got != 1 {
		t.Fatalf("missing count = %d, want 1 (directory is not a guide)", got)
	}
	if report.Records[0].Detail != "is a directory, not a file" {
		t.Errorf("Detail = %q", report.Records[0].Detail)
	}
}
