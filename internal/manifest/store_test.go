package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "guides.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestStoreLoadAndCurrent(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "wcag:\n  - a.md\n")
	s := NewStore(path, "dev")

	if _, err := s.Current(); err == nil {
		t.Error("Current() before Load = nil error, want error")
	}

	m, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	cur, err := s.Current()
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if cur.Checksum != m.Checksum {
		t.Errorf("Current checksum = %s, want %s", cur.Checksum, m.Checksum)
	}
}

func TestStoreReloadSwapsSnapshot(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "wcag:\n  - a.md\n")
	s := NewStore(path, "dev")
	if _, err := s.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	before, _ := s.Current()

	writeManifest(t, dir, "wcag:\n  - a.md\n  - b.md\n")
	after, err := s.Reload()
	if err != nil {
		t.Fatalf("Reload: %v", err)
	}

	if after.Checksum == before.Checksum {
		t.Error("Reload did not pick up new content")
	}
	if after.EntryCount() != 2 {
		t.Errorf("EntryCount = %d, want 2", after.EntryCount())
	}
	// The old snapshot is untouched; readers holding it keep a stable view.
	if before.EntryCount() != 1 {
		t.Errorf("prior snapshot EntryCount = %d, want 1", before.EntryCount())
	}
}

func TestStoreFailedReloadKeepsPriorManifest(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "wcag:\n  - a.md\n")
	s := NewStore(path, "dev")
	if _, err := s.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	good, _ := s.Current()

	// A duplicate identifier across categories is a fatal parse error.
	writeManifest(t, dir, "wcag:\n  - a.md\npatterns:\n  - a.md\n")
	if _, err := s.Reload(); err == nil {
		t.Fatal("Reload accepted duplicate identifier, want error")
	}

	cur, err := s.Current()
	if err != nil {
		t.Fatalf("Current after failed reload: %v", err)
	}
	if cur.Checksum != good.Checksum {
		t.Errorf("failed reload replaced manifest: checksum %s, want %s", cur.Checksum, good.Checksum)
	}
}

func TestStoreLoadRejectsUnknownEntryField(t *testing.T) {
	// A typo'd field would otherwise parse as an unconditional entry.
	doc := "wcag:\n  - path: a.md\n    whenn: fireTv\n"
	path := writeManifest(t, t.TempDir(), doc)
	s := NewStore(path, "dev")

	_, err := s.Load()
	if err == nil {
		t.Fatal("Load accepted entry with unknown field, want error")
	}
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("error type = %T, want *SchemaError", err)
	}
	if len(se.Issues) == 0 {
		t.Error("SchemaError carries no issues")
	}
}

func TestStoreSchemaViolationReloadKeepsPriorManifest(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "wcag:\n  - a.md\n")
	s := NewStore(path, "dev")
	if _, err := s.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	good, _ := s.Current()

	writeManifest(t, dir, "wcag:\n  - path: a.md\n    whenn: fireTv\n")
	if _, err := s.Reload(); err == nil {
		t.Fatal("Reload accepted schema-invalid manifest, want error")
	}

	cur, err := s.Current()
	if err != nil {
		t.Fatalf("Current after failed reload: %v", err)
	}
	if cur.Checksum != good.Checksum {
		t.Errorf("failed reload replaced manifest: checksum %s, want %s", cur.Checksum, good.Checksum)
	}
}

func TestStoreRequiresGate(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "meta:\n  requires: \">= 9.0.0\"\nwcag:\n  - a.md\n")
	s := NewStore(path, "1.0.0")
	if _, err := s.Load(); err == nil {
		t.Error("Load accepted manifest requiring newer tool, want error")
	}
}
