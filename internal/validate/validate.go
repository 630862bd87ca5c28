package validate

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/guidekit-labs/guidekit/internal/manifest"
)

// manifestFileNames are skipped by the orphan scan when the manifest lives
// inside the guides root.
var manifestFileNames = map[string]bool{
	"guides.yaml": true,
	"guides.yml":  true,
}

// Check validates the manifest against the guide store at guidesRoot and
// returns every discrepancy found. It never stops at the first problem:
// missing files are collected for all enabled entries, then the root is
// walked for orphans. Identifiers are compared byte-exact after separator
// normalization; no case folding is applied.
func Check(m *manifest.Manifest, guidesRoot string) *Report {
	report := &Report{}

	// Manifest -> disk: every enabled entry must be a readable file.
	referenced := make(map[string]bool)
	for _, e := range m.Entries() {
		referenced[e.ID] = true
		if e.Disabled {
			continue
		}
		if detail, ok := checkReadable(filepath.Join(guidesRoot, filepath.FromSlash(e.ID))); !ok {
			report.Records = append(report.Records, Record{
				Kind:     KindMissing,
				ID:       e.ID,
				Category: e.Category,
				Detail:   detail,
			})
		}
	}

	// Disk -> manifest: every guide file must be referenced by some entry,
	// enabled or disabled.
	for _, rel := range walkGuides(guidesRoot) {
		if !referenced[rel] {
			report.Records = append(report.Records, Record{
				Kind: KindOrphaned,
				ID:   rel,
			})
		}
	}

	return report
}

// checkReadable confirms path is an existing regular file the process can
// open. The failure detail distinguishes absent from unreadable.
func checkReadable(path string) (detail string, ok bool) {
	info, err := os.Stat(path)
	if err != nil {
		return "file not found", false
	}
	if info.IsDir() {
		return "is a directory, not a file", false
	}
	f, err := os.Open(path)
	if err != nil {
		return "file exists but is not readable", false
	}
	f.Close()
	return "", true
}

// walkGuides returns slash-normalized relative paths of all guide files under
// root, in walk order. Dot-files, dot-directories, and the manifest file
// itself are skipped.
func walkGuides(root string) []string {
	var out []string
	filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // skip inaccessible entries
		}
		name := d.Name()
		if strings.HasPrefix(name, ".") && path != root {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if manifestFileNames[name] {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	return out
}
