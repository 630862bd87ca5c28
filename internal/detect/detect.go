// Package detect scans an audited codebase for platform traits and produces
// the detection facts that gate conditional manifest entries. Detection is
// deliberately shallow: it recognizes platform markers (Fire TV input
// handling, leanback manifests, UI toolkits), never accessibility defects;
// defect analysis belongs to the audit itself, not the registry.
package detect

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/guidekit-labs/guidekit/internal/facts"
)

// maxProbeBytes caps how much of a candidate file is read when matching
// content markers.
const maxProbeBytes = 512 * 1024

// Detector recognizes one platform trait. A file under the target root sets
// the detector's fact to true when its relative path matches Pattern and, if
// Markers is non-empty, its content contains any marker.
type Detector struct {
	Name    string   // detector name referenced by manifest "when" fields
	Pattern string   // file glob, slash-separated, relative to the target root
	Markers []string // content substrings; empty means path match is enough
}

// Builtins is the default detector table. Manifest entries reference these
// names; a manifest naming a detector missing here simply never matches
// (conditions fail closed downstream).
var Builtins = []Detector{
	{
		Name:    "fireTv",
		Pattern: "**.{java,kt}",
		Markers: []string{"KEYCODE_DPAD", "com.amazon.device", "AmazonFireTV"},
	},
	{
		Name:    "androidTv",
		Pattern: "**AndroidManifest.xml",
		Markers: []string{"android.software.leanback", "LEANBACK_LAUNCHER"},
	},
	{
		Name:    "jetpackCompose",
		Pattern: "**.kt",
		Markers: []string{"androidx.compose"},
	},
	{
		Name:    "exoPlayer",
		Pattern: "**.{java,kt,gradle,kts}",
		Markers: []string{"com.google.android.exoplayer", "androidx.media3"},
	},
}

// skipDirs are never descended into while scanning a target.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"build":        true,
	".gradle":      true,
}

// Run scans the target root with the built-in detector table.
func Run(root string) (facts.Facts, error) {
	return RunDetectors(root, Builtins)
}

// RunDetectors scans the target root and returns a fact for every detector:
// true if any file matched, false otherwise. Every detector name appears in
// the output so the resulting facts are self-describing.
func RunDetectors(root string, detectors []Detector) (facts.Facts, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scanning target %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scanning target %s: not a directory", root)
	}

	compiled := make([]glob.Glob, len(detectors))
	for i, d := range detectors {
		g, err := glob.Compile(d.Pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("detector %s: compiling pattern %q: %w", d.Name, d.Pattern, err)
		}
		compiled[i] = g
	}

	found := make(facts.Facts, len(detectors))
	for _, d := range detectors {
		found[d.Name] = false
	}

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // skip inaccessible entries
		}
		name := d.Name()
		if d.IsDir() {
			if skipDirs[name] || (strings.HasPrefix(name, ".") && path != root) {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		var content []byte
		contentLoaded := false
		for i, det := range detectors {
			if found[det.Name] {
				continue
			}
			if !compiled[i].Match(rel) {
				continue
			}
			if len(det.Markers) == 0 {
				found[det.Name] = true
				continue
			}
			if !contentLoaded {
				content = probeFile(path)
				contentLoaded = true
			}
			for _, marker := range det.Markers {
				if bytes.Contains(content, []byte(marker)) {
					found[det.Name] = true
					break
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning target %s: %w", root, err)
	}

	return found, nil
}

// probeFile reads up to maxProbeBytes of the file. Unreadable files probe
// empty rather than failing the whole scan.
func probeFile(path string) []byte {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxProbeBytes))
	if err != nil {
		return nil
	}
	return data
}
