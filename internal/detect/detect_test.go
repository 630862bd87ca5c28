package detect

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTarget(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestRunDetectsFireTvMarkers(t *testing.T) {
	root := writeTarget(t, map[string]string{
		"app/src/Player.kt": "when (keyCode) { KeyEvent.KEYCODE_DPAD_CENTER -> play() }",
		"app/src/Other.java": "class Other {}",
	})

	f, err := Run(root)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !f["fireTv"] {
		t.Error("fireTv = false, want true (KEYCODE_DPAD marker present)")
	}
	if f["androidTv"] {
		t.Error("androidTv = true, want false (no leanback manifest)")
	}
}

func TestRunDetectsLeanbackManifest(t *testing.T) {
	root := writeTarget(t, map[string]string{
		"app/src/main/AndroidManifest.xml": `<uses-feature android:name="android.software.leanback" />`,
	})

	f, err := Run(root)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !f["androidTv"] {
		t.Error("androidTv = false, want true")
	}
}

func TestRunReportsEveryDetector(t *testing.T) {
	root := writeTarget(t, map[string]string{"README.md": "docs only"})

	f, err := Run(root)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(f) != len(Builtins) {
		t.Fatalf("len(facts) = %d, want %d (every detector reported)", len(f), len(Builtins))
	}
	for _, d := range Builtins {
		if v, ok := f[d.Name]; !ok {
			t.Errorf("detector %s missing from facts", d.Name)
		} else if v {
			t.Errorf("detector %s = true for marker-free target", d.Name)
		}
	}
}

func TestRunSkipsVendoredDirs(t *testing.T) {
	root := writeTarget(t, map[string]string{
		"node_modules/dep/index.kt": "androidx.compose.material",
		".git/objects/blob.kt":      "androidx.compose.material",
	})

	f, err := Run(root)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if f["jetpackCompose"] {
		t.Error("jetpackCompose = true from vendored/VCS content, want false")
	}
}

func TestRunDetectorsPathOnlyPattern(t *testing.T) {
	root := writeTarget(t, map[string]string{"ios/Podfile": "platform :ios"})

	f, err := RunDetectors(root, []Detector{{Name: "ios", Pattern: "**Podfile"}})
	if err != nil {
		t.Fatalf("RunDetectors: %v", err)
	}
	if !f["ios"] {
		t.Error("ios = false, want true (path-only detector)")
	}
}

func TestRunRejectsMissingTarget(t *testing.T) {
	if _, err := Run(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("Run on missing target = nil error, want error")
	}
}
