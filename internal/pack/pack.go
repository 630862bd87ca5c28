// Package pack manages the guides pack repository: the git repo that carries
// the manifest and the guide documents themselves. It handles cloning,
// updating, and freshness tracking so the CLI can nudge users running
// against a stale pack.
package pack

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/guidekit-labs/guidekit/internal/config"
)

const (
	// freshnessFile is the name of the timestamp marker file.
	freshnessFile = ".pack-updated"

	// DefaultMaxAge is the default staleness threshold (7 days).
	DefaultMaxAge = 7 * 24 * time.Hour

	// tmpSuffix is appended to the target dir during atomic clone.
	tmpSuffix = ".tmp"
)

// DefaultDir returns the default pack checkout location (~/.guidekit/pack).
func DefaultDir() string {
	return filepath.Join(config.Dir(), "pack")
}

// Clone performs a shallow clone of the guides pack into targetDir.
//
// The clone is atomic: it writes to a .tmp directory first, then renames on
// success. On failure the .tmp directory is cleaned up and any existing
// checkout is left alone.
func Clone(targetDir string) error {
	if err := ensureGit(); err != nil {
		return err
	}

	repoURL := config.PackRepoURL()
	tmpDir := targetDir + tmpSuffix

	// Clean up any leftover tmp dir from a previous failed attempt.
	_ = os.RemoveAll(tmpDir)

	if err := os.MkdirAll(filepath.Dir(tmpDir), 0755); err != nil {
		return fmt.Errorf("creating parent directory: %w", err)
	}

	cmd := exec.Command("git", "clone", "--depth=1", repoURL, tmpDir)
	if output, err := cmd.CombinedOutput(); err != nil {
		_ = os.RemoveAll(tmpDir)
		return fmt.Errorf("cloning guides pack: %w\n%s", err, strings.TrimSpace(string(output)))
	}

	// Atomic rename.
	if err := os.RemoveAll(targetDir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return fmt.Errorf("removing existing pack dir: %w", err)
	}
	if err := os.Rename(tmpDir, targetDir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return fmt.Errorf("finalizing pack clone: %w", err)
	}

	WriteFreshnessMarker(targetDir)
	return nil
}

// Update pulls the latest changes in the pack directory. If the pack has not
// been cloned yet, it clones instead.
func Update(packDir string) error {
	if err := ensureGit(); err != nil {
		return err
	}

	gitDir := filepath.Join(packDir, ".git")
	if _, err := os.Stat(gitDir); os.IsNotExist(err) {
		return Clone(packDir)
	}

	cmd := exec.Command("git", "pull", "--depth=1", "--rebase")
	cmd.Dir = packDir
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("pulling pack updates: %w\n%s", err, strings.TrimSpace(string(output)))
	}

	WriteFreshnessMarker(packDir)
	return nil
}

// WriteFreshnessMarker writes the current Unix timestamp to the freshness file.
func WriteFreshnessMarker(packDir string) {
	markerPath := filepath.Join(packDir, freshnessFile)
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	_ = os.WriteFile(markerPath, []byte(ts), 0644)
}

// ReadFreshnessMarker reads the timestamp from the freshness file.
// Returns zero time if the file doesn't exist or can't be parsed.
func ReadFreshnessMarker(packDir string) time.Time {
	markerPath := filepath.Join(packDir, freshnessFile)
	data, err := os.ReadFile(markerPath)
	if err != nil {
		return time.Time{}
	}
	ts, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(ts, 0)
}

// IsStale returns true if the pack was last updated more than maxAge ago,
// or was never updated at all.
func IsStale(packDir string, maxAge time.Duration) bool {
	lastUpdated := ReadFreshnessMarker(packDir)
	if lastUpdated.IsZero() {
		return true
	}
	return time.Since(lastUpdated) > maxAge
}

// Exists reports whether a pack checkout is present at packDir.
func Exists(packDir string) bool {
	_, err := os.Stat(filepath.Join(packDir, ".git"))
	return err == nil
}

// ensureGit checks that git is available on PATH.
func ensureGit() error {
	if _, err := exec.LookPath("git"); err != nil {
		return fmt.Errorf("git is required but not found in PATH")
	}
	return nil
}
