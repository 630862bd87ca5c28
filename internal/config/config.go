package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/guidekit-labs/guidekit/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Well-known configuration keys.
const (
	KeyManifest   = "manifest"    // path to guides.yaml
	KeyGuidesRoot = "guides_root" // directory holding the guide documents
	KeyPackRepo   = "pack_repo"   // git URL of the guides pack repository
)

// Dir returns the path to the GuideKit config directory (~/.guidekit/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.guidekit/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// ManifestPath returns the configured manifest path, falling back to
// "guides.yaml" in the current directory.
func ManifestPath() string {
	if v := Get(KeyManifest); v != "" {
		return v
	}
	return "guides.yaml"
}

// GuidesRoot returns the configured guides root, falling back to the
// directory containing the manifest.
func GuidesRoot() string {
	if v := Get(KeyGuidesRoot); v != "" {
		return v
	}
	return filepath.Dir(ManifestPath())
}

// PackRepoURL returns the guides pack repository URL, checking (in order):
// 1. <PREFIX>_PACK_REPO_URL env var
// 2. config key "pack_repo"
// 3. branding.PackRepoURL() (from branding.yaml)
func PackRepoURL() string {
	if v := os.Getenv(branding.EnvVar("PACK_REPO_URL")); v != "" {
		return v
	}
	if v := Get(KeyPackRepo); v != "" {
		return v
	}
	return branding.PackRepoURL()
}
