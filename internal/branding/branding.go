// Package branding provides compile-time identity values for the CLI.
//
// Forkers edit branding.yaml in this package, and Go's //go:embed bakes it
// into the binary. Every user-visible name, env prefix, and default repo URL
// flows through here so a rebrand never touches command code.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName     string `yaml:"cli_name"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
	HomeDir     string `yaml:"home_dir"`
	EnvPrefix   string `yaml:"env_prefix"`
	GoModule    string `yaml:"go_module"`
	PackRepoURL string `yaml:"pack_repo_url"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:     "guidekit",
			DisplayName: "GuideKit",
			Description: "Manifest-driven registry for accessibility guide bundles",
			HomeDir:     ".guidekit",
			EnvPrefix:   "GUIDEKIT",
			GoModule:    "github.com/guidekit-labs/guidekit",
			PackRepoURL: "https://github.com/guidekit-labs/guides.git",
		}
		// Overlay with embedded YAML values.
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "guidekit").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name (e.g., "GuideKit").
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".guidekit").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "GUIDEKIT").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GoModule returns the Go module path. Used by rebrand tooling, not at runtime.
func GoModule() string { load(); return defaults.GoModule }

// PackRepoURL returns the default git URL for fetching the guides pack.
func PackRepoURL() string { load(); return defaults.PackRepoURL }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("MANIFEST") → "GUIDEKIT_MANIFEST".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
