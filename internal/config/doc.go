// Package config manages user-level settings stored at ~/.guidekit/config.yaml.
// It provides functions to load, read, and write configuration keys such as
// the manifest path, the guides root directory, and the pack repository URL.
package config
