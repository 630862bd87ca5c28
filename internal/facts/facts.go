// Package facts defines the detection facts consumed by conditional manifest
// entries. Facts are an opaque, caller-supplied map from detector name to
// boolean; this package never performs detection itself. The canonical
// fingerprint lets caches key on fact content independent of map iteration
// order.
package facts

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Facts maps detector names to their detected boolean values.
type Facts map[string]bool

// Fingerprint returns a canonical, order-independent hash of the facts map.
// Two maps with identical contents always fingerprint identically.
func Fingerprint(f Facts) string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	h := sha256.New()
	for _, k := range keys {
		fmt.Fprintf(h, "%s=%t\n", k, f[k])
	}
	return hex.EncodeToString(h.Sum(nil))
}

// ParsePairs parses "name=bool" strings (CLI --fact flags) into a Facts map.
// A bare "name" with no value means true.
func ParsePairs(pairs []string) (Facts, error) {
	f := make(Facts, len(pairs))
	for _, p := range pairs {
		name, val, found := strings.Cut(p, "=")
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("invalid fact %q: empty detector name", p)
		}
		if !found {
			f[name] = true
			continue
		}
		b, err := strconv.ParseBool(strings.TrimSpace(val))
		if err != nil {
			return nil, fmt.Errorf("invalid fact %q: value must be a boolean", p)
		}
		f[name] = b
	}
	return f, nil
}

// Merge overlays b onto a and returns the result; b wins on conflicts.
// Neither input is modified.
func Merge(a, b Facts) Facts {
	out := make(Facts, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}
