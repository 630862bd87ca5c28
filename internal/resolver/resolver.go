// Package resolver computes the resolved guide set: the final, ordered,
// filtered list of guide identifiers a consumer must load for a given
// manifest and fact set. Resolve is the single consistency contract shared
// by every consumer: the CLI and the HTTP service both call it (through the
// cache) and neither reimplements ordering or filtering locally.
package resolver

import (
	"github.com/guidekit-labs/guidekit/internal/facts"
	"github.com/guidekit-labs/guidekit/internal/manifest"
	"github.com/guidekit-labs/guidekit/internal/rules"
)

// Resolve returns the ordered guide identifiers to load for the manifest and
// facts. It is a pure function: categories are flattened in declared order,
// entries kept in declared order, and an entry is included iff it is not
// disabled and its condition is satisfied. The result is a strict
// order-preserving subsequence of the manifest's flattened entry list, so two
// consumers given the same inputs produce byte-identical output.
func Resolve(m *manifest.Manifest, f facts.Facts) []string {
	out := make([]string, 0, m.EntryCount())
	for _, c := range m.Categories {
		for _, e := range c.Entries {
			if e.Disabled {
				continue
			}
			if !rules.Satisfied(e, f) {
				continue
			}
			out = append(out, e.ID)
		}
	}
	return out
}
