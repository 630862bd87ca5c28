// Package rules evaluates conditional manifest entries against detection
// facts. It is the one place inclusion gating lives; consumers never branch
// on detector names themselves, so every consumer inherits identical gating.
package rules

import (
	"github.com/guidekit-labs/guidekit/internal/facts"
	"github.com/guidekit-labs/guidekit/internal/manifest"
)

// Satisfied reports whether the entry's inclusion condition holds for the
// given facts. Entries without a condition are always satisfied. A condition
// naming a detector absent from the facts fails closed: the entry is
// excluded, never an error, so older manifests stay forward-compatible with
// engines that have not learned a new detector yet.
func Satisfied(e manifest.Entry, f facts.Facts) bool {
	if e.When == "" {
		return true
	}
	return f[e.When]
}
