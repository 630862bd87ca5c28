package manifest

// Entry is one guide reference within the manifest.
type Entry struct {
	// ID is the guide identifier: a slash-separated path relative to the
	// guides root (e.g., "wcag/focus-order.md").
	ID string
	// Category is the name of the category the entry was declared under.
	Category string
	// Disabled marks an entry that is listed but excluded from resolution.
	// Disabled entries still count for drift checks and audit output.
	Disabled bool
	// When names a detector that must report true for the entry to be
	// included. Empty means unconditional.
	When string
}

// Category is a named, ordered group of entries. Entry order encodes load
// priority and is preserved verbatim from the manifest document.
type Category struct {
	Name    string
	Entries []Entry
}

// Meta holds the reserved map-valued "meta" key of the manifest.
type Meta struct {
	// Version is an informational manifest version string.
	Version string `yaml:"version"`
	// Requires is an optional semver constraint on the tool version
	// (e.g., ">= 1.2.0"). Both consumers refuse a manifest they are too
	// old for, so neither resolves from a document it half-understands.
	Requires string `yaml:"requires"`
}

// Manifest is the parsed, immutable guides manifest. Categories appear in
// document order; entries appear in declared order within each category.
type Manifest struct {
	Categories []Category
	Meta       Meta
	// Checksum is the hex-encoded SHA-256 of the source bytes. It keys
	// resolution caches and identifies the manifest across consumers.
	Checksum string
}

// Entries returns all entries flattened in declared category/entry order.
func (m *Manifest) Entries() []Entry {
	var out []Entry
	for _, c := range m.Categories {
		out = append(out, c.Entries...)
	}
	return out
}

// DisabledCount returns the number of disabled entries across all categories.
func (m *Manifest) DisabledCount() int {
	n := 0
	for _, c := range m.Categories {
		for _, e := range c.Entries {
			if e.Disabled {
				n++
			}
		}
	}
	return n
}

// EntryCount returns the total number of entries, enabled and disabled.
func (m *Manifest) EntryCount() int {
	n := 0
	for _, c := range m.Categories {
		n += len(c.Entries)
	}
	return n
}
