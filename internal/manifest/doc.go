// Package manifest handles parsing, validation, and ownership of the guides
// manifest (guides.yaml). The manifest is the single authoritative list of
// guide documents, grouped into ordered categories; every consumer resolves
// its load order from the structures this package produces. A parsed Manifest
// is immutable; reloads swap the whole value, never mutate it in place.
package manifest
