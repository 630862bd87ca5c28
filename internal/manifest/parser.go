package manifest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"go.yaml.in/yaml/v3"
)

// disabledPrefix marks a string-form entry as listed-but-excluded, the
// manifest's equivalent of commenting a guide out without losing track of it.
const disabledPrefix = "!"

// metaKey is the reserved map-valued top-level key. Every other top-level
// key is a category, including ones this tool has never heard of.
const metaKey = "meta"

// entryNode is the mapping form of an entry line.
type entryNode struct {
	Path     string `yaml:"path"`
	When     string `yaml:"when"`
	Disabled bool   `yaml:"disabled"`
}

// Parse parses raw manifest YAML into an immutable Manifest.
//
// The document's top-level shape is {categoryName: entryLines}. Category
// order and entry order are preserved verbatim; they encode load priority.
// An entry line is either a scalar identifier ("wcag/a.md", or "!wcag/b.md"
// for a disabled entry) or a mapping with path/when/disabled fields.
//
// Parse rejects duplicate category names, duplicate identifiers anywhere in
// the document (DuplicateEntryError), and entries with no identifier.
// Unknown categories are valid and preserved.
func Parse(data []byte) (*Manifest, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Err: err}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, &ParseError{Err: fmt.Errorf("empty document")}
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, &ParseError{Err: fmt.Errorf("top level must be a mapping of categories, got %s", nodeKind(root))}
	}

	m := &Manifest{}
	seenMeta := false
	seenCategories := make(map[string]bool)
	owners := make(map[string]string) // entry ID -> category that declared it

	// Mapping nodes store key/value pairs as adjacent Content elements.
	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode := root.Content[i]
		valNode := root.Content[i+1]
		name := keyNode.Value

		if name == metaKey && valNode.Kind == yaml.MappingNode {
			if seenMeta {
				return nil, &ParseError{Err: fmt.Errorf("duplicate meta mapping (line %d)", keyNode.Line)}
			}
			seenMeta = true
			if err := valNode.Decode(&m.Meta); err != nil {
				return nil, &ParseError{Err: fmt.Errorf("decoding meta: %w", err)}
			}
			continue
		}

		if seenCategories[name] {
			return nil, &ParseError{Err: fmt.Errorf("duplicate category %q (line %d)", name, keyNode.Line)}
		}
		seenCategories[name] = true

		if valNode.Kind != yaml.SequenceNode {
			return nil, &ParseError{Err: fmt.Errorf("category %q must be a list of entries, got %s (line %d)", name, nodeKind(valNode), valNode.Line)}
		}

		cat := Category{Name: name}
		for _, item := range valNode.Content {
			entry, err := parseEntry(item, name)
			if err != nil {
				return nil, &ParseError{Err: err}
			}
			if first, dup := owners[entry.ID]; dup {
				return nil, &DuplicateEntryError{ID: entry.ID, FirstCategory: first, SecondCategory: name}
			}
			owners[entry.ID] = name
			cat.Entries = append(cat.Entries, entry)
		}
		m.Categories = append(m.Categories, cat)
	}

	sum := sha256.Sum256(data)
	m.Checksum = hex.EncodeToString(sum[:])
	return m, nil
}

// parseEntry parses a single entry line in either its scalar or mapping form.
func parseEntry(node *yaml.Node, category string) (Entry, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		id := strings.TrimSpace(node.Value)
		disabled := false
		if strings.HasPrefix(id, disabledPrefix) {
			disabled = true
			id = strings.TrimSpace(strings.TrimPrefix(id, disabledPrefix))
		}
		if id == "" {
			return Entry{}, fmt.Errorf("category %q: entry with no identifier (line %d)", category, node.Line)
		}
		return Entry{ID: normalizeID(id), Category: category, Disabled: disabled}, nil

	case yaml.MappingNode:
		var en entryNode
		if err := node.Decode(&en); err != nil {
			return Entry{}, fmt.Errorf("category %q: decoding entry (line %d): %w", category, node.Line, err)
		}
		if strings.TrimSpace(en.Path) == "" {
			return Entry{}, fmt.Errorf("category %q: entry with no identifier (line %d)", category, node.Line)
		}
		return Entry{
			ID:       normalizeID(strings.TrimSpace(en.Path)),
			Category: category,
			Disabled: en.Disabled,
			When:     en.When,
		}, nil

	default:
		return Entry{}, fmt.Errorf("category %q: entry must be a string or a mapping, got %s (line %d)", category, nodeKind(node), node.Line)
	}
}

// normalizeID normalizes path separators to "/". Identifiers are otherwise
// compared byte-exact: the manifest spelling is authoritative, and no case
// folding is applied.
func normalizeID(id string) string {
	return strings.ReplaceAll(id, "\\", "/")
}

// CheckRequires verifies the manifest's meta.requires constraint against the
// tool version. Non-semver tool versions (e.g., "dev" builds) skip the check.
func (m *Manifest) CheckRequires(toolVersion string) error {
	if m.Meta.Requires == "" {
		return nil
	}
	c, err := semver.NewConstraint(m.Meta.Requires)
	if err != nil {
		return &ParseError{Err: fmt.Errorf("invalid meta.requires constraint %q: %w", m.Meta.Requires, err)}
	}
	v, err := semver.NewVersion(strings.TrimPrefix(toolVersion, "v"))
	if err != nil {
		return nil
	}
	if !c.Check(v) {
		return fmt.Errorf("manifest requires tool version %q, running %s", m.Meta.Requires, toolVersion)
	}
	return nil
}

// nodeKind names a YAML node kind for error messages.
func nodeKind(n *yaml.Node) string {
	switch n.Kind {
	case yaml.ScalarNode:
		return "scalar"
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "list"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown node"
	}
}
