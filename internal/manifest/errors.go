package manifest

import "fmt"

// ParseError reports a structurally malformed manifest document. A failed
// parse never replaces a previously loaded manifest.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return fmt.Sprintf("parsing manifest: %v", e.Err) }

func (e *ParseError) Unwrap() error { return e.Err }

// SchemaError reports manifest bytes the embedded JSON Schema rejects. The
// schema runs before structural parsing on every load, so a shape error
// (wrong value type, typo'd entry field) never produces a half-understood
// manifest. Like a ParseError, it never replaces a previously loaded one.
type SchemaError struct {
	Issues []SchemaIssue
}

func (e *SchemaError) Error() string {
	if len(e.Issues) == 0 {
		return "manifest failed schema validation"
	}
	first := e.Issues[0]
	return fmt.Sprintf("manifest failed schema validation (%d issues): %s: %s", len(e.Issues), first.Path, first.Message)
}

// DuplicateEntryError reports a guide identifier registered under more than
// one category (or twice in the same category). Identifiers are unique across
// the whole manifest so no guide can be double-loaded.
type DuplicateEntryError struct {
	ID             string
	FirstCategory  string
	SecondCategory string
}

func (e *DuplicateEntryError) Error() string {
	return fmt.Sprintf("duplicate entry %q: declared in %q and %q", e.ID, e.FirstCategory, e.SecondCategory)
}
