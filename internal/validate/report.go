package validate

import "github.com/guidekit-labs/guidekit/internal/manifest"

// Kind classifies a drift record.
type Kind string

const (
	// KindMissing marks an enabled entry whose file does not exist or is
	// not readable under the guides root.
	KindMissing Kind = "missing"
	// KindOrphaned marks a guide file on disk referenced by no entry.
	// Orphans are warnings, not failures.
	KindOrphaned Kind = "orphaned"
	// KindDuplicate marks an identifier declared more than once. Parsing
	// rejects duplicates outright; this kind exists so CI consumers
	// validating a raw document get the violation as report data too.
	KindDuplicate Kind = "duplicate"
)

// Record is a single drift discrepancy.
type Record struct {
	Kind     Kind   `json:"kind"`
	ID       string `json:"id"`
	Category string `json:"category,omitempty"`
	Detail   string `json:"detail,omitempty"`
}

// Report is the full result of one validation pass. It is produced fresh on
// every pass and never persisted by the registry itself.
type Report struct {
	Records []Record `json:"records"`
}

// Failed reports whether the report contains hard failures (missing or
// duplicate records). A CI caller maps this to a non-zero exit; a runtime
// caller may log and proceed with whatever resolves.
func (r *Report) Failed() bool {
	for _, rec := range r.Records {
		if rec.Kind == KindMissing || rec.Kind == KindDuplicate {
			return true
		}
	}
	return false
}

// Count returns the number of records of the given kind.
func (r *Report) Count(k Kind) int {
	n := 0
	for _, rec := range r.Records {
		if rec.Kind == k {
			n++
		}
	}
	return n
}

// DuplicateReport builds a report carrying a parse-time duplicate violation,
// for CI consumers that want drift output even when the document is rejected.
func DuplicateReport(dup *manifest.DuplicateEntryError) *Report {
	return &Report{Records: []Record{{
		Kind:     KindDuplicate,
		ID:       dup.ID,
		Category: dup.SecondCategory,
		Detail:   "also declared in " + dup.FirstCategory,
	}}}
}
