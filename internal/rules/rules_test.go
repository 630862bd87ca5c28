package rules

import (
	"testing"

	"github.com/guidekit-labs/guidekit/internal/facts"
	"github.com/guidekit-labs/guidekit/internal/manifest"
)

func TestSatisfiedUnconditional(t *testing.T) {
	e := manifest.Entry{ID: "wcag/a.md"}
	if !Satisfied(e, nil) {
		t.Error("unconditional entry with nil facts = false, want true")
	}
	if !Satisfied(e, facts.Facts{"fireTv": false}) {
		t.Error("unconditional entry = false, want true")
	}
}

func TestSatisfiedConditionMet(t *testing.T) {
	e := manifest.Entry{ID: "patterns/fire-tv.md", When: "fireTv"}
	if !Satisfied(e, facts.Facts{"fireTv": true}) {
		t.Error("fireTv=true = false, want true")
	}
}

func TestSatisfiedFailsClosed(t *testing.T) {
	e := manifest.Entry{ID: "patterns/fire-tv.md", When: "fireTv"}

	if Satisfied(e, facts.Facts{}) {
		t.Error("unknown detector = true, want false (fail closed)")
	}
	if Satisfied(e, facts.Facts{"fireTv": false}) {
		t.Error("fireTv=false = true, want false")
	}
	if Satisfied(e, nil) {
		t.Error("nil facts = true, want false")
	}
}
