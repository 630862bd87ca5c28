package facts

import "testing"

func TestFingerprintOrderIndependent(t *testing.T) {
	a := Facts{"fireTv": true, "androidTv": false, "touch": true}
	b := Facts{"touch": true, "fireTv": true, "androidTv": false}

	if Fingerprint(a) != Fingerprint(b) {
		t.Error("identical facts produced different fingerprints")
	}
}

func TestFingerprintDistinguishesValues(t *testing.T) {
	a := Facts{"fireTv": true}
	b := Facts{"fireTv": false}
	c := Facts{}

	if Fingerprint(a) == Fingerprint(b) {
		t.Error("fireTv=true and fireTv=false fingerprint identically")
	}
	if Fingerprint(b) == Fingerprint(c) {
		t.Error("fireTv=false and empty facts fingerprint identically")
	}
}

func TestParsePairs(t *testing.T) {
	f, err := ParsePairs([]string{"fireTv=true", "androidTv=false", "touch"})
	if err != nil {
		t.Fatalf("ParsePairs: %v", err)
	}
	if !f["fireTv"] {
		t.Error("fireTv = false, want true")
	}
	if f["androidTv"] {
		t.Error("androidTv = true, want false")
	}
	if !f["touch"] {
		t.Error("bare name touch = false, want true")
	}
}

func TestParsePairsRejectsBadInput(t *testing.T) {
	for _, bad := range []string{"=true", "fireTv=maybe", " =1"} {
		if _, err := ParsePairs([]string{bad}); err == nil {
			t.Errorf("ParsePairs(%q) = nil error, want error", bad)
		}
	}
}

func TestMerge(t *testing.T) {
	base := Facts{"fireTv": false, "touch": true}
	over := Facts{"fireTv": true}

	got := Merge(base, over)
	if !got["fireTv"] {
		t.Error("overlay did not win: fireTv = false, want true")
	}
	if !got["touch"] {
		t.Error("base key lost: touch = false, want true")
	}
	if base["fireTv"] {
		t.Error("Merge modified its input")
	}
}
