package resolver

import (
	"reflect"
	"sync"
	"testing"

	"github.com/guidekit-labs/guidekit/internal/facts"
)

func TestCacheMatchesDirectResolve(t *testing.T) {
	m := mustParse(t, `wcag:
  - a.md
  - "!b.md"
patterns:
  - path: c.md
    when: fireTv
`)
	c := NewCache()

	for _, f := range []facts.Facts{
		nil,
		{},
		{"fireTv": true},
		{"fireTv": false},
		{"fireTv": true, "androidTv": true},
	} {
		direct := Resolve(m, f)
		cached := c.Resolve(m, f)
		if !reflect.DeepEqual(cached, direct) {
			t.Errorf("facts %v: cached = %v, direct = %v", f, cached, direct)
		}
		// Second call must serve the identical set.
		again := c.Resolve(m, f)
		if !reflect.DeepEqual(again, direct) {
			t.Errorf("facts %v: second cached call = %v, want %v", f, again, direct)
		}
	}
}

func TestCacheHitsOnRepeatedFacts(t *testing.T) {
	m := mustParse(t, "wcag:\n  - a.md\n")
	c := NewCache()

	// Same content, different map instances and insertion order.
	c.Resolve(m, facts.Facts{"x": true, "y": false})
	c.Resolve(m, facts.Facts{"y": false, "x": true})

	hits, misses := c.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("hits, misses = %d, %d, want 1, 1", hits, misses)
	}
}

func TestCacheResultMutationDoesNotPoisonLaterHits(t *testing.T) {
	m := mustParse(t, "wcag:\n  - a.md\n  - b.md\n")
	c := NewCache()

	first := c.Resolve(m, nil)
	first[0] = "mangled.md"

	got := c.Resolve(m, nil)
	want := []string{"a.md", "b.md"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("after caller mutation: Resolve = %v, want %v", got, want)
	}
}

func TestCacheInvalidatesOnNewChecksum(t *testing.T) {
	m1 := mustParse(t, "wcag:\n  - a.md\n")
	m2 := mustParse(t, "wcag:\n  - a.md\n  - b.md\n")
	c := NewCache()

	c.Resolve(m1, nil)
	if c.Len() != 1 {
		t.Fatalf("Len = %d, want 1", c.Len())
	}

	got := c.Resolve(m2, nil)
	want := []string{"a.md", "b.md"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("after reload: Resolve = %v, want %v", got, want)
	}
	// Old manifest's sets are gone wholesale.
	if c.Len() != 1 {
		t.Errorf("Len after invalidation = %d, want 1", c.Len())
	}
}

func TestCacheConcurrentResolvers(t *testing.T) {
	m := mustParse(t, `wcag:
  - a.md
patterns:
  - path: c.md
    when: fireTv
`)
	c := NewCache()
	want := Resolve(m, facts.Facts{"fireTv": true})

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := c.Resolve(m, facts.Facts{"fireTv": true})
			if !reflect.DeepEqual(got, want) {
				t.Errorf("concurrent Resolve = %v, want %v", got, want)
			}
		}()
	}
	wg.Wait()
}
