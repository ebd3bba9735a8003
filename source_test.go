package quadsplit

import (
	"errors"
	"testing"
)

// TestSources_RegisterLookup verifies registration, lookup, and name order.
func TestSources_RegisterLookup(t *testing.T) {
	s := NewSources()
	lenna := uniformPixmap(4, 4, Red)
	goldhill := uniformPixmap(8, 8, Blue)

	s.Register("lenna", lenna)
	s.Register("goldhill", goldhill)

	if got, ok := s.Lookup("lenna"); !ok || got != lenna {
		t.Error("Lookup(lenna) did not return the registered buffer")
	}
	if _, ok := s.Lookup("missing"); ok {
		t.Error("Lookup(missing) reported a buffer")
	}

	names := s.Names()
	if len(names) != 2 || names[0] != "lenna" || names[1] != "goldhill" {
		t.Errorf("Names() = %v, want [lenna goldhill]", names)
	}
}

// TestSources_ReplaceKeepsOrder verifies re-registering a name swaps the
// buffer without duplicating the name.
func TestSources_ReplaceKeepsOrder(t *testing.T) {
	s := NewSources()
	s.Register("a", uniformPixmap(2, 2, Red))
	s.Register("b", uniformPixmap(2, 2, Blue))

	replacement := uniformPixmap(4, 4, Green)
	s.Register("a", replacement)

	if got, _ := s.Lookup("a"); got != replacement {
		t.Error("re-registration did not replace the buffer")
	}
	if names := s.Names(); len(names) != 2 || names[0] != "a" {
		t.Errorf("Names() = %v, want [a b]", names)
	}
}

// TestSelectSource verifies switching sources discards the old decomposition
// wholesale and restarts from the new buffer's root.
func TestSelectSource(t *testing.T) {
	s := NewSources()
	first := noisePixmap(16, 16, 2)
	second := uniformPixmap(6, 10, Green)
	s.Register("first", first)
	s.Register("second", second)

	eng := New()
	if err := eng.SelectSource(s, "first"); err != nil {
		t.Fatalf("SelectSource() error = %v", err)
	}
	for i := 0; i < 5; i++ {
		if _, err := eng.Step(); err != nil {
			t.Fatalf("Step() error = %v", err)
		}
	}

	if err := eng.SelectSource(s, "second"); err != nil {
		t.Fatalf("SelectSource() error = %v", err)
	}
	frags := eng.Fragments()
	if len(frags) != 1 {
		t.Fatalf("count after switch = %d, want 1", len(frags))
	}
	if frags[0].Region != second.Bounds() {
		t.Errorf("root region = %v, want %v", frags[0].Region, second.Bounds())
	}
	checkPartition(t, second, frags)
}

// TestSelectSource_Unknown verifies an unknown name fails with
// ErrUnknownSource and leaves the current decomposition untouched.
func TestSelectSource_Unknown(t *testing.T) {
	s := NewSources()
	s.Register("only", uniformPixmap(4, 4, White))

	eng := New()
	if err := eng.SelectSource(s, "only"); err != nil {
		t.Fatalf("SelectSource() error = %v", err)
	}
	if _, err := eng.Step(); err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	before := eng.Len()

	if err := eng.SelectSource(s, "nope"); !errors.Is(err, ErrUnknownSource) {
		t.Fatalf("SelectSource(nope) error = %v, want ErrUnknownSource", err)
	}
	if eng.Len() != before {
		t.Error("failed SelectSource mutated the decomposition")
	}
}
