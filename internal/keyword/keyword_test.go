package keyword

import "testing"

func TestLookupCaseInsensitive(t *testing.T) {
	for _, text := range []string{"select", "SELECT", "Select", "sElEcT"} {
		info, ok := Lookup(text)
		if !ok {
			t.Fatalf("Lookup(%q): not found", text)
		}
		if info.Name != "select" {
			t.Fatalf("Lookup(%q).Name = %q, want select", text, info.Name)
		}
		if info.Category != Reserved {
			t.Fatalf("Lookup(%q).Category = %v, want Reserved", text, info.Category)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, ok := Lookup("frobnicate"); ok {
		t.Fatalf("Lookup(frobnicate) unexpectedly found a keyword")
	}
}

func TestLookupStableKind(t *testing.T) {
	a, _ := Lookup("select")
	b, _ := Lookup("select")
	if a.Kind != b.Kind {
		t.Fatalf("Kind not stable across calls: %d != %d", a.Kind, b.Kind)
	}
}

func TestNcharIsKnown(t *testing.T) {
	if _, ok := Lookup("nchar"); !ok {
		t.Fatal("nchar must be a recognized keyword for the N'...' opener rule")
	}
}
