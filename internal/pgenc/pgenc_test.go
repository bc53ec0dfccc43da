package pgenc

import "testing"

func TestDefaultIsUTF8AndNotClientOnly(t *testing.T) {
	if !Default.ServerIsUTF8() {
		t.Fatal("expected default provider to report UTF8 server encoding")
	}
	if Default.ClientOnlyEncoding() {
		t.Fatal("expected default provider to report a non-client-only client encoding")
	}
}

func TestIsClientOnly(t *testing.T) {
	cases := map[string]bool{
		"SJIS":   true,
		"GBK":    true,
		"UTF8":   false,
		"LATIN1": false,
	}
	for name, want := range cases {
		if got := isClientOnly(name); got != want {
			t.Errorf("isClientOnly(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestStaticOverridesDefault(t *testing.T) {
	s := Static{ServerUTF8: false, ClientOnly: true}
	if s.ServerIsUTF8() {
		t.Fatal("expected ServerIsUTF8 false")
	}
	if !s.ClientOnlyEncoding() {
		t.Fatal("expected ClientOnlyEncoding true")
	}
}
