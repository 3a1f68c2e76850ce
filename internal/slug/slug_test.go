package slug

import "testing"

func TestMake(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"BOSS", "boss"},
		{"BD-2 Blues Driver", "bd-2-blues-driver"},
		{"Noise Space XV", "noise-space-xv"},
		{"  spaced   out  ", "spaced-out"},
		{"Weird!@#$%^&*()Chars", "weirdchars"},
		{"many---hyphens - and -- runs", "many-hyphens-and-runs"},
		{"Zażółć gęślą", "za-gl"},
		{"", ""},
		{"---", ""},
	}
	for _, c := range cases {
		if got := Make(c.in); got != c.want {
			t.Errorf("Make(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestMake_Idempotent(t *testing.T) {
	inputs := []string{"BOSS BD-2", "Hello, World!", "already-a-slug", "  x  y  "}
	for _, in := range inputs {
		once := Make(in)
		if twice := Make(once); twice != once {
			t.Errorf("Make not idempotent for %q: %q != %q", in, twice, once)
		}
	}
}

func TestMake_OutputAlphabet(t *testing.T) {
	out := Make("  Mixed CASE & punctuation!! --- 42  ")
	for _, r := range out {
		ok := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
		if !ok {
			t.Fatalf("output %q contains invalid rune %q", out, r)
		}
	}
	if len(out) > 0 && (out[0] == '-' || out[len(out)-1] == '-') {
		t.Errorf("output %q has a leading or trailing hyphen", out)
	}
}

func TestForGear(t *testing.T) {
	got := ForGear("BOSS", "BD-2 Blues Driver")
	if got != "boss-bd-2-blues-driver" {
		t.Errorf("ForGear = %q, want boss-bd-2-blues-driver", got)
	}
}

func TestForDated(t *testing.T) {
	got := ForDated("2025-10-11", "Noise Space XV")
	if got != "2025-10-11-noise-space-xv" {
		t.Errorf("ForDated = %q, want 2025-10-11-noise-space-xv", got)
	}
}
