package envutil

import "testing"

func TestString(t *testing.T) {
	t.Setenv("ENVUTIL_S", "  value ")
	if got := String("ENVUTIL_S", "def"); got != "value" {
		t.Fatalf("String = %q", got)
	}
	t.Setenv("ENVUTIL_S", "")
	if got := String("ENVUTIL_S", "def"); got != "def" {
		t.Fatalf("String(empty) = %q", got)
	}
	if got := String("ENVUTIL_MISSING_S", "def"); got != "def" {
		t.Fatalf("String(missing) = %q", got)
	}
}

func TestInt(t *testing.T) {
	t.Setenv("ENVUTIL_I", "42")
	if got := Int("ENVUTIL_I", 1); got != 42 {
		t.Fatalf("Int = %d", got)
	}
	t.Setenv("ENVUTIL_I", "nope")
	if got := Int("ENVUTIL_I", 1); got != 1 {
		t.Fatalf("Int(bad) = %d", got)
	}
}

func TestBool(t *testing.T) {
	cases := map[string]bool{"true": true, "1": true, "on": true, "false": false, "0": false, "garbage": true}
	for raw, want := range cases {
		t.Setenv("ENVUTIL_B", raw)
		if got := Bool("ENVUTIL_B", true); got != want {
			t.Fatalf("Bool(%q) = %v, want %v", raw, got, want)
		}
	}
}
