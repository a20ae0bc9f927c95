package common

import "testing"

func TestParseRole_Valid(t *testing.T) {
	for _, r := range Roles() {
		parsed, ok := ParseRole(string(r))
		if !ok {
			t.Fatalf("expected %q to parse", r)
		}
		if parsed != r {
			t.Fatalf("expected %q, got %q", r, parsed)
		}
	}
}

func TestParseRole_Invalid(t *testing.T) {
	for _, s := range []string{"", "superuser", "Student", "site manager"} {
		if _, ok := ParseRole(s); ok {
			t.Fatalf("expected %q to be rejected", s)
		}
	}
}
