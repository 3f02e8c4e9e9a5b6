package domain_test

import (
	"testing"

	"go.trai.ch/pim/internal/core/domain"
	"go.trai.ch/zerr"
)

func mustVersion(t *testing.T, s string) domain.Version {
	t.Helper()
	v, err := domain.ParseVersion(s)
	if err != nil {
		t.Fatalf("ParseVersion(%q) failed: %v", s, err)
	}
	return v
}

func mustConstraint(t *testing.T, s string) domain.Constraint {
	t.Helper()
	c, err := domain.ParseConstraint(s)
	if err != nil {
		t.Fatalf("ParseConstraint(%q) failed: %v", s, err)
	}
	return c
}

func TestParseConstraint_Any(t *testing.T) {
	for _, s := range []string{"*", "", "  "} {
		c, err := domain.ParseConstraint(s)
		if err != nil {
			t.Fatalf("ParseConstraint(%q) failed: %v", s, err)
		}
		if !c.Any() {
			t.Errorf("ParseConstraint(%q) should accept any version", s)
		}
		if c.String() != "*" {
			t.Errorf("any-version constraint should render as *, got %q", c.String())
		}
	}
}

func TestParseConstraint_Invalid(t *testing.T) {
	cases := []string{"1.0", ">=", "==", ">=1.0,", "~=1", ">=1.0.*"}
	for _, s := range cases {
		_, err := domain.ParseConstraint(s)
		if err == nil {
			t.Errorf("ParseConstraint(%q) should fail", s)
			continue
		}

		zErr, ok := err.(*zerr.Error)
		if !ok {
			t.Errorf("expected *zerr.Error for %q, got %T", s, err)
			continue
		}
		meta := zErr.Metadata()
		if constraint, ok := meta["constraint"].(string); !ok || constraint != s {
			t.Errorf("expected metadata constraint=%q, got %v", s, meta["constraint"])
		}
	}
}

func TestConstraint_Check(t *testing.T) {
	tests := []struct {
		constraint string
		version    string
		want       bool
	}{
		{"==2.28.1", "2.28.1", true},
		{"==2.28.1", "2.28.2", false},
		{"!=2.28.1", "2.28.2", true},
		{">=1.21,<2", "1.26.4", true},
		{">=1.21,<2", "2.0", false},
		{">=1.21,<2", "1.20", false},
		{"~=3.11.0", "3.11.4", true},
		{"~=3.11.0", "3.12.0", false},
		{"~=3.11.0", "3.10.9", false},
		{"==3.11.*", "3.11.8", true},
		{"==3.11.*", "3.12.0", false},
		{"!=3.11.*", "3.12.0", true},
		{"===1.0", "1.0", true},
		{"===1.0", "1.0.0", false},
		{">1.0", "1.0", false},
		{"<=1.0", "1.0", true},
		{"*", "0.0.1", true},
	}

	for _, tt := range tests {
		c := mustConstraint(t, tt.constraint)
		v := mustVersion(t, tt.version)
		if got := c.Check(v); got != tt.want {
			t.Errorf("Check(%q, %q) = %v, want %v", tt.constraint, tt.version, got, tt.want)
		}
	}
}

func TestConstraint_Exact(t *testing.T) {
	if pin, ok := mustConstraint(t, "==2.28.1").Exact(); !ok || pin != "2.28.1" {
		t.Errorf("==2.28.1 should be an exact pin, got %q/%v", pin, ok)
	}
	if _, ok := mustConstraint(t, ">=2.28.1").Exact(); ok {
		t.Error(">=2.28.1 should not be an exact pin")
	}
	if _, ok := mustConstraint(t, "==3.11.*").Exact(); ok {
		t.Error("wildcard pin should not count as exact")
	}
	if _, ok := mustConstraint(t, "*").Exact(); ok {
		t.Error("any-version constraint should not be an exact pin")
	}
}

func TestConstraint_Contradiction(t *testing.T) {
	contradictory := []string{
		"==1.0,==2.0",
		">=2.0,<1.0",
		">2.0,<2.0",
		">1.0,<=0.9",
		"==3.0,<2.0",
	}
	for _, s := range contradictory {
		c := mustConstraint(t, s)
		if _, ok := c.Contradiction(); !ok {
			t.Errorf("Contradiction(%q) should be detected", s)
		}
	}

	satisfiable := []string{
		"==1.0,==1.0.0",
		">=1.0,<2.0",
		">=1.0,<=1.0",
		"==1.5,>=1.0",
		"*",
		"!=1.0,!=2.0",
	}
	for _, s := range satisfiable {
		c := mustConstraint(t, s)
		if reason, ok := c.Contradiction(); ok {
			t.Errorf("Contradiction(%q) = %q, want none", s, reason)
		}
	}
}
