package policy_test

import (
	"os"
	"path/filepath"
	"testing"

	"go.trai.ch/pim/internal/adapters/policy"
	"go.trai.ch/pim/internal/core/domain"
)

func TestLoad_Success(t *testing.T) {
	content := `
version: "1"
allowedSchemes:
  - https
allowedHosts:
  - pypi.org
denyPackages:
  - left-pad
requirePinned: true
`
	path := filepath.Join(t.TempDir(), domain.DefaultPolicyName)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write policy: %v", err)
	}

	loader := policy.NewLoader()
	p, err := loader.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !p.SchemeAllowed("https") {
		t.Error("https should be allowed")
	}
	if p.SchemeAllowed("http") {
		t.Error("http should not be allowed")
	}
	if !p.HostAllowed("pypi.org") {
		t.Error("pypi.org should be allowed")
	}
	if p.HostAllowed("evil.example.com") {
		t.Error("evil.example.com should not be allowed")
	}
	if !p.Denied("Left_Pad") {
		t.Error("left-pad should be denied regardless of declared spelling")
	}
	if !p.RequirePinned {
		t.Error("requirePinned should be set")
	}
}

func TestLoad_MissingFileYieldsZeroPolicy(t *testing.T) {
	loader := policy.NewLoader()
	p, err := loader.Load(filepath.Join(t.TempDir(), domain.DefaultPolicyName))
	if err != nil {
		t.Fatalf("missing policy file should not be an error, got %v", err)
	}

	// The zero policy restricts nothing.
	if !p.SchemeAllowed("http") || !p.HostAllowed("anywhere.example") || p.Denied("anything") {
		t.Errorf("zero policy should be permissive, got %+v", p)
	}
	if p.RequirePinned {
		t.Error("zero policy should not require pins")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), domain.DefaultPolicyName)
	if err := os.WriteFile(path, []byte("allowedSchemes: {not: [valid"), 0o600); err != nil {
		t.Fatalf("failed to write policy: %v", err)
	}

	loader := policy.NewLoader()
	if _, err := loader.Load(path); err == nil {
		t.Fatal("expected parse error, got nil")
	}
}
