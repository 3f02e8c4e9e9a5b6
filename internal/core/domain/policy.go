package domain

import "strings"

// Policy is an optional set of project rules applied on top of the structural
// checks. The zero value allows everything.
type Policy struct {
	// AllowedSchemes restricts source URL schemes. Empty means any supported
	// scheme.
	AllowedSchemes []string

	// AllowedHosts restricts source hosts. Empty means any host.
	AllowedHosts []string

	// DenyPackages lists package names that must not be declared.
	DenyPackages []string

	// RequirePinned requires every runtime package to pin an exact version.
	RequirePinned bool
}

// SchemeAllowed reports whether the policy permits the given URL scheme.
func (p Policy) SchemeAllowed(scheme string) bool {
	if len(p.AllowedSchemes) == 0 {
		return true
	}
	for _, s := range p.AllowedSchemes {
		if strings.EqualFold(s, scheme) {
			return true
		}
	}
	return false
}

// HostAllowed reports whether the policy permits the given source host.
func (p Policy) HostAllowed(host string) bool {
	if len(p.AllowedHosts) == 0 {
		return true
	}
	for _, h := range p.AllowedHosts {
		if strings.EqualFold(h, host) {
			return true
		}
	}
	return false
}

// Denied reports whether the given package name is deny-listed. Names are
// compared canonically.
func (p Policy) Denied(name string) bool {
	canonical := NormalizeName(name)
	for _, d := range p.DenyPackages {
		if NormalizeName(d) == canonical {
			return true
		}
	}
	return false
}
