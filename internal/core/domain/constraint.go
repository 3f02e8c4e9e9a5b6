package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// Op is a version constraint operator.
type Op string

const (
	OpCompatible  Op = "~="
	OpEqual       Op = "=="
	OpNotEqual    Op = "!="
	OpLessEqual   Op = "<="
	OpGreaterEq   Op = ">="
	OpLess        Op = "<"
	OpGreater     Op = ">"
	OpArbitraryEq Op = "==="
)

// clauseOps is ordered longest-first so that "===" is not read as "==".
var clauseOps = []Op{OpArbitraryEq, OpCompatible, OpEqual, OpNotEqual, OpLessEqual, OpGreaterEq, OpLess, OpGreater}

// Clause is a single operator/version pair within a constraint.
type Clause struct {
	Op      Op
	Version string

	// prefixMatch is set for wildcard clauses like "==3.11.*".
	prefixMatch bool
	parsed      Version
}

// Constraint restricts which releases of a dependency are acceptable.
// The zero value (and "*") accepts any version.
type Constraint struct {
	raw     string
	clauses []Clause
}

// ParseConstraint parses a version constraint: "*" or empty for any version,
// otherwise a comma-separated list of operator/version clauses.
func ParseConstraint(s string) (Constraint, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || trimmed == "*" {
		return Constraint{raw: trimmed}, nil
	}

	c := Constraint{raw: trimmed}
	for part := range strings.SplitSeq(trimmed, ",") {
		clause, err := parseClause(strings.TrimSpace(part))
		if err != nil {
			return Constraint{}, zerr.With(err, "constraint", s)
		}
		c.clauses = append(c.clauses, clause)
	}
	return c, nil
}

func parseClause(s string) (Clause, error) {
	if s == "" {
		return Clause{}, zerr.With(ErrInvalidConstraint, "reason", "empty clause")
	}

	var op Op
	for _, candidate := range clauseOps {
		if strings.HasPrefix(s, string(candidate)) {
			op = candidate
			break
		}
	}
	if op == "" {
		return Clause{}, zerr.With(ErrInvalidConstraint, "reason", "missing operator")
	}

	version := strings.TrimSpace(strings.TrimPrefix(s, string(op)))
	if version == "" {
		return Clause{}, zerr.With(ErrInvalidConstraint, "reason", "missing version")
	}

	clause := Clause{Op: op, Version: version}

	// Arbitrary equality compares the raw string, nothing to parse.
	if op == OpArbitraryEq {
		return clause, nil
	}

	if trimmed, ok := strings.CutSuffix(version, ".*"); ok {
		if op != OpEqual && op != OpNotEqual {
			return Clause{}, zerr.With(ErrInvalidConstraint, "reason", "wildcard suffix requires == or !=")
		}
		clause.prefixMatch = true
		version = trimmed
	}

	parsed, err := ParseVersion(version)
	if err != nil {
		return Clause{}, err
	}

	if op == OpCompatible && len(parsed.Release) < 2 {
		return Clause{}, zerr.With(ErrInvalidConstraint, "reason", "~= requires at least two release segments")
	}

	clause.parsed = parsed
	return clause, nil
}

// Any reports whether the constraint accepts every version.
func (c Constraint) Any() bool {
	return len(c.clauses) == 0
}

// String returns the constraint as declared ("*" for the any-version form).
func (c Constraint) String() string {
	if c.Any() {
		return "*"
	}
	return c.raw
}

// Clauses returns the parsed clauses.
func (c Constraint) Clauses() []Clause {
	return c.clauses
}

// Check reports whether the given version satisfies every clause.
func (c Constraint) Check(v Version) bool {
	for _, clause := range c.clauses {
		if !clause.check(v) {
			return false
		}
	}
	return true
}

func (cl Clause) check(v Version) bool {
	switch cl.Op {
	case OpArbitraryEq:
		return strings.EqualFold(strings.TrimSpace(cl.Version), v.String())
	case OpEqual:
		if cl.prefixMatch {
			return v.Epoch == cl.parsed.Epoch && v.ReleasePrefixMatch(cl.parsed.Release)
		}
		return v.Compare(cl.parsed) == 0
	case OpNotEqual:
		if cl.prefixMatch {
			return v.Epoch != cl.parsed.Epoch || !v.ReleasePrefixMatch(cl.parsed.Release)
		}
		return v.Compare(cl.parsed) != 0
	case OpLessEqual:
		return v.Compare(cl.parsed) <= 0
	case OpGreaterEq:
		return v.Compare(cl.parsed) >= 0
	case OpLess:
		return v.Compare(cl.parsed) < 0
	case OpGreater:
		return v.Compare(cl.parsed) > 0
	case OpCompatible:
		// ~=X.Y.Z means >=X.Y.Z, ==X.Y.*
		if v.Compare(cl.parsed) < 0 {
			return false
		}
		prefix := cl.parsed.Release[:len(cl.parsed.Release)-1]
		return v.Epoch == cl.parsed.Epoch && v.ReleasePrefixMatch(prefix)
	default:
		return false
	}
}

// Exact returns the pinned version when the constraint pins a single release
// via == or ===.
func (c Constraint) Exact() (string, bool) {
	if len(c.clauses) != 1 {
		return "", false
	}
	cl := c.clauses[0]
	if cl.prefixMatch {
		return "", false
	}
	if cl.Op == OpEqual || cl.Op == OpArbitraryEq {
		return cl.Version, true
	}
	return "", false
}

// Contradiction reports an obviously unsatisfiable clause pair, if any:
// two different exact pins, or an empty ordered range.
func (c Constraint) Contradiction() (string, bool) {
	for i, a := range c.clauses {
		for _, b := range c.clauses[i+1:] {
			if reason, ok := contradicts(a, b); ok {
				return reason, true
			}
		}
	}
	return "", false
}

func contradicts(a, b Clause) (string, bool) {
	if a.Op == OpArbitraryEq || b.Op == OpArbitraryEq || a.prefixMatch || b.prefixMatch {
		return "", false
	}

	switch {
	case a.Op == OpEqual && b.Op == OpEqual:
		if a.parsed.Compare(b.parsed) != 0 {
			return "conflicting exact pins " + a.Version + " and " + b.Version, true
		}
	case isLower(a.Op) && isUpper(b.Op):
		return emptyRange(b, a)
	case isUpper(a.Op) && isLower(b.Op):
		return emptyRange(a, b)
	case a.Op == OpEqual && isBound(b.Op):
		if !b.check(a.parsed) {
			return "pin " + a.Version + " excluded by " + string(b.Op) + b.Version, true
		}
	case b.Op == OpEqual && isBound(a.Op):
		if !a.check(b.parsed) {
			return "pin " + b.Version + " excluded by " + string(a.Op) + a.Version, true
		}
	}
	return "", false
}

// emptyRange reports whether an upper bound and a lower bound leave no
// satisfiable versions.
func emptyRange(upper, lower Clause) (string, bool) {
	c := lower.parsed.Compare(upper.parsed)
	if c > 0 {
		return "empty range " + string(lower.Op) + lower.Version + ", " + string(upper.Op) + upper.Version, true
	}
	if c == 0 && (lower.Op == OpGreater || upper.Op == OpLess) {
		return "empty range " + string(lower.Op) + lower.Version + ", " + string(upper.Op) + upper.Version, true
	}
	return "", false
}

func isLower(op Op) bool {
	return op == OpGreater || op == OpGreaterEq
}

func isUpper(op Op) bool {
	return op == OpLess || op == OpLessEqual
}

func isBound(op Op) bool {
	return isLower(op) || isUpper(op)
}
