package domain

// Severity classifies a finding.
type Severity string

const (
	// SeverityError marks a structural defect in the manifest.
	SeverityError Severity = "error"
	// SeverityWarning marks something suspicious but acceptable.
	SeverityWarning Severity = "warning"
	// SeverityInfo marks purely informational findings.
	SeverityInfo Severity = "info"
)

// Finding is a single analyzer result tied to a named check.
type Finding struct {
	Check    string            `json:"check"`
	Severity Severity          `json:"severity"`
	Message  string            `json:"message"`
	Meta     map[string]string `json:"meta,omitempty"`
}

// Report is the analyzer output for one manifest: the per-section resolvable
// package counts, the interpreter target, and every finding produced.
type Report struct {
	ManifestPath      string    `json:"manifest"`
	RuntimePackages   int       `json:"runtimePackages"`
	DevPackages       int       `json:"devPackages"`
	InterpreterTarget string    `json:"interpreterTarget,omitempty"`
	Findings          []Finding `json:"findings"`
}

// Add appends a finding to the report.
func (r *Report) Add(f Finding) {
	r.Findings = append(r.Findings, f)
}

// HasErrors reports whether any finding has error severity.
func (r *Report) HasErrors() bool {
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

// CountBySeverity returns the number of findings with the given severity.
func (r *Report) CountBySeverity(sev Severity) int {
	n := 0
	for _, f := range r.Findings {
		if f.Severity == sev {
			n++
		}
	}
	return n
}
