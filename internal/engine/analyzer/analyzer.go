// Package analyzer implements the structural checks over a loaded manifest.
package analyzer

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"go.trai.ch/pim/internal/core/domain"
	"go.trai.ch/pim/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

// Check identifiers, one per structural property.
const (
	CheckSourceURL    = "source-url"
	CheckSourceNames  = "source-names"
	CheckConstraints  = "constraints"
	CheckIndexRefs    = "index-refs"
	CheckInterpreter  = "interpreter"
	CheckOverlap      = "overlap"
	CheckRegistry     = "registry"
	CheckSnapshot     = "snapshot"
	CheckPolicyScheme = "policy-scheme"
	CheckPolicyHost   = "policy-host"
	CheckPolicyDeny   = "policy-deny"
	CheckPolicyPinned = "policy-pinned"
)

const defaultProbeConcurrency = 8

// Options configures a single analyzer run.
type Options struct {
	// Policy is applied on top of the structural checks.
	Policy domain.Policy

	// Remote enables the registry name-existence probe.
	Remote bool

	// ProbeConcurrency bounds the probe fan-out. Zero means the default.
	ProbeConcurrency int
}

// Analyzer runs the structural checks over a manifest and produces a report.
type Analyzer struct {
	registry  ports.Registry
	telemetry ports.Telemetry
}

// New creates a new Analyzer.
func New(registry ports.Registry, telemetry ports.Telemetry) *Analyzer {
	return &Analyzer{
		registry:  registry,
		telemetry: telemetry,
	}
}

// Run executes every check against the manifest. Findings land in the report;
// the returned error is reserved for the run itself failing (e.g. canceled
// context during a probe).
func (a *Analyzer) Run(ctx context.Context, m *domain.Manifest, opts Options) (*domain.Report, error) {
	report := &domain.Report{
		ManifestPath:      m.Path,
		RuntimePackages:   m.Packages.Len(),
		DevPackages:       m.DevPackages.Len(),
		InterpreterTarget: m.Requires.Target(),
	}

	a.checkSources(m, opts.Policy, report)
	a.checkSet(m, m.Packages, opts.Policy, report)
	a.checkSet(m, m.DevPackages, opts.Policy, report)
	a.checkInterpreter(m, report)
	a.checkOverlap(m, report)

	if opts.Remote {
		if err := a.probe(ctx, m, opts, report); err != nil {
			return nil, err
		}
	}

	return report, nil
}

// checkSources validates every registry reference: URL shape, scheme, name
// uniqueness, TLS posture, and the policy's scheme and host rules.
func (a *Analyzer) checkSources(m *domain.Manifest, policy domain.Policy, report *domain.Report) {
	seen := make(map[string]bool)

	for _, src := range m.Sources {
		if src.Name != "" && seen[src.Name] {
			report.Add(domain.Finding{
				Check:    CheckSourceNames,
				Severity: domain.SeverityError,
				Message:  "duplicate source name",
				Meta:     map[string]string{"source": src.Name},
			})
		}
		seen[src.Name] = true

		if err := src.Validate(); err != nil {
			report.Add(domain.Finding{
				Check:    CheckSourceURL,
				Severity: domain.SeverityError,
				Message:  err.Error(),
				Meta:     map[string]string{"source": src.Name, "url": src.URL},
			})
			continue
		}

		u, _ := url.Parse(src.URL)

		if u.Scheme == "http" {
			report.Add(domain.Finding{
				Check:    CheckSourceURL,
				Severity: domain.SeverityWarning,
				Message:  "source uses plain http",
				Meta:     map[string]string{"source": src.Name, "url": src.URL},
			})
		}
		if !src.VerifySSL && u.Scheme == "https" {
			report.Add(domain.Finding{
				Check:    CheckSourceURL,
				Severity: domain.SeverityWarning,
				Message:  "TLS verification disabled for https source",
				Meta:     map[string]string{"source": src.Name},
			})
		}

		if !policy.SchemeAllowed(u.Scheme) {
			report.Add(domain.Finding{
				Check:    CheckPolicyScheme,
				Severity: domain.SeverityError,
				Message:  "source scheme not allowed by policy",
				Meta:     map[string]string{"source": src.Name, "scheme": u.Scheme},
			})
		}
		if !policy.HostAllowed(u.Host) {
			report.Add(domain.Finding{
				Check:    CheckPolicyHost,
				Severity: domain.SeverityError,
				Message:  "source host not allowed by policy",
				Meta:     map[string]string{"source": src.Name, "host": u.Host},
			})
		}
	}
}

// checkSet validates one package section: constraint satisfiability, index
// references, and the policy's package rules.
func (a *Analyzer) checkSet(m *domain.Manifest, set *domain.PackageSet, policy domain.Policy, report *domain.Report) {
	for dep := range set.All() {
		meta := map[string]string{"package": dep.Name, "scope": string(set.Scope())}

		if reason, ok := dep.Constraint.Contradiction(); ok {
			report.Add(domain.Finding{
				Check:    CheckConstraints,
				Severity: domain.SeverityError,
				Message:  reason,
				Meta:     meta,
			})
		}

		// Arbitrary equality bypasses version parsing, so a clause like
		// "===banana" never matches any release. Flag it here.
		for _, clause := range dep.Constraint.Clauses() {
			if clause.Op != domain.OpArbitraryEq {
				continue
			}
			if _, err := domain.ParseVersion(clause.Version); err != nil {
				report.Add(domain.Finding{
					Check:    CheckConstraints,
					Severity: domain.SeverityError,
					Message:  "arbitrary equality against a non-version string",
					Meta: map[string]string{
						"package": dep.Name,
						"scope":   string(set.Scope()),
						"clause":  string(clause.Op) + clause.Version,
					},
				})
			}
		}

		if dep.Index != "" {
			if _, ok := m.SourceNamed(dep.Index); !ok {
				report.Add(domain.Finding{
					Check:    CheckIndexRefs,
					Severity: domain.SeverityError,
					Message:  "package references an undeclared source",
					Meta:     map[string]string{"package": dep.Name, "index": dep.Index},
				})
			}
		}

		if policy.Denied(dep.Name) {
			report.Add(domain.Finding{
				Check:    CheckPolicyDeny,
				Severity: domain.SeverityError,
				Message:  "package is deny-listed by policy",
				Meta:     meta,
			})
		}

		if policy.RequirePinned && set.Scope() == domain.ScopeRuntime {
			if _, pinned := dep.Constraint.Exact(); !pinned {
				report.Add(domain.Finding{
					Check:    CheckPolicyPinned,
					Severity: domain.SeverityError,
					Message:  "policy requires an exact version pin",
					Meta: map[string]string{
						"package":    dep.Name,
						"constraint": dep.Constraint.String(),
					},
				})
			}
		}
	}
}

// checkInterpreter verifies that the exact interpreter pin satisfies the
// minor-version selector.
func (a *Analyzer) checkInterpreter(m *domain.Manifest, report *domain.Report) {
	if err := m.Requires.Consistent(); err != nil {
		report.Add(domain.Finding{
			Check:    CheckInterpreter,
			Severity: domain.SeverityError,
			Message:  err.Error(),
			Meta: map[string]string{
				"python_version":      m.Requires.PythonVersion,
				"python_full_version": m.Requires.PythonFullVersion,
			},
		})
	}
}

// checkOverlap reports packages declared in both sections. Allowed, so the
// finding is informational.
func (a *Analyzer) checkOverlap(m *domain.Manifest, report *domain.Report) {
	overlap := m.Overlap()
	if len(overlap) == 0 {
		return
	}
	report.Add(domain.Finding{
		Check:    CheckOverlap,
		Severity: domain.SeverityInfo,
		Message:  "declared in both runtime and development sections",
		Meta:     map[string]string{"packages": strings.Join(overlap, ", ")},
	})
}

// probe fans out name-existence checks against the declared sources with
// bounded concurrency. Findings are appended in declaration order.
func (a *Analyzer) probe(ctx context.Context, m *domain.Manifest, opts Options, report *domain.Report) error {
	if a.registry == nil {
		return nil
	}

	defaultSource, hasDefault := m.DefaultSource()
	if !hasDefault {
		report.Add(domain.Finding{
			Check:    CheckRegistry,
			Severity: domain.SeverityWarning,
			Message:  "no sources declared, skipping registry probe",
		})
		return nil
	}

	type probeTarget struct {
		dep    domain.Dependency
		source domain.Source
	}

	var targets []probeTarget
	for _, set := range []*domain.PackageSet{m.Packages, m.DevPackages} {
		for dep := range set.All() {
			source := defaultSource
			if dep.Index != "" {
				if named, ok := m.SourceNamed(dep.Index); ok {
					source = named
				}
			}
			targets = append(targets, probeTarget{dep: dep, source: source})
		}
	}

	concurrency := opts.ProbeConcurrency
	if concurrency <= 0 {
		concurrency = defaultProbeConcurrency
	}

	findings := make([]*domain.Finding, len(targets))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, target := range targets {
		g.Go(func() error {
			vctx, vertex := a.telemetry.Record(gctx, "probe "+target.dep.Name)

			status, err := a.registry.CheckPackage(vctx, target.source, target.dep.Name)
			vertex.Complete(err)

			finding := probeFinding(target.dep, status, err)
			if finding != nil {
				mu.Lock()
				findings[i] = finding
				mu.Unlock()
			}
			return gctx.Err()
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	for _, finding := range findings {
		if finding != nil {
			report.Add(*finding)
		}
	}
	return nil
}

func probeFinding(dep domain.Dependency, status ports.PackageStatus, err error) *domain.Finding {
	meta := map[string]string{"package": dep.Name, "scope": string(dep.Scope)}

	switch status {
	case ports.StatusMissing:
		return &domain.Finding{
			Check:    CheckRegistry,
			Severity: domain.SeverityError,
			Message:  "package not found in registry",
			Meta:     meta,
		}
	case ports.StatusUnknown:
		msg := "registry probe inconclusive"
		if err != nil {
			msg = err.Error()
		}
		return &domain.Finding{
			Check:    CheckRegistry,
			Severity: domain.SeverityWarning,
			Message:  msg,
			Meta:     meta,
		}
	default:
		return nil
	}
}
