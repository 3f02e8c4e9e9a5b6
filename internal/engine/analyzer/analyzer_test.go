package analyzer_test

import (
	"context"
	"errors"
	"testing"

	"go.trai.ch/pim/internal/adapters/telemetry"
	"go.trai.ch/pim/internal/core/domain"
	"go.trai.ch/pim/internal/core/ports"
	"go.trai.ch/pim/internal/engine/analyzer"
)

// fakeRegistry answers probes from a fixed status table.
type fakeRegistry struct {
	statuses map[string]ports.PackageStatus
	err      error
}

func (f *fakeRegistry) CheckPackage(_ context.Context, _ domain.Source, name string) (ports.PackageStatus, error) {
	status, ok := f.statuses[name]
	if !ok {
		return ports.StatusFound, nil
	}
	if status == ports.StatusUnknown {
		return status, f.err
	}
	return status, nil
}

func newAnalyzer(reg ports.Registry) *analyzer.Analyzer {
	return analyzer.New(reg, telemetry.NewNoOp())
}

func buildManifest(t *testing.T) *domain.Manifest {
	t.Helper()
	m := domain.NewManifest("/project/Pipfile")
	m.Sources = []domain.Source{
		{Name: "pypi", URL: "https://pypi.org/simple", VerifySSL: true},
	}
	m.Requires = domain.Requires{PythonVersion: "3.11", PythonFullVersion: "3.11.0"}
	addDep(t, m.Packages, "requests", "*", "")
	addDep(t, m.Packages, "numpy", ">=1.26", "")
	addDep(t, m.DevPackages, "pytest", "*", "")
	return m
}

func addDep(t *testing.T, set *domain.PackageSet, name, constraint, index string) {
	t.Helper()
	c, err := domain.ParseConstraint(constraint)
	if err != nil {
		t.Fatalf("failed to parse constraint %q: %v", constraint, err)
	}
	if err := set.Add(domain.Dependency{
		Name:         domain.NormalizeName(name),
		DeclaredName: name,
		Constraint:   c,
		Index:        index,
	}); err != nil {
		t.Fatalf("failed to add %s: %v", name, err)
	}
}

func findingsFor(report *domain.Report, check string) []domain.Finding {
	var out []domain.Finding
	for _, f := range report.Findings {
		if f.Check == check {
			out = append(out, f)
		}
	}
	return out
}

func TestRun_CleanManifest(t *testing.T) {
	m := buildManifest(t)

	report, err := newAnalyzer(nil).Run(context.Background(), m, analyzer.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(report.Findings) != 0 {
		t.Errorf("expected no findings, got %+v", report.Findings)
	}
	if report.HasErrors() {
		t.Error("clean manifest should not have errors")
	}
	if report.RuntimePackages != 2 || report.DevPackages != 1 {
		t.Errorf("unexpected counts: %d/%d", report.RuntimePackages, report.DevPackages)
	}
	if report.InterpreterTarget != "3.11.0" {
		t.Errorf("unexpected interpreter target: %s", report.InterpreterTarget)
	}
}

func TestRun_DuplicateSourceNames(t *testing.T) {
	m := buildManifest(t)
	m.Sources = append(m.Sources, domain.Source{Name: "pypi", URL: "https://mirror.example/simple", VerifySSL: true})

	report, err := newAnalyzer(nil).Run(context.Background(), m, analyzer.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := findingsFor(report, analyzer.CheckSourceNames)
	if len(found) != 1 || found[0].Severity != domain.SeverityError {
		t.Errorf("expected one source-names error, got %+v", found)
	}
}

func TestRun_InvalidSourceURL(t *testing.T) {
	m := buildManifest(t)
	m.Sources = []domain.Source{
		{Name: "bad", URL: "ftp://files.example/packages", VerifySSL: true},
	}

	report, err := newAnalyzer(nil).Run(context.Background(), m, analyzer.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := findingsFor(report, analyzer.CheckSourceURL)
	if len(found) != 1 || found[0].Severity != domain.SeverityError {
		t.Errorf("expected one source-url error, got %+v", found)
	}
	if !report.HasErrors() {
		t.Error("report should have errors")
	}
}

func TestRun_PlainHTTPWarning(t *testing.T) {
	m := buildManifest(t)
	m.Sources = []domain.Source{
		{Name: "internal", URL: "http://pypi.internal/simple", VerifySSL: true},
	}

	report, err := newAnalyzer(nil).Run(context.Background(), m, analyzer.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := findingsFor(report, analyzer.CheckSourceURL)
	if len(found) != 1 || found[0].Severity != domain.SeverityWarning {
		t.Errorf("expected one http warning, got %+v", found)
	}
	if report.HasErrors() {
		t.Error("plain http is a warning, not an error")
	}
}

func TestRun_DisabledVerificationWarning(t *testing.T) {
	m := buildManifest(t)
	m.Sources = []domain.Source{
		{Name: "pypi", URL: "https://pypi.org/simple", VerifySSL: false},
	}

	report, err := newAnalyzer(nil).Run(context.Background(), m, analyzer.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := findingsFor(report, analyzer.CheckSourceURL)
	if len(found) != 1 || found[0].Severity != domain.SeverityWarning {
		t.Errorf("expected one verification warning, got %+v", found)
	}
}

func TestRun_PolicySchemeAndHost(t *testing.T) {
	m := buildManifest(t)
	m.Sources = []domain.Source{
		{Name: "internal", URL: "http://pypi.internal/simple", VerifySSL: true},
	}

	opts := analyzer.Options{Policy: domain.Policy{
		AllowedSchemes: []string{"https"},
		AllowedHosts:   []string{"pypi.org"},
	}}
	report, err := newAnalyzer(nil).Run(context.Background(), m, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if found := findingsFor(report, analyzer.CheckPolicyScheme); len(found) != 1 {
		t.Errorf("expected one policy-scheme error, got %+v", found)
	}
	if found := findingsFor(report, analyzer.CheckPolicyHost); len(found) != 1 {
		t.Errorf("expected one policy-host error, got %+v", found)
	}
}

func TestRun_ConstraintContradiction(t *testing.T) {
	m := buildManifest(t)
	addDep(t, m.Packages, "pandas", ">=2.0,<1.0", "")

	report, err := newAnalyzer(nil).Run(context.Background(), m, analyzer.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := findingsFor(report, analyzer.CheckConstraints)
	if len(found) != 1 || found[0].Severity != domain.SeverityError {
		t.Errorf("expected one constraint error, got %+v", found)
	}
	if found[0].Meta["package"] != "pandas" {
		t.Errorf("expected finding for pandas, got %+v", found[0].Meta)
	}
}

func TestRun_ArbitraryEqualityNonVersion(t *testing.T) {
	m := buildManifest(t)
	addDep(t, m.Packages, "legacy-lib", "===not a version at all", "")
	addDep(t, m.DevPackages, "fixture-gen", "===1.0.0", "")

	report, err := newAnalyzer(nil).Run(context.Background(), m, analyzer.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := findingsFor(report, analyzer.CheckConstraints)
	if len(found) != 1 || found[0].Severity != domain.SeverityError {
		t.Fatalf("expected one constraint error, got %+v", found)
	}
	if found[0].Meta["package"] != "legacy-lib" {
		t.Errorf("expected finding for legacy-lib, got %+v", found[0].Meta)
	}
	if found[0].Meta["clause"] != "===not a version at all" {
		t.Errorf("unexpected clause meta: %+v", found[0].Meta)
	}
}

func TestRun_UndeclaredIndexReference(t *testing.T) {
	m := buildManifest(t)
	addDep(t, m.Packages, "internal-tool", "*", "corp")

	report, err := newAnalyzer(nil).Run(context.Background(), m, analyzer.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := findingsFor(report, analyzer.CheckIndexRefs)
	if len(found) != 1 || found[0].Meta["index"] != "corp" {
		t.Errorf("expected one index-refs error for corp, got %+v", found)
	}
}

func TestRun_PolicyDeny(t *testing.T) {
	m := buildManifest(t)

	opts := analyzer.Options{Policy: domain.Policy{DenyPackages: []string{"Requests"}}}
	report, err := newAnalyzer(nil).Run(context.Background(), m, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := findingsFor(report, analyzer.CheckPolicyDeny)
	if len(found) != 1 || found[0].Meta["package"] != "requests" {
		t.Errorf("expected one policy-deny error for requests, got %+v", found)
	}
}

func TestRun_PolicyPinnedAppliesToRuntimeOnly(t *testing.T) {
	m := domain.NewManifest("/project/Pipfile")
	m.Sources = []domain.Source{{Name: "pypi", URL: "https://pypi.org/simple", VerifySSL: true}}
	addDep(t, m.Packages, "requests", "==2.32.3", "")
	addDep(t, m.Packages, "numpy", ">=1.26", "")
	addDep(t, m.DevPackages, "pytest", "*", "")

	opts := analyzer.Options{Policy: domain.Policy{RequirePinned: true}}
	report, err := newAnalyzer(nil).Run(context.Background(), m, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := findingsFor(report, analyzer.CheckPolicyPinned)
	if len(found) != 1 {
		t.Fatalf("expected exactly one policy-pinned error, got %+v", found)
	}
	if found[0].Meta["package"] != "numpy" {
		t.Errorf("expected finding for unpinned numpy, got %+v", found[0].Meta)
	}
}

func TestRun_InterpreterMismatch(t *testing.T) {
	m := buildManifest(t)
	m.Requires = domain.Requires{PythonVersion: "3.12", PythonFullVersion: "3.11.0"}

	report, err := newAnalyzer(nil).Run(context.Background(), m, analyzer.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := findingsFor(report, analyzer.CheckInterpreter)
	if len(found) != 1 || found[0].Severity != domain.SeverityError {
		t.Errorf("expected one interpreter error, got %+v", found)
	}
	if found[0].Meta["python_version"] != "3.12" {
		t.Errorf("unexpected finding meta: %+v", found[0].Meta)
	}
}

func TestRun_OverlapIsInformational(t *testing.T) {
	m := buildManifest(t)
	addDep(t, m.DevPackages, "requests", "*", "")

	report, err := newAnalyzer(nil).Run(context.Background(), m, analyzer.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := findingsFor(report, analyzer.CheckOverlap)
	if len(found) != 1 || found[0].Severity != domain.SeverityInfo {
		t.Errorf("expected one overlap info finding, got %+v", found)
	}
	if found[0].Meta["packages"] != "requests" {
		t.Errorf("unexpected overlap meta: %+v", found[0].Meta)
	}
	if report.HasErrors() {
		t.Error("overlap alone should not fail the report")
	}
}

func TestRun_RemoteProbe(t *testing.T) {
	m := buildManifest(t)

	reg := &fakeRegistry{
		statuses: map[string]ports.PackageStatus{
			"numpy":  ports.StatusMissing,
			"pytest": ports.StatusUnknown,
		},
		err: errors.New("registry unreachable"),
	}

	report, err := newAnalyzer(reg).Run(context.Background(), m, analyzer.Options{Remote: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := findingsFor(report, analyzer.CheckRegistry)
	if len(found) != 2 {
		t.Fatalf("expected two registry findings, got %+v", found)
	}

	// Findings follow declaration order: runtime section first.
	if found[0].Meta["package"] != "numpy" || found[0].Severity != domain.SeverityError {
		t.Errorf("expected numpy missing error first, got %+v", found[0])
	}
	if found[1].Meta["package"] != "pytest" || found[1].Severity != domain.SeverityWarning {
		t.Errorf("expected pytest unknown warning second, got %+v", found[1])
	}
}

func TestRun_RemoteProbeWithoutSources(t *testing.T) {
	m := buildManifest(t)
	m.Sources = nil

	reg := &fakeRegistry{}
	report, err := newAnalyzer(reg).Run(context.Background(), m, analyzer.Options{Remote: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := findingsFor(report, analyzer.CheckRegistry)
	if len(found) != 1 || found[0].Severity != domain.SeverityWarning {
		t.Errorf("expected one skip warning, got %+v", found)
	}
}

func TestRun_RemoteProbeCanceled(t *testing.T) {
	m := buildManifest(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newAnalyzer(&fakeRegistry{}).Run(ctx, m, analyzer.Options{Remote: true})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
