package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"maps"
	"slices"

	"go.trai.ch/pim/internal/core/domain"
	"go.trai.ch/zerr"
)

// sortedMeta yields finding metadata in stable key order.
func sortedMeta(meta map[string]string) iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, k := range slices.Sorted(maps.Keys(meta)) {
			if !yield(k, meta[k]) {
				return
			}
		}
	}
}

func validateOutputMode(mode string) error {
	switch mode {
	case "text", "json":
		return nil
	default:
		return zerr.With(zerr.New("unknown output format"), "output", mode)
	}
}

// renderReport writes a check report in the requested format.
func renderReport(w io.Writer, report *domain.Report, mode string) error {
	if mode == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Fprintf(w, "manifest: %s\n", report.ManifestPath)
	fmt.Fprintf(w, "runtime packages: %d\n", report.RuntimePackages)
	fmt.Fprintf(w, "dev packages: %d\n", report.DevPackages)
	if report.InterpreterTarget != "" {
		fmt.Fprintf(w, "interpreter: %s\n", report.InterpreterTarget)
	}

	if len(report.Findings) == 0 {
		fmt.Fprintln(w, "ok")
		return nil
	}

	for _, f := range report.Findings {
		fmt.Fprintf(w, "%-7s [%s] %s", f.Severity, f.Check, f.Message)
		for k, v := range sortedMeta(f.Meta) {
			fmt.Fprintf(w, " %s=%s", k, v)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "%d error(s), %d warning(s)\n",
		report.CountBySeverity(domain.SeverityError),
		report.CountBySeverity(domain.SeverityWarning))
	return nil
}

// renderManifest writes the package listing for the list command.
func renderManifest(w io.Writer, m *domain.Manifest, scope domain.Scope, mode string) error {
	set := m.Set(scope)

	if mode == "json" {
		type entry struct {
			Name        string   `json:"name"`
			Constraint  string   `json:"constraint"`
			Extras      []string `json:"extras,omitempty"`
			Index       string   `json:"index,omitempty"`
			Markers     string   `json:"markers,omitempty"`
			SysPlatform string   `json:"sys_platform,omitempty"`
		}
		entries := make([]entry, 0, set.Len())
		for dep := range set.All() {
			entries = append(entries, entry{
				Name:        dep.Name,
				Constraint:  dep.Constraint.String(),
				Extras:      dep.Extras,
				Index:       dep.Index,
				Markers:     dep.Markers,
				SysPlatform: dep.SysPlatform,
			})
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	for dep := range set.All() {
		fmt.Fprintf(w, "%s %s", dep.Name, dep.Constraint.String())
		if dep.Index != "" {
			fmt.Fprintf(w, " (index: %s)", dep.Index)
		}
		fmt.Fprintln(w)
	}
	return nil
}
