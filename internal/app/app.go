// Package app implements the application layer for pim.
package app

import (
	"context"
	"path/filepath"

	"go.trai.ch/pim/internal/core/domain"
	"go.trai.ch/pim/internal/core/ports"
	"go.trai.ch/pim/internal/engine/analyzer"
	"go.trai.ch/zerr"
)

// App wires the manifest toolchain together: load, analyze, snapshot, watch.
type App struct {
	manifests ports.ManifestLoader
	policies  ports.PolicyLoader
	analyzer  *analyzer.Analyzer
	store     ports.SnapshotStore
	watcher   ports.Watcher
	logger    ports.Logger
}

// New creates a new App instance.
func New(
	manifests ports.ManifestLoader,
	policies ports.PolicyLoader,
	az *analyzer.Analyzer,
	store ports.SnapshotStore,
	watcher ports.Watcher,
	logger ports.Logger,
) *App {
	return &App{
		manifests: manifests,
		policies:  policies,
		analyzer:  az,
		store:     store,
		watcher:   watcher,
		logger:    logger,
	}
}

// CheckOptions configures a Check run.
type CheckOptions struct {
	// ManifestPath is the explicit manifest location. Empty means discover
	// from the working directory.
	ManifestPath string

	// PolicyPath is the explicit policy location. Empty means the default
	// policy file next to the manifest.
	PolicyPath string

	// Remote enables the registry name-existence probe.
	Remote bool

	// Frozen requires a snapshot to exist and match the manifest. A missing
	// snapshot fails the run; a stale one becomes an error finding.
	Frozen bool
}

// Check loads the manifest, runs every structural check, and compares the
// stored snapshot fingerprint when one exists.
func (a *App) Check(ctx context.Context, opts CheckOptions) (*domain.Report, error) {
	m, err := a.load(opts.ManifestPath)
	if err != nil {
		return nil, err
	}

	policyPath := opts.PolicyPath
	if policyPath == "" {
		policyPath = filepath.Join(filepath.Dir(m.Path), domain.DefaultPolicyName)
	}
	pol, err := a.policies.Load(policyPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load policy")
	}

	report, err := a.analyzer.Run(ctx, m, analyzer.Options{
		Policy: pol,
		Remote: opts.Remote,
	})
	if err != nil {
		return nil, zerr.Wrap(err, "analysis failed")
	}

	if err := a.checkSnapshot(m, report, opts.Frozen); err != nil {
		return nil, err
	}

	return report, nil
}

// checkSnapshot compares the stored snapshot fingerprint against the manifest.
// A stale snapshot is a warning, or an error in frozen mode. A missing
// snapshot is only a defect in frozen mode.
func (a *App) checkSnapshot(m *domain.Manifest, report *domain.Report, frozen bool) error {
	snap, exists, err := a.store.Load(m.Path)
	if err != nil {
		a.logger.Warn("failed to read snapshot: " + err.Error())
		return nil
	}
	if !exists {
		if frozen {
			return zerr.With(domain.ErrSnapshotMissing, "path", m.Path)
		}
		return nil
	}

	fingerprint, err := a.store.Fingerprint(m.Path)
	if err != nil {
		a.logger.Warn("failed to fingerprint manifest: " + err.Error())
		return nil
	}

	if fingerprint != snap.Fingerprint {
		severity := domain.SeverityWarning
		if frozen {
			severity = domain.SeverityError
		}
		report.Add(domain.Finding{
			Check:    analyzer.CheckSnapshot,
			Severity: severity,
			Message:  "manifest changed since the snapshot was taken",
			Meta: map[string]string{
				"snapshot": snap.Fingerprint,
				"manifest": fingerprint,
			},
		})
	}
	return nil
}

// List loads the manifest for display.
func (a *App) List(_ context.Context, manifestPath string) (*domain.Manifest, error) {
	return a.load(manifestPath)
}

// Lock loads the manifest and writes a structural snapshot next to it.
func (a *App) Lock(_ context.Context, manifestPath string) (*domain.Snapshot, error) {
	m, err := a.load(manifestPath)
	if err != nil {
		return nil, err
	}

	snap, err := a.store.Capture(m)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to write snapshot")
	}
	return snap, nil
}

// Watch re-runs Check whenever the manifest or the policy file changes,
// invoking onReport after every run. It blocks until the context is canceled.
func (a *App) Watch(ctx context.Context, opts CheckOptions, onReport func(*domain.Report)) error {
	m, err := a.load(opts.ManifestPath)
	if err != nil {
		return err
	}
	opts.ManifestPath = m.Path

	policyPath := opts.PolicyPath
	if policyPath == "" {
		policyPath = filepath.Join(filepath.Dir(m.Path), domain.DefaultPolicyName)
	}

	if err := a.watcher.Start(ctx, []string{m.Path, policyPath}); err != nil {
		return err
	}
	defer a.watcher.Stop() //nolint:errcheck // Best effort stop in defer

	runOnce := func() {
		report, err := a.Check(ctx, opts)
		if err != nil {
			a.logger.Error(err)
			return
		}
		onReport(report)
	}

	runOnce()

	for range a.watcher.Events() {
		if ctx.Err() != nil {
			break
		}
		a.logger.Info("manifest changed, re-checking")
		runOnce()
	}

	return ctx.Err()
}

// load resolves the manifest path (discovering it when empty) and parses it.
func (a *App) load(path string) (*domain.Manifest, error) {
	if path == "" {
		discovered, err := a.manifests.Discover(".")
		if err != nil {
			return nil, err
		}
		path = discovered
	}

	m, err := a.manifests.Load(path)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load manifest")
	}
	return m, nil
}
