// Package registry implements the package-name probe against a simple index.
package registry

import (
	"context"
	"crypto/tls"
	"net/http"
	"net/url"
	"time"

	"go.trai.ch/pim/internal/core/domain"
	"go.trai.ch/pim/internal/core/ports"
	"go.trai.ch/zerr"
)

const probeTimeout = 10 * time.Second

var _ ports.Registry = (*Prober)(nil)

// Prober implements ports.Registry over HTTP. It asks a simple-index style
// registry whether a package name exists; it never downloads anything.
type Prober struct {
	client   *http.Client
	insecure *http.Client
	logger   ports.Logger
}

// NewProber creates a new Prober with the given logger.
func NewProber(logger ports.Logger) *Prober {
	return &Prober{
		client: &http.Client{Timeout: probeTimeout},
		insecure: &http.Client{
			Timeout: probeTimeout,
			Transport: &http.Transport{
				// Sources may opt out of TLS verification via verify_ssl.
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //nolint:gosec // manifest-controlled
			},
		},
		logger: logger,
	}
}

// CheckPackage asks the source whether the canonical package name exists.
// A definitive 404 means the name is missing; transport failures and server
// errors yield StatusUnknown because they say nothing about the manifest.
func (p *Prober) CheckPackage(ctx context.Context, source domain.Source, name string) (ports.PackageStatus, error) {
	target, err := url.JoinPath(source.URL, domain.NormalizeName(name)+"/")
	if err != nil {
		return ports.StatusUnknown, zerr.With(zerr.Wrap(err, "failed to build probe url"), "package", name)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, target, nil)
	if err != nil {
		return ports.StatusUnknown, zerr.With(zerr.Wrap(err, "failed to build probe request"), "package", name)
	}

	client := p.client
	if !source.VerifySSL {
		client = p.insecure
	}

	resp, err := client.Do(req)
	if err != nil {
		p.logger.Warn("registry probe for " + name + " failed: " + err.Error())
		return ports.StatusUnknown, zerr.With(zerr.Wrap(err, "registry unreachable"), "package", name)
	}
	defer resp.Body.Close() //nolint:errcheck // Best effort close in defer

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ports.StatusMissing, nil
	case resp.StatusCode >= 200 && resp.StatusCode < 400:
		return ports.StatusFound, nil
	default:
		p.logger.Warn("registry probe for " + name + " inconclusive: " + resp.Status)
		err := zerr.With(zerr.New("unexpected registry response"), "package", name)
		return ports.StatusUnknown, zerr.With(err, "status", resp.Status)
	}
}
