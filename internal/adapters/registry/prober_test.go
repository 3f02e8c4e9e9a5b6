package registry_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.trai.ch/pim/internal/adapters/logger"
	"go.trai.ch/pim/internal/adapters/registry"
	"go.trai.ch/pim/internal/core/domain"
	"go.trai.ch/pim/internal/core/ports"
)

func newProber() *registry.Prober {
	log := logger.New()
	log.SetOutput(io.Discard)
	return registry.NewProber(log)
}

func testSource(url string) domain.Source {
	return domain.Source{Name: "test", URL: url, VerifySSL: true}
}

func TestCheckPackage_Found(t *testing.T) {
	var probedPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		probedPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	prober := newProber()
	status, err := prober.CheckPackage(context.Background(), testSource(server.URL+"/simple"), "Pillow_HEIF")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != ports.StatusFound {
		t.Errorf("expected StatusFound, got %v", status)
	}

	// The probe path uses the canonical name.
	if probedPath != "/simple/pillow-heif/" {
		t.Errorf("unexpected probe path: %s", probedPath)
	}
}

func TestCheckPackage_Missing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	prober := newProber()
	status, err := prober.CheckPackage(context.Background(), testSource(server.URL), "no-such-package")
	if err != nil {
		t.Fatalf("a definitive 404 should not be an error, got %v", err)
	}
	if status != ports.StatusMissing {
		t.Errorf("expected StatusMissing, got %v", status)
	}
}

func TestCheckPackage_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	var logged bytes.Buffer
	log := logger.New()
	log.SetOutput(&logged)

	prober := registry.NewProber(log)
	status, err := prober.CheckPackage(context.Background(), testSource(server.URL), "requests")
	if err == nil {
		t.Fatal("expected error for server failure, got nil")
	}
	if status != ports.StatusUnknown {
		t.Errorf("expected StatusUnknown, got %v", status)
	}
	if !strings.Contains(logged.String(), "inconclusive") {
		t.Errorf("expected an inconclusive-probe warning, got %q", logged.String())
	}
}

func TestCheckPackage_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	prober := newProber()
	status, err := prober.CheckPackage(context.Background(), testSource(server.URL), "requests")
	if err == nil {
		t.Fatal("expected error for unreachable registry, got nil")
	}
	if status != ports.StatusUnknown {
		t.Errorf("expected StatusUnknown, got %v", status)
	}
}

func TestCheckPackage_SkipsVerificationWhenDisabled(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	source := domain.Source{Name: "internal", URL: server.URL, VerifySSL: false}

	prober := newProber()
	status, err := prober.CheckPackage(context.Background(), source, "requests")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != ports.StatusFound {
		t.Errorf("expected StatusFound, got %v", status)
	}
}
