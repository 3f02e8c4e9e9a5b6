package logger_test

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"go.trai.ch/pim/internal/adapters/logger"
)

func TestLogger_Info(t *testing.T) {
	lg := logger.New()
	buf := new(bytes.Buffer)
	lg.SetOutput(buf)

	lg.Info("some message")

	if !strings.Contains(buf.String(), "some message") {
		t.Errorf("expected output to contain 'some message', got: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "INFO") {
		t.Errorf("expected output to contain 'INFO', got: %s", buf.String())
	}
}

func TestLogger_Warn(t *testing.T) {
	lg := logger.New()
	buf := new(bytes.Buffer)
	lg.SetOutput(buf)

	lg.Warn("some warning")

	if !strings.Contains(buf.String(), "some warning") {
		t.Errorf("expected output to contain 'some warning', got: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "WARN") {
		t.Errorf("expected output to contain 'WARN', got: %s", buf.String())
	}
}

func TestLogger_Error(t *testing.T) {
	lg := logger.New()
	buf := new(bytes.Buffer)
	lg.SetOutput(buf)

	lg.Error(os.ErrPermission)

	if !strings.Contains(buf.String(), "permission denied") {
		t.Errorf("expected output to contain 'permission denied', got: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "ERROR") {
		t.Errorf("expected output to contain 'ERROR', got: %s", buf.String())
	}
}
