package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"go.trai.ch/pim/internal/adapters/telemetry"
	"go.trai.ch/pim/internal/core/ports"
)

func TestNoOp(t *testing.T) {
	recorder := telemetry.NewNoOp()

	ctx, vertex := recorder.Record(context.Background(), "probe requests")
	if vertex == nil {
		t.Fatal("expected a vertex")
	}
	if _, ok := ports.VertexFromContext(ctx); !ok {
		t.Error("expected the vertex to be attached to the context")
	}

	// None of these should panic or block.
	vertex.Complete(nil)
	vertex.Complete(errors.New("late failure"))
	vertex.Cached()

	if err := recorder.Close(); err != nil {
		t.Errorf("unexpected error from Close: %v", err)
	}
}
