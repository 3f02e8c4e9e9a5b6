package analyzer

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pim/internal/adapters/registry"
	"go.trai.ch/pim/internal/adapters/telemetry/progrock"
	"go.trai.ch/pim/internal/core/ports"
)

const NodeID graft.ID = "engine.analyzer"

func init() {
	graft.Register(graft.Node[*Analyzer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{registry.NodeID, progrock.NodeID},
		Run: func(ctx context.Context) (*Analyzer, error) {
			reg, err := graft.Dep[ports.Registry](ctx)
			if err != nil {
				return nil, err
			}
			tel, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}
			return New(reg, tel), nil
		},
	})
}
