package registry

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pim/internal/adapters/logger"
	"go.trai.ch/pim/internal/core/ports"
)

const NodeID graft.ID = "adapter.registry"

func init() {
	graft.Register(graft.Node[ports.Registry]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Registry, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewProber(log), nil
		},
	})
}
