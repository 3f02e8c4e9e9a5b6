package policy

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pim/internal/core/ports"
)

const NodeID graft.ID = "adapter.policy_loader"

func init() {
	graft.Register(graft.Node[ports.PolicyLoader]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.PolicyLoader, error) {
			return NewLoader(), nil
		},
	})
}
