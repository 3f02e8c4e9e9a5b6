package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pim/internal/adapters/lock"     //nolint:depguard // Wired in app layer
	"go.trai.ch/pim/internal/adapters/logger"   //nolint:depguard // Wired in app layer
	"go.trai.ch/pim/internal/adapters/manifest" //nolint:depguard // Wired in app layer
	"go.trai.ch/pim/internal/adapters/policy"   //nolint:depguard // Wired in app layer
	"go.trai.ch/pim/internal/adapters/watcher"  //nolint:depguard // Wired in app layer
	"go.trai.ch/pim/internal/core/ports"
	"go.trai.ch/pim/internal/engine/analyzer"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the Components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			manifest.NodeID,
			policy.NodeID,
			analyzer.NodeID,
			lock.NodeID,
			watcher.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			application, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: application, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	manifests, err := graft.Dep[ports.ManifestLoader](ctx)
	if err != nil {
		return nil, err
	}

	policies, err := graft.Dep[ports.PolicyLoader](ctx)
	if err != nil {
		return nil, err
	}

	az, err := graft.Dep[*analyzer.Analyzer](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.SnapshotStore](ctx)
	if err != nil {
		return nil, err
	}

	watch, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(manifests, policies, az, store, watch, log), nil
}
