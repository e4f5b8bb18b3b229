package app

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/uibind/uibind/internal/adapters/cgolink"
	"github.com/uibind/uibind/internal/adapters/config"
	"github.com/uibind/uibind/internal/adapters/fs"
	"github.com/uibind/uibind/internal/adapters/git"
	"github.com/uibind/uibind/internal/adapters/logger"
	"github.com/uibind/uibind/internal/adapters/native"
	"github.com/uibind/uibind/internal/adapters/staging"
	"github.com/uibind/uibind/internal/adapters/watcher"
	"github.com/uibind/uibind/internal/bindgen"
	"github.com/uibind/uibind/internal/core/ports"
)

const (
	// AppNodeID is the App node's graft ID.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the Components node's graft ID.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			git.NodeID,
			native.NodeID,
			bindgen.NodeID,
			cgolink.NodeID,
			staging.NodeID,
			fs.HasherNodeID,
			watcher.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	fetcher, err := graft.Dep[ports.Fetcher](ctx)
	if err != nil {
		return nil, err
	}

	invoker, err := graft.Dep[ports.Invoker](ctx)
	if err != nil {
		return nil, err
	}

	generator, err := graft.Dep[ports.BindingGenerator](ctx)
	if err != nil {
		return nil, err
	}

	linker, err := graft.Dep[ports.LinkWriter](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.StagingStore](ctx)
	if err != nil {
		return nil, err
	}

	hasher, err := graft.Dep[ports.Hasher](ctx)
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

	return New(loader, fetcher, invoker, generator, linker, store, hasher, watch, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	application, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return NewComponents(application, log), nil
}
