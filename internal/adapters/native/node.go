package native

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/uibind/uibind/internal/adapters/fs"
	"github.com/uibind/uibind/internal/adapters/logger"
	"github.com/uibind/uibind/internal/adapters/shell"
	"github.com/uibind/uibind/internal/core/ports"
)

const NodeID graft.ID = "adapter.invoker"

func init() {
	graft.Register(graft.Node[ports.Invoker]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID, fs.ResolverNodeID, fs.VerifierNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.Invoker, error) {
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}
			resolver, err := graft.Dep[*fs.Resolver](ctx)
			if err != nil {
				return nil, err
			}
			verifier, err := graft.Dep[*fs.Verifier](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewInvoker(executor, resolver, verifier, log), nil
		},
	})
}
