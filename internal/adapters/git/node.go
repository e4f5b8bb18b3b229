package git

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/uibind/uibind/internal/adapters/logger"
	"github.com/uibind/uibind/internal/adapters/shell"
	"github.com/uibind/uibind/internal/core/ports"
)

const NodeID graft.ID = "adapter.fetcher"

func init() {
	graft.Register(graft.Node[ports.Fetcher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.Fetcher, error) {
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewFetcher(executor, log), nil
		},
	})
}
