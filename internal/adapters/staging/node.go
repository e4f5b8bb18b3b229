package staging

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/uibind/uibind/internal/adapters/logger"
	"github.com/uibind/uibind/internal/core/ports"
)

const NodeID graft.ID = "adapter.staging_store"

func init() {
	graft.Register(graft.Node[ports.StagingStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.StagingStore, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewStore(log), nil
		},
	})
}
