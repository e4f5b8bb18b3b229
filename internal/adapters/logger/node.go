package logger

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/uibind/uibind/internal/core/ports"
)

// NodeID is the logger node's graft ID.
const NodeID graft.ID = "adapter.logger"

func init() {
	graft.Register(graft.Node[ports.Logger]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Logger, error) {
			return New(), nil
		},
	})
}
