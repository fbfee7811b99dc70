package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/bust/internal/core/ports"
)

const (
	// WalkerNodeID is the unique identifier for the asset walker Graft node.
	WalkerNodeID graft.ID = "adapter.fs.walker"
	// HasherNodeID is the unique identifier for the token computer Graft node.
	HasherNodeID graft.ID = "adapter.fs.hasher"
)

func init() {
	graft.Register(graft.Node[*Walker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Walker, error) {
			return NewWalker(), nil
		},
	})

	graft.Register(graft.Node[ports.TokenComputer]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.TokenComputer, error) {
			return NewHasher(), nil
		},
	})
}
