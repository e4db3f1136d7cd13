package deployer

import (
	"context"
)

// Resource ensures one piece of the stack against the Azure API. EnsureCreated
// and EnsureDeleted must be idempotent, they are called on every pass.
type Resource interface {
	EnsureCreated(ctx context.Context, obj interface{}) error
	EnsureDeleted(ctx context.Context, obj interface{}) error
	Name() string
}
