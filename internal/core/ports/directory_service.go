package ports

import (
	"context"

	"github.com/markethub/admin-gateway/internal/core/domain"
)

// DirectoryService manages user records through the upstream directory,
// keeping a transient per-role roster that is mutated optimistically and
// restored from a snapshot when the upstream call fails.
type DirectoryService interface {
	List(ctx context.Context, token string, role domain.Role) ([]domain.User, error)
	Get(ctx context.Context, token string, role domain.Role, id string) (*domain.User, error)
	Create(ctx context.Context, token string, role domain.Role, in UserInput) (*domain.User, error)
	Update(ctx context.Context, token string, role domain.Role, id string, in UserInput) (*domain.User, error)
	Delete(ctx context.Context, token string, role domain.Role, id string) error
}
