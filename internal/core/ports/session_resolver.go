package ports

import (
	"context"

	"github.com/markethub/admin-gateway/internal/core/domain"
)

// SessionResolver exchanges a session credential for the caller's identity.
// Exactly one upstream round trip per call, never retried; any failure maps
// to domain.ErrSessionInvalid.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*domain.User, error)
}
