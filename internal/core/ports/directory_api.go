package ports

import (
	"context"

	"github.com/markethub/admin-gateway/internal/core/domain"
)

// UserInput carries the writable fields of a managed user. Empty fields are
// omitted on the wire, so the same shape serves both create (password
// required, enforced by the handler) and partial update.
type UserInput struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
	Password  string `json:"password,omitempty"`
}

// DirectoryAPI is the user-directory surface of the upstream marketplace
// API. Every call forwards the caller's bearer credential; the upstream
// remains the authority on whether the caller may perform the operation.
type DirectoryAPI interface {
	ListUsers(ctx context.Context, token string, role domain.Role) ([]domain.User, error)
	GetUser(ctx context.Context, token string, role domain.Role, id string) (*domain.User, error)
	CreateUser(ctx context.Context, token string, role domain.Role, in UserInput) (*domain.User, error)
	UpdateUser(ctx context.Context, token string, role domain.Role, id string, in UserInput) (*domain.User, error)
	DeleteUser(ctx context.Context, token string, role domain.Role, id string) error
}
