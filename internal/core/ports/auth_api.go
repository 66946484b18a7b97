package ports

import (
	"context"

	"github.com/markethub/admin-gateway/internal/core/domain"
)

// RegisterInput carries the fields of a registration request. The password
// passes through to the upstream verbatim and is never stored locally.
type RegisterInput struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Role      string `json:"role" validate:"required,oneof=buyer seller manager admin"`
}

// LoginResult is the upstream's answer to a successful login. Profile is
// optional; when present it is passed through to the caller but never
// cached; identity is always re-resolved per request.
type LoginResult struct {
	Token   string
	Profile *domain.User
	Message string
}

// AuthAPI is the authentication surface of the upstream marketplace API.
type AuthAPI interface {
	Register(ctx context.Context, in RegisterInput) (string, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, token string) error
	Profile(ctx context.Context, token string) (*domain.User, error)
	VerifyEmail(ctx context.Context, token string) (string, error)
}
