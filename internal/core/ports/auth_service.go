package ports

import "context"

// AuthService orchestrates the authentication funnel against the upstream.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (string, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// Logout notifies the upstream on a best-effort basis. A failed upstream
	// call is logged and swallowed: logout always succeeds locally, the
	// caller clears the credential pair unconditionally.
	Logout(ctx context.Context, token string)
	VerifyEmail(ctx context.Context, token string) (string, error)
}
