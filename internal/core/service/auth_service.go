package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/markethub/admin-gateway/internal/core/domain"
	"github.com/markethub/admin-gateway/internal/core/ports"
)

// AuthService implements the authentication funnel against the upstream
// marketplace API. It holds no state: credentials live in the store, not
// here.
type AuthService struct {
	api ports.AuthAPI
	log zerolog.Logger
}

func NewAuthService(api ports.AuthAPI, log zerolog.Logger) *AuthService {
	return &AuthService{api: api, log: log}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (string, error) {
	msg, err := s.api.Register(ctx, in)
	if err != nil {
		return "", err
	}
	if msg == "" {
		msg = "Registration successful. Please check your email to verify your account."
	}
	return msg, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	res, err := s.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if res.Message == "" {
		res.Message = "Login successful."
	}
	return res, nil
}

// Logout notifies the upstream and swallows any failure: logging out must
// never strand the caller in an authenticated-looking state, so the local
// credential cleanup (done by the handler) proceeds regardless.
func (s *AuthService) Logout(ctx context.Context, token string) {
	if token == "" {
		return
	}
	if err := s.api.Logout(ctx, token); err != nil {
		s.log.Warn().Err(err).Msg("upstream logout failed; local logout proceeds")
	}
}

func (s *AuthService) VerifyEmail(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", domain.ErrVerificationExpired
	}
	msg, err := s.api.VerifyEmail(ctx, token)
	if err != nil {
		return "", err
	}
	if msg == "" {
		msg = "Email verification successful."
	}
	return msg, nil
}
