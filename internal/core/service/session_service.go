package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/markethub/admin-gateway/internal/core/domain"
	"github.com/markethub/admin-gateway/internal/core/ports"
)

// SessionService resolves a session credential into the caller's identity
// with exactly one upstream round trip. It never retries: a failed
// resolution is final for the request that asked.
type SessionService struct {
	api ports.AuthAPI
	log zerolog.Logger
}

func NewSessionService(api ports.AuthAPI, log zerolog.Logger) *SessionService {
	return &SessionService{api: api, log: log}
}

// Resolve exchanges the credential for a profile. An empty token fails fast
// with ErrUnauthenticated and no upstream call. Every other failure (401,
// transport error, malformed payload) collapses into ErrSessionInvalid:
// the caller must treat the credential as dead and clear both copies.
func (s *SessionService) Resolve(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}

	profile, err := s.api.Profile(ctx, token)
	if err != nil {
		if !errors.Is(err, domain.ErrSessionInvalid) {
			s.log.Warn().Err(err).Msg("profile fetch failed; invalidating session")
		}
		return nil, domain.ErrSessionInvalid
	}

	// A profile without a known role is a malformed payload; the role is
	// the one field every authorization decision depends on.
	if !profile.Role.Valid() {
		s.log.Warn().Str("role", string(profile.Role)).Msg("profile carries unknown role; invalidating session")
		return nil, domain.ErrSessionInvalid
	}

	return profile, nil
}
