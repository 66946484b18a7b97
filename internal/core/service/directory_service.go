package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/markethub/admin-gateway/internal/api/metrics"
	"github.com/markethub/admin-gateway/internal/core/domain"
	"github.com/markethub/admin-gateway/internal/core/ports"
)

// DirectoryService manages user records through the upstream directory.
// It keeps a transient per-role roster: the last listed set of users,
// mutated optimistically when a create/update/delete is issued. When the
// upstream rejects the operation the roster is restored verbatim from the
// snapshot taken before the mutation: full restore, never a partial merge.
//
// The roster is a view cache, not a store of record; it is never persisted
// and a fresh List always overwrites it with the upstream's answer.
type DirectoryService struct {
	api ports.DirectoryAPI
	log zerolog.Logger

	mu     sync.Mutex
	roster map[domain.Role][]domain.User
}

func NewDirectoryService(api ports.DirectoryAPI, log zerolog.Logger) *DirectoryService {
	return &DirectoryService{
		api:    api,
		log:    log,
		roster: make(map[domain.Role][]domain.User),
	}
}

func cloneUsers(users []domain.User) []domain.User {
	if users == nil {
		return nil
	}
	out := make([]domain.User, len(users))
	copy(out, users)
	return out
}

// Roster returns a copy of the current roster for a role, and whether one
// has been populated. Intended for tests and diagnostics.
func (s *DirectoryService) Roster(role domain.Role) ([]domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users, ok := s.roster[role]
	return cloneUsers(users), ok
}

func (s *DirectoryService) List(ctx context.Context, token string, role domain.Role) ([]domain.User, error) {
	users, err := s.api.ListUsers(ctx, token, role)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.roster[role] = cloneUsers(users)
	s.mu.Unlock()
	return users, nil
}

func (s *DirectoryService) Get(ctx context.Context, token string, role domain.Role, id string) (*domain.User, error) {
	return s.api.GetUser(ctx, token, role, id)
}

// mutate snapshots the roster for a role and applies an optimistic change
// under a single critical section, so the snapshot and the written state
// can never be separated by a concurrent mutation on the same role. The
// returned snapshot is what restore puts back on rollback. tracked is
// false when no list has been fetched yet, in which case there is nothing
// to mutate or roll back.
func (s *DirectoryService) mutate(role domain.Role, apply func(users []domain.User) []domain.User) (prev []domain.User, tracked bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.roster[role]
	if !ok {
		return nil, false
	}
	prev = cloneUsers(cur)
	s.roster[role] = apply(cloneUsers(cur))
	return prev, true
}

func (s *DirectoryService) restore(role domain.Role, prev []domain.User, op string) {
	s.mu.Lock()
	s.roster[role] = prev
	s.mu.Unlock()
	metrics.RosterRollbacksTotal.WithLabelValues(op).Inc()
	s.log.Debug().Str("role", string(role)).Str("op", op).Msg("optimistic roster mutation rolled back")
}

func (s *DirectoryService) Create(ctx context.Context, token string, role domain.Role, in ports.UserInput) (*domain.User, error) {
	prev, tracked := s.mutate(role, func(users []domain.User) []domain.User {
		return append(users, domain.User{
			FirstName: in.FirstName,
			LastName:  in.LastName,
			Email:     in.Email,
			Role:      role,
		})
	})

	created, err := s.api.CreateUser(ctx, token, role, in)
	if err != nil {
		if tracked {
			s.restore(role, prev, "create")
		}
		return nil, err
	}

	if tracked {
		// Replace the pending entry with the record the upstream assigned.
		s.mu.Lock()
		s.roster[role] = append(cloneUsers(prev), *created)
		s.mu.Unlock()
	}
	return created, nil
}

func (s *DirectoryService) Update(ctx context.Context, token string, role domain.Role, id string, in ports.UserInput) (*domain.User, error) {
	prev, tracked := s.mutate(role, func(users []domain.User) []domain.User {
		for i := range users {
			if users[i].ID != id {
				continue
			}
			if in.FirstName != "" {
				users[i].FirstName = in.FirstName
			}
			if in.LastName != "" {
				users[i].LastName = in.LastName
			}
			if in.Email != "" {
				users[i].Email = in.Email
			}
		}
		return users
	})

	updated, err := s.api.UpdateUser(ctx, token, role, id, in)
	if err != nil {
		if tracked {
			s.restore(role, prev, "update")
		}
		return nil, err
	}

	if tracked {
		s.mu.Lock()
		next := cloneUsers(s.roster[role])
		for i := range next {
			if next[i].ID == id {
				next[i] = *updated
			}
		}
		s.roster[role] = next
		s.mu.Unlock()
	}
	return updated, nil
}

func (s *DirectoryService) Delete(ctx context.Context, token string, role domain.Role, id string) error {
	prev, tracked := s.mutate(role, func(users []domain.User) []domain.User {
		next := users[:0]
		for _, u := range users {
			if u.ID != id {
				next = append(next, u)
			}
		}
		return next
	})

	if err := s.api.DeleteUser(ctx, token, role, id); err != nil {
		if tracked {
			s.restore(role, prev, "delete")
		}
		return err
	}
	return nil
}
