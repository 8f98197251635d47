package memory

import (
	"context"
	"fmt"
	"strings"

	"milling_aggregator/internal/domain/entities"
	"milling_aggregator/internal/usecase/interfaces"
)

type UserRepository struct {
	store *Store
}

var _ interfaces.IUserRepository = (*UserRepository)(nil)

func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) Create(ctx context.Context, u entities.User) (entities.User, error) {
	_ = ctx
	if u.ID == "" {
		return entities.User{}, fmt.Errorf("user repository: id is required")
	}
	email := strings.ToLower(u.Email)

	s := r.store
	unlock := s.locks.Lock(emailKey(email))
	defer unlock()

	s.mu.RLock()
	_, taken := s.userByEmail[email]
	_, exists := s.users[u.ID]
	s.mu.RUnlock()
	if taken || exists {
		return entities.User{}, interfaces.ErrConditionFailed
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
	s.userByEmail[email] = u.ID
	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (entities.User, error) {
	_ = ctx

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.users[id], nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (entities.User, error) {
	_ = ctx

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.userByEmail[strings.ToLower(email)]
	if !ok {
		return entities.User{}, nil
	}
	return s.users[id], nil
}
