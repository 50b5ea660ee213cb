package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// UpsertFromAuth records the identity returned by a sign-in provider.
func (s *Service) UpsertFromAuth(ctx context.Context, user User) error {
	if s == nil || s.Repo == nil {
		return errors.New("users service not configured")
	}
	if strings.TrimSpace(user.ID) == "" || strings.TrimSpace(user.Email) == "" {
		return errors.New("user id and email are required")
	}
	return s.Repo.Upsert(ctx, user)
}

func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return User{}, errors.New("user id is required")
	}
	return s.Repo.GetByID(ctx, userID)
}

// SessionFor resolves the session for an already verified identity. A
// verified token whose user row is gone still yields a session built from
// the token claims.
func (s *Service) SessionFor(ctx context.Context, claimed User) (Session, error) {
	if strings.TrimSpace(claimed.ID) == "" {
		return Session{}, nil
	}
	user, err := s.GetByID(ctx, claimed.ID)
	switch {
	case err == nil:
		return Session{User: &user}, nil
	case errors.Is(err, ErrNotFound):
		return Session{User: &claimed}, nil
	default:
		return Session{}, fmt.Errorf("load session user: %w", err)
	}
}
