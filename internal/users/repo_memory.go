package users

import (
	"context"
	"strings"
	"sync"
	"time"
)

// MemoryRepo keeps users in process memory for runs without DATABASE_URL.
// Rows do not survive a restart.
type MemoryRepo struct {
	mu    sync.RWMutex
	rows  map[string]User
	clock func() time.Time
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{rows: make(map[string]User), clock: time.Now}
}

// Upsert stores user, keeping the first CreatedAt seen for its ID.
func (r *MemoryRepo) Upsert(ctx context.Context, user User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(user.ID) == "" {
		return ErrMissingID
	}
	now := r.clock().UTC()

	r.mu.Lock()
	defer r.mu.Unlock()
	user.CreatedAt = now
	if prev, ok := r.rows[user.ID]; ok {
		user.CreatedAt = prev.CreatedAt
	}
	user.UpdatedAt = now
	r.rows[user.ID] = user
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, userID string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	user, ok := r.rows[userID]
	r.mu.RUnlock()
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}
