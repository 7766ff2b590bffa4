// Package memory holds map-backed repositories for tests and local runs
// without a database.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	dom "assustadus/internal/domain/user"
)

// UserRepository is an in-memory implementation of dom.Repository.
type UserRepository struct {
	mu    sync.RWMutex
	order []uuid.UUID
	store map[uuid.UUID]*dom.User
	now   func() time.Time
}

var _ dom.Repository = (*UserRepository)(nil)

func NewUserRepository() *UserRepository {
	return &UserRepository{
		store: make(map[uuid.UUID]*dom.User),
		now:   time.Now,
	}
}

// timestamp never goes backwards relative to prev, so an update always moves
// UpdatedAt forward.
func (r *UserRepository) timestamp(prev time.Time) time.Time {
	t := r.now().UTC().Truncate(time.Microsecond)
	if !t.After(prev) {
		t = prev.Add(time.Microsecond)
	}
	return t
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*dom.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.store[id]
	if !ok {
		return nil, dom.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*dom.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if u := r.store[id]; u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, dom.ErrNotFound
}

func (r *UserRepository) List(ctx context.Context) ([]dom.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make([]dom.User, 0, len(r.order))
	for _, id := range r.order {
		res = append(res, *r.store[id])
	}
	return res, nil
}

func (r *UserRepository) Create(ctx context.Context, u *dom.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u.ID = uuid.New()
	u.CreatedAt = r.timestamp(time.Time{})
	u.UpdatedAt = u.CreatedAt

	cp := *u
	r.store[cp.ID] = &cp
	r.order = append(r.order, cp.ID)
	return nil
}

func (r *UserRepository) Update(ctx context.Context, id uuid.UUID, patch dom.Patch) (*dom.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.store[id]
	if !ok {
		return nil, dom.ErrNotFound
	}

	updated := patch.Apply(*u)
	updated.UpdatedAt = r.timestamp(u.UpdatedAt)
	r.store[id] = &updated

	cp := updated
	return &cp, nil
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[id]; !ok {
		return dom.ErrNotFound
	}
	delete(r.store, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
