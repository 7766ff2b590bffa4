package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"assustadus/internal/db"
	"assustadus/internal/domain/common"
	dom "assustadus/internal/domain/user"
	"assustadus/internal/logging"
)

var _ dom.Repository = (*UserRepository)(nil)

type UserRepository struct {
	users  *db.Table[userRow]
	now    func() time.Time
	newID  func() uuid.UUID
	logger logging.Logger
}

type Option func(*UserRepository)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(r *UserRepository) { r.now = now }
}

// WithIDGenerator overrides the id source.
func WithIDGenerator(newID func() uuid.UUID) Option {
	return func(r *UserRepository) { r.newID = newID }
}

func NewUserRepository(client *db.Client, logger logging.Logger, opts ...Option) *UserRepository {
	r := &UserRepository{
		users:  db.NewTable[userRow](client, usersTable, userColumns...),
		now:    time.Now,
		newID:  uuid.New,
		logger: logger.With("component", "user_repo"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// timestamp is truncated to the precision PostgreSQL keeps, so the value
// handed back to callers equals what a later read returns.
func (r *UserRepository) timestamp() time.Time {
	return r.now().UTC().Truncate(time.Microsecond)
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*dom.User, error) {
	row, err := r.users.FindUnique(ctx, db.Where{colID: id})
	if err != nil {
		return nil, r.mapError("get user", err)
	}
	return toDomainUser(row), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*dom.User, error) {
	row, err := r.users.FindUnique(ctx, db.Where{colEmail: email})
	if err != nil {
		return nil, r.mapError("get user by email", err)
	}
	return toDomainUser(row), nil
}

func (r *UserRepository) List(ctx context.Context) ([]dom.User, error) {
	rows, err := r.users.FindMany(ctx, nil, colCreatedAt, colID)
	if err != nil {
		return nil, r.mapError("list users", err)
	}
	return toDomainUsers(rows), nil
}

func (r *UserRepository) Create(ctx context.Context, u *dom.User) error {
	now := r.timestamp()

	created, err := r.users.Create(ctx, db.Data{
		colID:        r.newID(),
		colEmail:     u.Email,
		colFirstName: u.FirstName,
		colLastName:  u.LastName,
		colPhone:     u.Phone,
		colCreatedAt: now,
		colUpdatedAt: now,
	})
	if err != nil {
		return r.mapError("create user", err)
	}

	*u = *toDomainUser(created)
	return nil
}

func (r *UserRepository) Update(ctx context.Context, id uuid.UUID, patch dom.Patch) (*dom.User, error) {
	data := patchData(patch)
	data[colUpdatedAt] = db.Later(colUpdatedAt, r.timestamp())

	updated, err := r.users.Update(ctx, db.Where{colID: id}, data)
	if err != nil {
		return nil, r.mapError("update user", err)
	}
	return toDomainUser(updated), nil
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.users.Delete(ctx, db.Where{colID: id}); err != nil {
		return r.mapError("delete user", err)
	}
	return nil
}

func (r *UserRepository) mapError(op string, err error) error {
	switch {
	case db.IsNoRows(err):
		return dom.ErrNotFound
	case db.IsUniqueViolation(err, colEmail):
		return dom.ErrEmailConflict
	default:
		r.logger.Error("store failure", "op", op, "error", err)
		return common.NewStoreError(op, err)
	}
}
