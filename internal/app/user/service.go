package user

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"assustadus/internal/cache"
	dom "assustadus/internal/domain/user"
	"assustadus/internal/logging"
	"assustadus/internal/validation"
)

type Service interface {
	Create(ctx context.Context, input CreateUserInput) (*UserDto, error)
	List(ctx context.Context) ([]UserDto, error)
	GetByID(ctx context.Context, id uuid.UUID) (*UserDto, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*UserDto, error)
	Delete(ctx context.Context, id uuid.UUID) (*DeletedUserDto, error)
}

type service struct {
	repo        dom.Repository
	cache       cache.UserCache
	events      Events
	logger      logging.Logger
	cacheTTL    time.Duration
	uniqueEmail bool
}

const defaultUserCacheTTL = 5 * time.Minute

type Option func(*service)

// WithUniqueEmail rejects creates and updates whose email already belongs to
// another user.
func WithUniqueEmail(enabled bool) Option {
	return func(s *service) { s.uniqueEmail = enabled }
}

func WithCacheTTL(ttl time.Duration) Option {
	return func(s *service) {
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

func NewService(
	repo dom.Repository,
	cache cache.UserCache,
	events Events,
	logger logging.Logger,
	opts ...Option,
) Service {
	s := &service{
		repo:     repo,
		cache:    cache,
		events:   events,
		logger:   logger.With("component", "user_service"),
		cacheTTL: defaultUserCacheTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Create(ctx context.Context, input CreateUserInput) (*UserDto, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	if err := s.ensureEmailFree(ctx, input.Email, uuid.Nil); err != nil {
		return nil, err
	}

	u := &dom.User{
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Phone:     input.Phone,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		s.logger.Error("failed to create user", "error", err, "email", input.Email)
		return nil, fmt.Errorf("create user: %w", err)
	}

	dto := toDTO(u)
	s.cacheUser(ctx, dto)

	if err := s.events.UserCreated(ctx, dto); err != nil {
		s.logger.Error("failed to publish UserCreated event", "error", err, "id", dto.ID)
	}

	return dto, nil
}

func (s *service) List(ctx context.Context) ([]UserDto, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, fmt.Errorf("list users: %w", err)
	}

	return toDTOs(users), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*UserDto, error) {
	// 1) Check cache
	if data, err := s.cache.GetByID(ctx, id); err == nil && data != nil {
		var dto UserDto
		if err := json.Unmarshal(data, &dto); err == nil {
			return &dto, nil
		}
		// If unmarshal fails, log and fall through to DB
		s.logger.Error("failed to unmarshal user from cache", "error", err, "id", id)
	} else if err != nil {
		s.logger.Error("failed to get user from cache", "error", err, "id", id)
	}

	// 2) Fallback to DB
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	dto := toDTO(u)

	// 3) Write to cache (best-effort)
	s.cacheUser(ctx, dto)

	return dto, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*UserDto, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	if input.Email != nil {
		if err := s.ensureEmailFree(ctx, *input.Email, id); err != nil {
			return nil, err
		}
	}

	u, err := s.repo.Update(ctx, id, input.patch())
	if err != nil {
		if IsNotFound(err) {
			return nil, err
		}
		s.logger.Error("failed to update user", "error", err, "id", id)
		return nil, fmt.Errorf("update user: %w", err)
	}

	dto := toDTO(u)
	s.evict(ctx, id)

	if err := s.events.UserUpdated(ctx, dto); err != nil {
		s.logger.Error("failed to publish UserUpdated event", "error", err, "id", dto.ID)
	}

	return dto, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) (*DeletedUserDto, error) {
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}

	s.evict(ctx, id)

	if err := s.events.UserDeleted(ctx, id); err != nil {
		s.logger.Error("failed to publish UserDeleted event", "error", err, "id", id)
	}

	return &DeletedUserDto{ID: id}, nil
}

// ensureEmailFree is a no-op unless the uniqueness check is enabled. self is
// the user being updated, or uuid.Nil on create.
func (s *service) ensureEmailFree(ctx context.Context, email string, self uuid.UUID) error {
	if !s.uniqueEmail {
		return nil
	}

	existing, err := s.repo.GetByEmail(ctx, email)
	switch {
	case IsNotFound(err):
		return nil
	case err != nil:
		return fmt.Errorf("check email: %w", err)
	case existing.ID != self:
		return dom.ErrEmailConflict
	default:
		return nil
	}
}

func (s *service) cacheUser(ctx context.Context, dto *UserDto) {
	data, err := json.Marshal(dto)
	if err != nil {
		s.logger.Error("failed to marshal user for cache", "error", err, "id", dto.ID)
		return
	}
	if err := s.cache.Set(ctx, dto.ID, data, s.cacheTTL); err != nil {
		s.logger.Error("failed to set user cache", "error", err, "id", dto.ID)
	}
}

func (s *service) evict(ctx context.Context, id uuid.UUID) {
	if err := s.cache.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete user cache", "error", err, "id", id)
	}
}
