package user

import (
	"context"

	"github.com/google/uuid"
)

type Events interface {
	UserCreated(ctx context.Context, u *UserDto) error
	UserUpdated(ctx context.Context, u *UserDto) error
	UserDeleted(ctx context.Context, id uuid.UUID) error
}

// NoopEvents No-op implementation, used when Kafka is disabled.
type NoopEvents struct{}

func (NoopEvents) UserCreated(ctx context.Context, u *UserDto) error   { return nil }
func (NoopEvents) UserUpdated(ctx context.Context, u *UserDto) error   { return nil }
func (NoopEvents) UserDeleted(ctx context.Context, id uuid.UUID) error { return nil }
