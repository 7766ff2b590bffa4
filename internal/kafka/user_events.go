package kafka

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	appuser "assustadus/internal/app/user"
	"assustadus/internal/config"
	"assustadus/internal/logging"
)

const (
	UserCreatedType = "UserCreated"
	UserUpdatedType = "UserUpdated"
	UserDeletedType = "UserDeleted"
)

func UsersTopic(prefix string) string {
	return prefix + "users"
}

type userEvents struct {
	bus    Bus
	topic  string
	logger logging.Logger
}

var _ appuser.Events = (*userEvents)(nil)

func NewUserEvents(bus Bus, cfg config.KafkaConfig, logger logging.Logger) appuser.Events {
	return &userEvents{
		bus:    bus,
		topic:  UsersTopic(cfg.TopicPrefix),
		logger: logger.With("component", "user_events"),
	}
}

func (e *userEvents) UserCreated(ctx context.Context, u *appuser.UserDto) error {
	if err := e.bus.Publish(ctx, e.topic, UserCreatedType, u); err != nil {
		return fmt.Errorf("publish UserCreated: %w", err)
	}
	return nil
}

func (e *userEvents) UserUpdated(ctx context.Context, u *appuser.UserDto) error {
	if err := e.bus.Publish(ctx, e.topic, UserUpdatedType, u); err != nil {
		return fmt.Errorf("publish UserUpdated: %w", err)
	}
	return nil
}

func (e *userEvents) UserDeleted(ctx context.Context, id uuid.UUID) error {
	payload := appuser.DeletedUserDto{ID: id}

	if err := e.bus.Publish(ctx, e.topic, UserDeletedType, payload); err != nil {
		return fmt.Errorf("publish UserDeleted: %w", err)
	}
	return nil
}
