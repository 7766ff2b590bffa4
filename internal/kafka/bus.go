package kafka

import "context"

// Bus publishes typed events wrapped in an Envelope.
type Bus interface {
	Publish(ctx context.Context, topic string, msgType string, payload any) error
}
