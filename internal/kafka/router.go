package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/ThreeDotsLabs/watermill-kafka/v3/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/garsue/watermillzap"

	"assustadus/internal/config"
	"assustadus/internal/logging"
)

type Router struct {
	router *message.Router
}

func NewRouter(
	ctx context.Context,
	cfg config.KafkaConfig,
	baseLogger logging.Logger,
) (*Router, error) {
	if !cfg.Enabled {
		return &Router{router: nil}, nil
	}

	wmlogger := watermillzap.NewLogger(logging.AsZap(baseLogger))

	subCfg := kafka.SubscriberConfig{
		Brokers:       cfg.Brokers,
		Unmarshaler:   kafka.DefaultMarshaler{},
		ConsumerGroup: cfg.GroupID,
		OverwriteSaramaConfig: func() *sarama.Config {
			c := kafka.DefaultSaramaSubscriberConfig()
			c.ClientID = cfg.ClientID
			return c
		}(),
		InitializeTopicDetails: &sarama.TopicDetail{
			NumPartitions:     3,
			ReplicationFactor: 1,
		},
		NackResendSleep:     5 * time.Second,
		ReconnectRetrySleep: 10 * time.Second,
	}

	subscriber, err := kafka.NewSubscriber(subCfg, wmlogger)
	if err != nil {
		return nil, fmt.Errorf("create kafka subscriber: %w", err)
	}

	return NewSubscriberRouter(subscriber, UsersTopic(cfg.TopicPrefix), baseLogger)
}

// NewSubscriberRouter wires the user audit handler to topic on any Watermill
// subscriber.
func NewSubscriberRouter(subscriber message.Subscriber, topic string, baseLogger logging.Logger) (*Router, error) {
	wmlogger := watermillzap.NewLogger(logging.AsZap(baseLogger))

	router, err := message.NewRouter(message.RouterConfig{}, wmlogger)
	if err != nil {
		return nil, fmt.Errorf("create watermill router: %w", err)
	}

	router.AddNoPublisherHandler(
		"user-audit-handler",
		topic,
		subscriber,
		AuditUserEvent(baseLogger.With("component", "user_audit", "topic", topic)),
	)

	return &Router{router: router}, nil
}

// AuditUserEvent logs the type and user id of every user lifecycle event.
// Undecodable messages are logged and acked so they do not block the
// partition.
func AuditUserEvent(logger logging.Logger) message.NoPublishHandlerFunc {
	return func(msg *message.Message) error {
		env, err := DecodeEnvelope(msg)
		if err != nil {
			logger.Error("dropping undecodable message", "uuid", msg.UUID, "error", err)
			return nil
		}

		var ref struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(env.Payload, &ref); err != nil {
			logger.Error("dropping message with bad payload", "uuid", msg.UUID, "type", env.Type, "error", err)
			return nil
		}

		logger.Info("user event",
			"type", env.Type,
			"user_id", ref.ID,
			"message_id", env.MessageID,
			"correlation_id", env.CorrelationID,
			"occurred_at", env.OccurredAt,
		)
		return nil
	}
}

// Running is closed once the router has started its handlers.
func (r *Router) Running() chan struct{} {
	if r.router == nil {
		ch := make(chan struct{})
		close(ch)
		return ch
	}
	return r.router.Running()
}

func (r *Router) Run(ctx context.Context) error {
	if r.router == nil {
		return nil // Kafka disabled
	}
	return r.router.Run(ctx)
}

func (r *Router) Close(ctx context.Context) error {
	if r.router == nil {
		return nil
	}
	return r.router.Close()
}
