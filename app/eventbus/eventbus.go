package eventbus

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wmnats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	nc "github.com/nats-io/nats.go"
)

// EventBus publishes and subscribes to watermill messages.
type EventBus interface {
	message.Publisher
	message.Subscriber
}

// natsBus pairs a watermill-nats publisher and subscriber.
type natsBus struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	logger     *slog.Logger
}

// New returns a NATS-backed bus for natsURL, or an in-process bus when the
// URL is empty.
func New(ctx context.Context, natsURL, clientName string, logger *slog.Logger) (EventBus, error) {
	if natsURL == "" {
		logger.InfoContext(ctx, "NATS URL not configured, using in-process event bus")
		return NewInProcess(logger), nil
	}
	return NewNATS(ctx, natsURL, clientName, logger)
}

// NewNATS connects a publisher and a queue-group subscriber to natsURL.
// Delivery is core NATS, at most once.
func NewNATS(ctx context.Context, natsURL, clientName string, logger *slog.Logger) (EventBus, error) {
	wmLogger := watermill.NewSlogLogger(logger)
	marshaler := &wmnats.NATSMarshaler{}

	options := []nc.Option{
		nc.Name(clientName),
		nc.RetryOnFailedConnect(true),
		nc.MaxReconnects(-1),
		nc.ReconnectWait(2 * time.Second),
		nc.DisconnectErrHandler(func(_ *nc.Conn, err error) {
			if err != nil {
				logger.Warn("Disconnected from NATS", slog.String("error", err.Error()))
			}
		}),
		nc.ReconnectHandler(func(conn *nc.Conn) {
			logger.Info("Reconnected to NATS", slog.String("url", conn.ConnectedUrl()))
		}),
	}
	jsConfig := wmnats.JetStreamConfig{Disabled: true}

	publisher, err := wmnats.NewPublisher(wmnats.PublisherConfig{
		URL:         natsURL,
		NatsOptions: options,
		Marshaler:   marshaler,
		JetStream:   jsConfig,
	}, wmLogger)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to create Watermill publisher", slog.Any("error", err))
		return nil, fmt.Errorf("failed to create Watermill publisher: %w", err)
	}

	subscriber, err := wmnats.NewSubscriber(wmnats.SubscriberConfig{
		URL:              natsURL,
		QueueGroupPrefix: clientName,
		SubscribersCount: 1,
		CloseTimeout:     30 * time.Second,
		AckWaitTimeout:   30 * time.Second,
		NatsOptions:      options,
		Unmarshaler:      marshaler,
		JetStream:        jsConfig,
	}, wmLogger)
	if err != nil {
		_ = publisher.Close()
		logger.ErrorContext(ctx, "Failed to create Watermill subscriber", slog.Any("error", err))
		return nil, fmt.Errorf("failed to create Watermill subscriber: %w", err)
	}

	logger.InfoContext(ctx, "Connected event bus to NATS", slog.String("url", natsURL))
	return &natsBus{
		publisher:  publisher,
		subscriber: subscriber,
		logger:     logger,
	}, nil
}

// NewInProcess returns a GoChannel bus. Messages never leave the process.
func NewInProcess(logger *slog.Logger) EventBus {
	return gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: 256,
	}, watermill.NewSlogLogger(logger))
}

func (b *natsBus) Publish(topic string, messages ...*message.Message) error {
	for _, msg := range messages {
		if msg.UUID == "" {
			msg.UUID = watermill.NewUUID()
		}
		b.logger.Debug("Publishing message",
			slog.String("topic", topic),
			slog.String("message_id", msg.UUID),
		)
	}
	return b.publisher.Publish(topic, messages...)
}

func (b *natsBus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	b.logger.InfoContext(ctx, "Subscribing to topic", slog.String("topic", topic))
	return b.subscriber.Subscribe(ctx, topic)
}

// Close closes the subscriber first so in-flight handlers drain before the
// publisher goes away.
func (b *natsBus) Close() error {
	subErr := b.subscriber.Close()
	pubErr := b.publisher.Close()
	if subErr != nil {
		return fmt.Errorf("failed to close subscriber: %w", subErr)
	}
	if pubErr != nil {
		return fmt.Errorf("failed to close publisher: %w", pubErr)
	}
	return nil
}
