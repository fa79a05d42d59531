package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/storefront/pkg/logger"
)

// Publisher wraps Kafka producer
type Publisher struct {
	producer sarama.SyncProducer
	brokers  []string
}

// NewPublisher creates a new Kafka publisher
func NewPublisher(brokers []string) (*Publisher, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Retry.Max = 3
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.MaxMessageBytes = 1000000

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	logger.Logger.Info().
		Strs("brokers", brokers).
		Msg("Kafka publisher initialized")

	return &Publisher{
		producer: producer,
		brokers:  brokers,
	}, nil
}

// PublishSessionLoggedOut publishes a session logged out event with tracing
func (p *Publisher) PublishSessionLoggedOut(ctx context.Context, event SessionLoggedOutEvent) error {
	tracer := otel.Tracer("kafka-publisher")
	ctx, span := tracer.Start(ctx, "kafka.publish.session_logged_out",
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination", TopicSessionLoggedOut),
			attribute.String("messaging.destination_kind", "topic"),
			attribute.String("event.type", EventTypeSessionLoggedOut),
			attribute.String("session.id", event.SessionID),
		),
	)
	defer span.End()

	if event.EventID == "" {
		event.EventID = fmt.Sprintf("evt_%s", uuid.New().String()[:12])
	}
	event.EventType = EventTypeSessionLoggedOut
	event.Timestamp = time.Now()

	span.SetAttributes(attribute.String("event.id", event.EventID))

	if err := p.publish(ctx, span, TopicSessionLoggedOut, EventTypeSessionLoggedOut, event.EventID, "session_"+event.SessionID, event); err != nil {
		return err
	}

	logger.Logger.Info().
		Str("event_id", event.EventID).
		Str("event_type", event.EventType).
		Str("topic", TopicSessionLoggedOut).
		Str("session_id", event.SessionID).
		Str("trace_id", span.SpanContext().TraceID().String()).
		Msg("Session logged out event published")

	return nil
}

// PublishCartCheckedOut publishes a cart checked out event with tracing
func (p *Publisher) PublishCartCheckedOut(ctx context.Context, event CartCheckedOutEvent) error {
	tracer := otel.Tracer("kafka-publisher")
	ctx, span := tracer.Start(ctx, "kafka.publish.cart_checked_out",
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination", TopicCartCheckedOut),
			attribute.String("messaging.destination_kind", "topic"),
			attribute.String("event.type", EventTypeCartCheckedOut),
			attribute.String("cart.owner_id", event.OwnerID),
			attribute.String("order.id", event.OrderID),
			attribute.Int("cart.total_items", event.TotalItems),
		),
	)
	defer span.End()

	if event.EventID == "" {
		event.EventID = fmt.Sprintf("evt_%s", uuid.New().String()[:12])
	}
	event.EventType = EventTypeCartCheckedOut
	event.Timestamp = time.Now()

	span.SetAttributes(attribute.String("event.id", event.EventID))

	if err := p.publish(ctx, span, TopicCartCheckedOut, EventTypeCartCheckedOut, event.EventID, "cart_"+event.OwnerID, event); err != nil {
		return err
	}

	logger.Logger.Info().
		Str("event_id", event.EventID).
		Str("event_type", event.EventType).
		Str("topic", TopicCartCheckedOut).
		Str("owner_id", event.OwnerID).
		Str("order_id", event.OrderID).
		Str("trace_id", span.SpanContext().TraceID().String()).
		Msg("Cart checked out event published")

	return nil
}

// publish marshals the event, injects trace context into Kafka headers and
// sends the message through the sync producer
func (p *Publisher) publish(ctx context.Context, span trace.Span, topic, eventType, eventID, key string, event any) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to marshal event")
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	// Inject trace context into Kafka headers
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	headers := []sarama.RecordHeader{
		{
			Key:   []byte("event_type"),
			Value: []byte(eventType),
		},
		{
			Key:   []byte("event_id"),
			Value: []byte(eventID),
		},
	}

	for k, v := range carrier {
		headers = append(headers, sarama.RecordHeader{
			Key:   []byte(k),
			Value: []byte(v),
		})
	}

	msg := &sarama.ProducerMessage{
		Topic:   topic,
		Key:     sarama.StringEncoder(key),
		Value:   sarama.ByteEncoder(eventBytes),
		Headers: headers,
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to send message")
		logger.Logger.Error().
			Err(err).
			Str("topic", topic).
			Str("event_id", eventID).
			Str("trace_id", span.SpanContext().TraceID().String()).
			Msg("Failed to publish event")
		return fmt.Errorf("failed to send message to Kafka: %w", err)
	}

	span.SetAttributes(
		attribute.Int("messaging.kafka.partition", int(partition)),
		attribute.Int64("messaging.kafka.offset", offset),
	)
	span.SetStatus(codes.Ok, "Event published successfully")

	return nil
}

// Close closes the Kafka producer
func (p *Publisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
