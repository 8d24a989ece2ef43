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

// Publisher wraps a Kafka sync producer. A nil *Publisher is valid and
// drops every event, so callers never need to guard for a missing broker.
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

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	logger.Logger.Info().
		Strs("brokers", brokers).
		Msg("Kafka publisher initialized")

	return &Publisher{producer: producer, brokers: brokers}, nil
}

// PublishUserRegistered publishes a user registration event
func (p *Publisher) PublishUserRegistered(ctx context.Context, event UserRegisteredEvent) error {
	event.EventType = EventTypeUserRegistered
	return p.publish(ctx, TopicUserRegistered, fmt.Sprintf("user_%d", event.UserID),
		event.EventType, &event.EventID, &event.Timestamp, &event)
}

// PublishProductCreated publishes a product creation event
func (p *Publisher) PublishProductCreated(ctx context.Context, event ProductCreatedEvent) error {
	event.EventType = EventTypeProductCreated
	return p.publish(ctx, TopicProductCreated, fmt.Sprintf("product_%d", event.ProductID),
		event.EventType, &event.EventID, &event.Timestamp, &event)
}

// PublishReviewCreated publishes a review creation event
func (p *Publisher) PublishReviewCreated(ctx context.Context, event ReviewCreatedEvent) error {
	event.EventType = EventTypeReviewCreated
	return p.publish(ctx, TopicReviewCreated, fmt.Sprintf("product_%d", event.ProductID),
		event.EventType, &event.EventID, &event.Timestamp, &event)
}

func (p *Publisher) publish(ctx context.Context, topic, key, eventType string, eventID *string, timestamp *time.Time, payload interface{}) error {
	if p == nil {
		return nil
	}

	tracer := otel.Tracer("kafka-publisher")
	ctx, span := tracer.Start(ctx, "kafka.publish."+eventType,
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination", topic),
			attribute.String("event.type", eventType),
		),
	)
	defer span.End()

	if *eventID == "" {
		*eventID = uuid.NewString()
	}
	*timestamp = time.Now()
	span.SetAttributes(attribute.String("event.id", *eventID))

	eventBytes, err := json.Marshal(payload)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to marshal event")
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	// Propagate trace context through message headers
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	headers := []sarama.RecordHeader{
		{Key: []byte("event_type"), Value: []byte(eventType)},
		{Key: []byte("event_id"), Value: []byte(*eventID)},
	}
	for k, v := range carrier {
		headers = append(headers, sarama.RecordHeader{Key: []byte(k), Value: []byte(v)})
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
			Str("event_id", *eventID).
			Msg("Failed to publish event")
		return fmt.Errorf("failed to publish event: %w", err)
	}

	span.SetAttributes(
		attribute.Int64("messaging.kafka.partition", int64(partition)),
		attribute.Int64("messaging.kafka.offset", offset),
	)
	logger.Logger.Info().
		Str("topic", topic).
		Str("event_id", *eventID).
		Int32("partition", partition).
		Int64("offset", offset).
		Msg("Event published")
	return nil
}

// Close shuts down the producer
func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	return p.producer.Close()
}
