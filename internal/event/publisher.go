package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lshigami/dailyquest/config"
	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

type Publisher interface {
	PublishMissionEvent(ctx context.Context, event *MissionEvent) error
	PublishArchiveEvent(ctx context.Context, event *ArchiveEvent) error
	PublishPracticeEvent(ctx context.Context, event *PracticeEvent) error
	Close() error
}

type EventPublisher struct {
	conn         *amqp091.Connection
	channel      *amqp091.Channel
	exchangeName string
	enabled      bool
}

// NewEventPublisher returns a disabled publisher when RABBITMQ_URI is empty.
func NewEventPublisher(cfg *config.Config) (*EventPublisher, error) {
	if cfg.RabbitMQ.URI == "" {
		log.Warn().Msg("RabbitMQ URI is empty, event publishing is disabled")
		return &EventPublisher{enabled: false}, nil
	}

	conn, err := amqp091.Dial(cfg.RabbitMQ.URI)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		cfg.RabbitMQ.Exchange,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	log.Info().Str("exchange", cfg.RabbitMQ.Exchange).Msg("Event publisher connected")
	return &EventPublisher{
		conn:         conn,
		channel:      channel,
		exchangeName: cfg.RabbitMQ.Exchange,
		enabled:      true,
	}, nil
}

func (p *EventPublisher) Enabled() bool {
	return p.enabled
}

func (p *EventPublisher) publishEvent(ctx context.Context, routingKey string, event any) error {
	if !p.enabled {
		log.Debug().Str("routingKey", routingKey).Msg("Event publishing is disabled, skipping event")
		return nil
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = p.channel.PublishWithContext(
		pubCtx,
		p.exchangeName,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	log.Debug().Str("routingKey", routingKey).Msg("Published event")
	return nil
}

func (p *EventPublisher) PublishMissionEvent(ctx context.Context, event *MissionEvent) error {
	return p.publishEvent(ctx, event.EventType, event)
}

func (p *EventPublisher) PublishArchiveEvent(ctx context.Context, event *ArchiveEvent) error {
	return p.publishEvent(ctx, event.EventType, event)
}

func (p *EventPublisher) PublishPracticeEvent(ctx context.Context, event *PracticeEvent) error {
	return p.publishEvent(ctx, event.EventType, event)
}

func (p *EventPublisher) Close() error {
	if !p.enabled {
		return nil
	}
	if err := p.channel.Close(); err != nil {
		log.Error().Err(err).Msg("Error closing RabbitMQ channel")
	}
	return p.conn.Close()
}
