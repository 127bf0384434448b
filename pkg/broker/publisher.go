package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Publisher sends JSON events to a named queue.
type Publisher interface {
	Publish(ctx context.Context, queue string, event any) error
	Close() error
}

type rabbitPublisher struct {
	url  string
	log  *zap.Logger
	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel

	declared map[string]bool
}

// NewRabbitPublisher dials lazily on first publish and redials after a broken connection.
func NewRabbitPublisher(url string, log *zap.Logger) Publisher {
	return &rabbitPublisher{
		url:      url,
		log:      log.With(zap.String("component", "broker")),
		declared: make(map[string]bool),
	}
}

func (p *rabbitPublisher) Publish(ctx context.Context, queue string, event any) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel()
	if err != nil {
		return err
	}

	if !p.declared[queue] {
		// durable so messages survive broker restarts
		if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			p.reset()
			return fmt.Errorf("declare queue %s: %w", queue, err)
		}
		p.declared[queue] = true
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx, "", queue, false, false, pub); err != nil {
		p.reset()
		return fmt.Errorf("publish to %s: %w", queue, err)
	}

	return nil
}

func (p *rabbitPublisher) channel() (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	p.reset()

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	p.conn, p.ch = conn, ch
	p.log.Info("Connected to RabbitMQ")
	return ch, nil
}

func (p *rabbitPublisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
	p.conn, p.ch = nil, nil
	clear(p.declared)
}

func (p *rabbitPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reset()
	return nil
}

type nopPublisher struct {
	log *zap.Logger
}

// NewNopPublisher drops events; used when RABBITMQ_URL is not set.
func NewNopPublisher(log *zap.Logger) Publisher {
	return &nopPublisher{log: log}
}

func (p *nopPublisher) Publish(_ context.Context, queue string, _ any) error {
	p.log.Debug("Event dropped, no broker configured", zap.String("queue", queue))
	return nil
}

func (p *nopPublisher) Close() error {
	return nil
}
