package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 5 * time.Second

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// connector opens a fresh channel and returns it with the connection to close.
type connector func() (channel, io.Closer, error)

// AMQPPublisher publishes events to a RabbitMQ topic exchange using the
// event type as routing key. A closed channel or connection is redialed on
// the next publish.
type AMQPPublisher struct {
	exchange string
	connect  connector
	conn     io.Closer
	ch       channel
	logger   *slog.Logger
	mu       sync.Mutex
	closed   bool
}

// DialAMQP connects to the broker and declares the durable topic exchange.
func DialAMQP(url, exchange string, logger *slog.Logger) (*AMQPPublisher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	connect := func() (channel, io.Closer, error) {
		conn, err := amqp.Dial(url)
		if err != nil {
			return nil, nil, fmt.Errorf("dial rabbitmq: %w", err)
		}

		ch, err := conn.Channel()
		if err != nil {
			_ = conn.Close()
			return nil, nil, fmt.Errorf("open channel: %w", err)
		}

		if err := ch.ExchangeDeclare(
			exchange,
			"topic",
			true,  // durable
			false, // auto-deleted
			false, // internal
			false, // no-wait
			nil,
		); err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return nil, nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
		}
		return ch, conn, nil
	}

	ch, conn, err := connect()
	if err != nil {
		return nil, err
	}

	logger.Info("rabbitmq publisher ready", "exchange", exchange)

	p := newAMQPPublisher(ch, exchange, logger)
	p.conn = conn
	p.connect = connect
	return p, nil
}

func newAMQPPublisher(ch channel, exchange string, logger *slog.Logger) *AMQPPublisher {
	return &AMQPPublisher{
		exchange: exchange,
		ch:       ch,
		logger:   logger,
	}
}

// liveChannel returns the live channel, redialing when the previous one was dropped.
func (p *AMQPPublisher) liveChannel() (channel, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, fmt.Errorf("publisher closed")
	}
	if p.ch != nil {
		return p.ch, nil
	}
	if p.connect == nil {
		return nil, amqp.ErrClosed
	}

	ch, conn, err := p.connect()
	if err != nil {
		return nil, fmt.Errorf("reconnect rabbitmq: %w", err)
	}
	p.ch, p.conn = ch, conn
	p.logger.Info("rabbitmq publisher reconnected", "exchange", p.exchange)
	return ch, nil
}

// drop discards ch after the broker closed it, unless another publish already replaced it.
func (p *AMQPPublisher) drop(ch channel) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch != ch {
		return
	}
	_ = p.ch.Close()
	if p.conn != nil {
		_ = p.conn.Close()
	}
	p.ch, p.conn = nil, nil
}

// Publish sends event as a persistent JSON message.
func (p *AMQPPublisher) Publish(ctx context.Context, event ReportEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event.Type, err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		MessageId:    event.ID,
		Type:         string(event.Type),
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.OccurredAt,
	}

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	for attempt := 0; ; attempt++ {
		ch, err := p.liveChannel()
		if err != nil {
			return err
		}

		err = ch.PublishWithContext(
			publishCtx,
			p.exchange,
			string(event.Type),
			false, // mandatory
			false, // immediate
			msg,
		)
		if err == nil {
			break
		}
		if !errors.Is(err, amqp.ErrClosed) || attempt > 0 {
			return fmt.Errorf("publish to %s: %w", p.exchange, err)
		}

		p.logger.Warn("rabbitmq channel closed, redialing", "exchange", p.exchange)
		p.drop(ch)
	}

	p.logger.Debug("report event published",
		"event_id", event.ID,
		"type", event.Type,
		"report_id", event.ReportID,
	)
	return nil
}

// Close closes the channel and connection. It is safe to call more than once.
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
