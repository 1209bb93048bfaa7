package rewards

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// DefaultExchange receives reward events when none is configured.
const DefaultExchange = "familyhub.rewards"

// RoutingKey is the topic every grant is published under.
const RoutingKey = "reward.granted"

// publisher is the part of *amqp.Channel the granter uses.
type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Event is the message body published for a grant.
type Event struct {
	ID        string    `json:"id"`
	Grant     Grant     `json:"grant"`
	GrantedAt time.Time `json:"granted_at"`
}

// AMQPGranter publishes grants to a topic exchange for an external
// rewards service.
type AMQPGranter struct {
	conn     *amqp.Connection
	channel  publisher
	exchange string
	enabled  bool
	log      *zap.Logger
}

// NewAMQPGranter dials url and declares a durable topic exchange. An empty
// url returns a disabled granter that drops every grant.
func NewAMQPGranter(url, exchange string, log *zap.Logger) (*AMQPGranter, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if exchange == "" {
		exchange = DefaultExchange
	}
	if url == "" {
		log.Debug("AMQP url is empty, reward publishing is disabled")
		return &AMQPGranter{exchange: exchange, log: log}, nil
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	log.Info("reward publisher ready", zap.String("exchange", exchange))
	return &AMQPGranter{conn: conn, channel: ch, exchange: exchange, enabled: true, log: log}, nil
}

func newAMQPGranterWithChannel(ch publisher, exchange string, log *zap.Logger) *AMQPGranter {
	return &AMQPGranter{channel: ch, exchange: exchange, enabled: true, log: log}
}

// Enabled reports whether grants are actually published.
func (g *AMQPGranter) Enabled() bool { return g.enabled }

// Grant publishes g as a persistent JSON message.
func (g *AMQPGranter) Grant(ctx context.Context, gr Grant) error {
	if !g.enabled {
		g.log.Debug("reward publishing disabled, skipping grant", zap.String("user_id", gr.UserID))
		return nil
	}

	ev := Event{ID: uuid.NewString(), Grant: gr, GrantedAt: time.Now().UTC()}
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal reward event: %w", err)
	}

	err = g.channel.PublishWithContext(ctx,
		g.exchange, // exchange
		RoutingKey, // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    ev.ID,
			Timestamp:    ev.GrantedAt,
			Body:         body,
			Headers: amqp.Table{
				"event_type": RoutingKey,
				"user_id":    gr.UserID,
			},
		},
	)
	if err != nil {
		return fmt.Errorf("publish reward event: %w", err)
	}

	g.log.Info("reward event published",
		zap.String("event_id", ev.ID),
		zap.String("user_id", gr.UserID))
	return nil
}

// Close releases the channel and connection.
func (g *AMQPGranter) Close() error {
	if !g.enabled {
		return nil
	}
	if g.channel != nil {
		if err := g.channel.Close(); err != nil {
			g.log.Warn("close channel", zap.Error(err))
		}
	}
	if g.conn != nil {
		if err := g.conn.Close(); err != nil {
			return fmt.Errorf("close connection: %w", err)
		}
	}
	return nil
}
