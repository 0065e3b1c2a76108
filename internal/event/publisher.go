package event

import (
	"encoding/json"
	"time"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

// Routing keys on the topic exchange.
const (
	SkillValidated  = "skill.validated"
	BadgeUnlocked   = "badge.unlocked"
	CourseCompleted = "course.completed"
)

// Publisher emits domain events to a topic exchange. A nil Publisher is
// valid and drops everything, so callers never guard on AMQP being
// configured.
type Publisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	logger   *zap.Logger
}

func NewPublisher(amqpURL, exchange string, logger *zap.Logger) (*Publisher, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	return &Publisher{conn: conn, channel: ch, exchange: exchange, logger: logger}, nil
}

// Publish sends the payload with the event type as routing key. Failures
// are logged, never surfaced: events are best effort and must not break
// the request that produced them.
func (p *Publisher) Publish(eventType string, payload interface{}) {
	if p == nil {
		return
	}
	body, err := json.Marshal(map[string]interface{}{
		"type":      eventType,
		"emittedAt": time.Now().UTC(),
		"payload":   payload,
	})
	if err != nil {
		p.logger.Error("marshal event", zap.String("type", eventType), zap.Error(err))
		return
	}
	err = p.channel.Publish(p.exchange, eventType, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		p.logger.Error("publish event", zap.String("type", eventType), zap.Error(err))
		return
	}
	p.logger.Debug("event published", zap.String("type", eventType))
}

func (p *Publisher) Close() {
	if p == nil {
		return
	}
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}
