package producer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

// EmailProducer публикует события писем в Kafka; реальную отправку делает
// внешний консьюмер нотификаций.
type EmailProducer struct {
	writer *kafka.Writer
}

func NewEmailProducer(brokers []string, topic string) *EmailProducer {
	return &EmailProducer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireAll,
		},
	}
}

type EmailMessage struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject"`
	Template string         `json:"template"`
	Data     map[string]any `json:"data"`
}

func (p *EmailProducer) send(ctx context.Context, key string, msg EmailMessage) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	value, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
	})
}

func (p *EmailProducer) SendWelcome(ctx context.Context, email, firstName string) error {
	return p.send(ctx, email, EmailMessage{
		To:       email,
		Subject:  "Welcome to Stilora",
		Template: "welcome",
		Data:     map[string]any{"firstName": firstName},
	})
}

func (p *EmailProducer) SendPasswordReset(ctx context.Context, email, code string) error {
	return p.send(ctx, email, EmailMessage{
		To:       email,
		Subject:  "Password reset",
		Template: "password_reset",
		Data:     map[string]any{"code": code},
	})
}

func (p *EmailProducer) SendOrderConfirmation(ctx context.Context, email, orderNumber string, total float64) error {
	return p.send(ctx, email, EmailMessage{
		To:       email,
		Subject:  "Order confirmation " + orderNumber,
		Template: "order_confirmation",
		Data:     map[string]any{"orderNumber": orderNumber, "total": total},
	})
}

func (p *EmailProducer) Close() error {
	return p.writer.Close()
}
