package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/nyasamarket/escrow-service/internal/domain"
)

// SettlementPublisher fans settlement events out to the notification
// subsystem. Delivery is best-effort by contract; callers publish after
// their transaction commits and log failures without escalating.
type SettlementPublisher struct {
	writer *kafka.Writer
}

func NewSettlementPublisher(brokers []string, topic string) *SettlementPublisher {
	return &SettlementPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// PublishSettlement keys messages by recipient so one user's
// notifications stay ordered.
func (p *SettlementPublisher) PublishSettlement(event domain.SettlementEvent) error {
	msg, err := json.Marshal(event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.RecipientUserID),
		Value: msg,
		Time:  time.Now(),
	})
}

func (p *SettlementPublisher) Close() error {
	return p.writer.Close()
}
