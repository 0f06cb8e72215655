package consumer

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/Eursukkul/rental-backoffice/internal/service"
	amqp "github.com/rabbitmq/amqp091-go"
)

const sendTimeout = 30 * time.Second

// Sender delivers a text message to a phone number. *whatsapp.Client satisfies it.
type Sender interface {
	SendText(ctx context.Context, phone, body string) error
}

// Acknowledger is the part of amqp.Delivery the consumer settles messages with.
type Acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

type NotificationConsumer struct {
	sender Sender
}

func NewNotificationConsumer(sender Sender) *NotificationConsumer {
	return &NotificationConsumer{sender: sender}
}

// Start delivers queued WhatsApp messages until msgs is closed.
func (nc *NotificationConsumer) Start(msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			nc.handle(msg.Body, &msg)
		}
		log.Println("[NotificationConsumer] channel closed, stopping consumer")
	}()
}

func (nc *NotificationConsumer) handle(body []byte, ack Acknowledger) {
	var m service.Message
	if err := json.Unmarshal(body, &m); err != nil {
		log.Printf("[NotificationConsumer] failed to unmarshal: %v", err)
		ack.Nack(false, false)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	if err := nc.sender.SendText(ctx, m.Phone, m.Text); err != nil {
		// Delivery errors are not retried; the operator still has the wa.me link.
		log.Printf("[NotificationConsumer] booking %d: %s message not delivered: %v", m.BookingID, m.Kind, err)
		ack.Nack(false, false)
		return
	}

	log.Printf("[NotificationConsumer] booking %d: %s message sent to %s", m.BookingID, m.Kind, m.Phone)
	ack.Ack(false)
}
