package service

import (
	"context"
	"errors"
	"log"
)

var (
	ErrBookingNotFound  = errors.New("booking not found")
	ErrPaymentNotFound  = errors.New("payment entry not found")
	ErrInvalidSetting   = errors.New("unknown setting key")
	ErrContractNotFound = errors.New("contract has not been generated")
	ErrInvalidFormat    = errors.New("unsupported report format")
	ErrInvalidImage     = errors.New("invalid signature image")
	ErrUnknownMessage   = errors.New("unknown message kind")
	ErrNoPhone          = errors.New("guest has no usable phone number")
)

// Publisher is the message bus the services announce results on.
// *rabbitmq.Publisher satisfies it.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

func publish(ctx context.Context, p Publisher, routingKey string, payload any) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, routingKey, payload); err != nil {
		log.Printf("[Publisher] %s not published: %v", routingKey, err)
	}
}
