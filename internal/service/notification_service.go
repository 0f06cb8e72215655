package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/Eursukkul/rental-backoffice/internal/contract"
	"github.com/Eursukkul/rental-backoffice/internal/repository"
	"github.com/Eursukkul/rental-backoffice/pkg/rabbitmq"
	"github.com/Eursukkul/rental-backoffice/pkg/whatsapp"
	"gorm.io/gorm"
)

const (
	MessageConfirmation = "confirmation"
	MessageReminder     = "reminder"
	MessageContract     = "contract"
)

var messageSettings = map[string]string{
	MessageConfirmation: SettingWhatsAppConfirmation,
	MessageReminder:     SettingWhatsAppReminder,
	MessageContract:     SettingWhatsAppContract,
}

// Message is a WhatsApp message for a guest. It is also the payload of
// notification.whatsapp events.
type Message struct {
	BookingID uint     `json:"booking_id"`
	Kind      string   `json:"kind"`
	Phone     string   `json:"phone"`
	Text      string   `json:"text"`
	Link      string   `json:"link"`
	Missing   []string `json:"missing,omitempty"`
}

type NotificationService interface {
	Send(ctx context.Context, bookingID uint, kind string) (*Message, error)
}

type notificationService struct {
	bookingRepo repository.BookingRepository
	paymentRepo repository.PaymentRepository
	settings    SettingsService
	resolver    *contract.Resolver
	publisher   Publisher
}

func NewNotificationService(
	bookingRepo repository.BookingRepository,
	paymentRepo repository.PaymentRepository,
	settings SettingsService,
	resolver *contract.Resolver,
	publisher Publisher,
) NotificationService {
	return &notificationService{
		bookingRepo: bookingRepo,
		paymentRepo: paymentRepo,
		settings:    settings,
		resolver:    resolver,
		publisher:   publisher,
	}
}

// Send renders the message template for kind and queues it for delivery. The
// returned link lets the operator send it by hand from WhatsApp.
func (s *notificationService) Send(ctx context.Context, bookingID uint, kind string) (*Message, error) {
	key, ok := messageSettings[kind]
	if !ok {
		return nil, ErrUnknownMessage
	}

	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	if booking.Guest == nil || whatsapp.NormalizePhone(booking.Guest.Phone) == "" {
		return nil, ErrNoPhone
	}

	entries, err := s.paymentRepo.FindByBooking(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}
	tmpl, err := s.settings.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	sub := contract.Substitute(tmpl, s.resolver.Resolve(booking, entries))
	if !sub.Complete() {
		log.Printf("[NotificationService] %s template references unknown placeholders %v", kind, sub.Missing)
	}

	msg := &Message{
		BookingID: bookingID,
		Kind:      kind,
		Phone:     whatsapp.NormalizePhone(booking.Guest.Phone),
		Text:      sub.Text,
		Link:      whatsapp.Link(booking.Guest.Phone, sub.Text),
		Missing:   sub.Missing,
	}
	publish(ctx, s.publisher, rabbitmq.RoutingWhatsApp, msg)
	return msg, nil
}
