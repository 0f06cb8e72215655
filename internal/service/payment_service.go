package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Eursukkul/rental-backoffice/internal/models"
	"github.com/Eursukkul/rental-backoffice/internal/repository"
	"github.com/Eursukkul/rental-backoffice/pkg/rabbitmq"
	"gorm.io/gorm"
)

type PaymentService interface {
	ListPayments(ctx context.Context, bookingID uint) ([]models.PaymentEntry, error)
	RebuildSchedule(ctx context.Context, bookingID uint, form FormValues) (*ScheduleResult, error)
	AddPayment(ctx context.Context, bookingID uint, entry *models.PaymentEntry) error
	MarkPaid(ctx context.Context, paymentID uint, paidDate *time.Time) (*models.PaymentEntry, error)
	DeletePayment(ctx context.Context, paymentID uint) error
}

type paymentService struct {
	bookingRepo repository.BookingRepository
	paymentRepo repository.PaymentRepository
	builder     *ScheduleBuilder
	publisher   Publisher
	now         func() time.Time
}

func NewPaymentService(bookingRepo repository.BookingRepository, paymentRepo repository.PaymentRepository, publisher Publisher) PaymentService {
	return &paymentService{
		bookingRepo: bookingRepo,
		paymentRepo: paymentRepo,
		builder:     NewScheduleBuilder(paymentRepo),
		publisher:   publisher,
		now:         time.Now,
	}
}

func (s *paymentService) findBooking(ctx context.Context, id uint) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find booking %d: %w", id, err)
	}
	return booking, nil
}

func (s *paymentService) ListPayments(ctx context.Context, bookingID uint) ([]models.PaymentEntry, error) {
	if _, err := s.findBooking(ctx, bookingID); err != nil {
		return nil, err
	}
	return s.paymentRepo.FindByBooking(ctx, bookingID)
}

func (s *paymentService) RebuildSchedule(ctx context.Context, bookingID uint, form FormValues) (*ScheduleResult, error) {
	// Load outside the transaction: the repository reads through its own handle.
	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	var result *ScheduleResult
	err = s.paymentRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res, err := s.builder.Rebuild(ctx, tx, booking, form)
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("rebuild schedule for booking %d: %w", bookingID, err)
	}

	publish(ctx, s.publisher, rabbitmq.RoutingPaymentsRebuilt, map[string]any{
		"booking_id": bookingID,
		"entries":    len(result.Entries),
		"skipped":    len(result.Skipped),
	})
	return result, nil
}

func (s *paymentService) AddPayment(ctx context.Context, bookingID uint, entry *models.PaymentEntry) error {
	if _, err := s.findBooking(ctx, bookingID); err != nil {
		return err
	}

	entry.ID = 0
	entry.BookingID = bookingID
	if entry.Status == "" {
		entry.Status = models.PaymentPending
	}
	if entry.Status == models.PaymentPaid && entry.PaidDate == nil {
		today := truncateDay(s.now())
		entry.PaidDate = &today
	}
	if entry.Status == models.PaymentPending {
		entry.PaidDate = nil
	}

	if err := s.paymentRepo.Create(ctx, s.paymentRepo.GetDB(), entry); err != nil {
		return fmt.Errorf("add payment: %w", err)
	}
	return nil
}

// MarkPaid settles an entry. A nil paidDate means today.
func (s *paymentService) MarkPaid(ctx context.Context, paymentID uint, paidDate *time.Time) (*models.PaymentEntry, error) {
	entry, err := s.paymentRepo.FindByID(ctx, paymentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, err
	}

	date := truncateDay(s.now())
	if paidDate != nil {
		date = *paidDate
	}
	entry.Status = models.PaymentPaid
	entry.PaidDate = &date

	if err := s.paymentRepo.Update(ctx, s.paymentRepo.GetDB(), entry); err != nil {
		return nil, fmt.Errorf("mark payment %d paid: %w", paymentID, err)
	}
	return entry, nil
}

func (s *paymentService) DeletePayment(ctx context.Context, paymentID uint) error {
	err := s.paymentRepo.Delete(ctx, s.paymentRepo.GetDB(), paymentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrPaymentNotFound
	}
	return err
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
