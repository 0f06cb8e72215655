package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Eursukkul/rental-backoffice/internal/format"
	"github.com/Eursukkul/rental-backoffice/internal/models"
	"github.com/Eursukkul/rental-backoffice/internal/repository"
	"gorm.io/gorm"
)

// Form field names of the payment schedule form.
const (
	FormDepositAmount     = "deposit_amount"
	FormDepositDate       = "deposit_date"
	FormInstallmentsCount = "installments_count"
)

// MaxInstallments bounds how many installment rows one form may describe.
// Rows past it are reported once, at index MaxInstallments+1.
const MaxInstallments = 360

func installmentField(i int, name string) string {
	return fmt.Sprintf("installment_%d_%s", i, name)
}

// FormValues is the raw submitted form. url.Values satisfies it.
type FormValues interface {
	Get(key string) string
}

// SkippedInstallment explains why a form row produced no ledger entry.
// Index 0 is the deposit.
type SkippedInstallment struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

type ScheduleResult struct {
	Entries []models.PaymentEntry `json:"entries"`
	Skipped []SkippedInstallment  `json:"skipped,omitempty"`
}

type ScheduleBuilder struct {
	paymentRepo repository.PaymentRepository
}

func NewScheduleBuilder(paymentRepo repository.PaymentRepository) *ScheduleBuilder {
	return &ScheduleBuilder{paymentRepo: paymentRepo}
}

// Rebuild replaces the booking's whole ledger with the deposit and
// installments found in form. It must run inside tx. Rows that do not parse
// are skipped and reported in the result, never returned as errors.
func (b *ScheduleBuilder) Rebuild(ctx context.Context, tx *gorm.DB, booking *models.Booking, form FormValues) (*ScheduleResult, error) {
	if err := b.paymentRepo.DeleteByBooking(ctx, tx, booking.ID); err != nil {
		return nil, fmt.Errorf("clear ledger: %w", err)
	}

	result := &ScheduleResult{Entries: []models.PaymentEntry{}}

	deposit, reason := parseDeposit(booking.ID, form)
	switch {
	case deposit != nil:
		if err := b.paymentRepo.Create(ctx, tx, deposit); err != nil {
			return nil, fmt.Errorf("create deposit: %w", err)
		}
		result.Entries = append(result.Entries, *deposit)
	case reason != "":
		result.Skipped = append(result.Skipped, SkippedInstallment{Index: 0, Reason: reason})
	}

	requested := format.ParseCount(form.Get(FormInstallmentsCount))
	count := min(requested, MaxInstallments)
	for i := 1; i <= count; i++ {
		entry, reason := parseInstallment(booking.ID, i, form)
		if entry == nil {
			result.Skipped = append(result.Skipped, SkippedInstallment{Index: i, Reason: reason})
			continue
		}
		if err := b.paymentRepo.Create(ctx, tx, entry); err != nil {
			return nil, fmt.Errorf("create installment %d: %w", i, err)
		}
		result.Entries = append(result.Entries, *entry)
	}
	if requested > MaxInstallments {
		result.Skipped = append(result.Skipped, SkippedInstallment{
			Index:  MaxInstallments + 1,
			Reason: fmt.Sprintf("installments_count %d exceeds maximum of %d", requested, MaxInstallments),
		})
	}

	return result, nil
}

// parseDeposit returns the paid deposit entry, or nil plus a reason. An
// untouched deposit section yields neither.
func parseDeposit(bookingID uint, form FormValues) (*models.PaymentEntry, string) {
	rawAmount := form.Get(FormDepositAmount)
	rawDate := form.Get(FormDepositDate)
	if strings.TrimSpace(rawAmount) == "" && strings.TrimSpace(rawDate) == "" {
		return nil, ""
	}

	amount, err := format.ParseAmount(rawAmount)
	if err != nil {
		return nil, describe("amount", err)
	}
	date, err := format.ParseDate(rawDate)
	if err != nil {
		return nil, describe("date", err)
	}
	if amount == 0 {
		return nil, "amount is zero"
	}

	paid := date
	return &models.PaymentEntry{
		BookingID: bookingID,
		DueDate:   date,
		Amount:    amount,
		Status:    models.PaymentPaid,
		PaidDate:  &paid,
		Note:      models.DepositNote,
	}, ""
}

func parseInstallment(bookingID uint, i int, form FormValues) (*models.PaymentEntry, string) {
	due, err := format.ParseDate(form.Get(installmentField(i, "due")))
	if err != nil {
		return nil, describe("due date", err)
	}
	amount, err := format.ParseAmount(form.Get(installmentField(i, "amount")))
	if err != nil {
		return nil, describe("amount", err)
	}
	if amount <= 0 {
		return nil, "amount must be positive"
	}

	return &models.PaymentEntry{
		BookingID: bookingID,
		DueDate:   due,
		Amount:    amount,
		Status:    models.PaymentPending,
		Note:      strings.TrimSpace(form.Get(installmentField(i, "note"))),
	}, ""
}

func describe(field string, err error) string {
	if errors.Is(err, format.ErrEmpty) {
		return "missing " + field
	}
	return "invalid " + field
}
