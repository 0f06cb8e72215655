package service

import (
	"context"
	"testing"
	"time"

	"github.com/Eursukkul/rental-backoffice/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddPayment(t *testing.T) {
	svc, db, _ := newPaymentServiceForTest(t)
	booking := seedBooking(t, db)
	ctx := context.Background()

	entry := &models.PaymentEntry{ID: 77, DueDate: day(2024, 3, 1), Amount: 120, Note: "cleaning"}
	require.NoError(t, svc.AddPayment(ctx, booking.ID, entry))
	assert.NotEqual(t, uint(77), entry.ID)
	assert.Equal(t, booking.ID, entry.BookingID)
	assert.Equal(t, models.PaymentPending, entry.Status)
	assert.Nil(t, entry.PaidDate)

	err := svc.AddPayment(ctx, 999, &models.PaymentEntry{DueDate: day(2024, 3, 1), Amount: 1})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestAddPayment_PaidDefaultsToToday(t *testing.T) {
	svc, db, _ := newPaymentServiceForTest(t)
	svc.(*paymentService).now = func() time.Time { return time.Date(2024, 6, 2, 15, 30, 0, 0, time.UTC) }
	booking := seedBooking(t, db)

	entry := &models.PaymentEntry{DueDate: day(2024, 6, 1), Amount: 50, Status: models.PaymentPaid}
	require.NoError(t, svc.AddPayment(context.Background(), booking.ID, entry))
	require.NotNil(t, entry.PaidDate)
	assert.Equal(t, "2024-06-02", entry.PaidDate.Format("2006-01-02"))
}

func TestMarkPaid(t *testing.T) {
	svc, db, _ := newPaymentServiceForTest(t)
	svc.(*paymentService).now = func() time.Time { return time.Date(2024, 2, 3, 9, 0, 0, 0, time.UTC) }
	booking := seedBooking(t, db)
	ctx := context.Background()

	entry := &models.PaymentEntry{DueDate: day(2024, 2, 1), Amount: 750}
	require.NoError(t, svc.AddPayment(ctx, booking.ID, entry))

	got, err := svc.MarkPaid(ctx, entry.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, got.Status)
	assert.Equal(t, "2024-02-03", got.PaidDate.Format("2006-01-02"))

	explicit := day(2024, 1, 31)
	got, err = svc.MarkPaid(ctx, entry.ID, &explicit)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-31", got.PaidDate.Format("2006-01-02"))

	ledger, err := svc.ListPayments(ctx, booking.ID)
	require.NoError(t, err)
	require.Len(t, ledger, 1)
	assert.Equal(t, models.PaymentPaid, ledger[0].Status)

	_, err = svc.MarkPaid(ctx, 999, nil)
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestDeletePayment(t *testing.T) {
	svc, db, _ := newPaymentServiceForTest(t)
	booking := seedBooking(t, db)
	ctx := context.Background()

	entry := &models.PaymentEntry{DueDate: day(2024, 2, 1), Amount: 750}
	require.NoError(t, svc.AddPayment(ctx, booking.ID, entry))

	require.NoError(t, svc.DeletePayment(ctx, entry.ID))
	assert.ErrorIs(t, svc.DeletePayment(ctx, entry.ID), ErrPaymentNotFound)

	ledger, err := svc.ListPayments(ctx, booking.ID)
	require.NoError(t, err)
	assert.Empty(t, ledger)
}

func TestListPayments_BookingNotFound(t *testing.T) {
	svc, _, _ := newPaymentServiceForTest(t)
	_, err := svc.ListPayments(context.Background(), 5)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
