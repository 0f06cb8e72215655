package models

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingNights(t *testing.T) {
	b := Booking{
		CheckIn:  time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, 5, b.Nights())

	b.CheckOut = b.CheckIn
	assert.Equal(t, 0, b.Nights())
}

func TestBookingNights_AcrossDSTChange(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 2024-03-10 is a 23-hour day in New York.
	b := Booking{
		CheckIn:  time.Date(2024, 3, 9, 0, 0, 0, 0, loc),
		CheckOut: time.Date(2024, 3, 11, 0, 0, 0, 0, loc),
	}
	assert.Equal(t, 2, b.Nights())
}

func TestPaymentEntryIsOverdue(t *testing.T) {
	today := time.Date(2024, 2, 2, 15, 0, 0, 0, time.UTC)

	p := PaymentEntry{DueDate: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), Status: PaymentPending}
	assert.True(t, p.IsOverdue(today))

	p.DueDate = time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC)
	assert.False(t, p.IsOverdue(today))

	p.DueDate = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	p.Status = PaymentPaid
	assert.False(t, p.IsOverdue(today))
}
