package models

import "time"

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking is a stay of one guest. CheckOut is the departure day and is not occupied.
type Booking struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	GuestID       uint          `gorm:"not null;index" json:"guest_id"`
	CheckIn       time.Time     `gorm:"type:date;not null" json:"check_in"`
	CheckOut      time.Time     `gorm:"type:date;not null" json:"check_out"`
	Status        BookingStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	TotalPrice    *float64      `gorm:"type:decimal(10,2)" json:"total_price"`
	PaymentMethod string        `gorm:"size:60" json:"payment_method"`
	Note          string        `gorm:"type:text" json:"note"`

	// Legacy summary fields, still printed in the payment summary.
	DepositAmount     *float64 `gorm:"type:decimal(10,2)" json:"deposit_amount"`
	InstallmentsCount *int     `json:"installments_count"`
	InstallmentValue  *float64 `gorm:"type:decimal(10,2)" json:"installment_value"`
	InstallmentsDue   string   `gorm:"type:text" json:"installments_due"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Guest    *Guest         `gorm:"foreignKey:GuestID" json:"guest,omitempty"`
	Payments []PaymentEntry `gorm:"foreignKey:BookingID" json:"payments,omitempty"`
}

// Nights returns the number of occupied nights, counted in calendar days.
func (b *Booking) Nights() int {
	in, out := calendarDay(b.CheckIn), calendarDay(b.CheckOut)
	if !out.After(in) {
		return 0
	}
	return int(out.Sub(in).Hours() / 24)
}

func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
