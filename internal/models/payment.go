package models

import "time"

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

// DepositNote marks the ledger entry created from the deposit fields.
const DepositNote = "Deposit/initial down-payment"

type PaymentEntry struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	BookingID uint          `gorm:"not null;index" json:"booking_id"`
	DueDate   time.Time     `gorm:"type:date;not null" json:"due_date"`
	Amount    float64       `gorm:"type:decimal(10,2);not null" json:"amount"`
	Status    PaymentStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	PaidDate  *time.Time    `gorm:"type:date" json:"paid_date,omitempty"`
	Note      string        `gorm:"type:text" json:"note"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`

	Booking *Booking `gorm:"foreignKey:BookingID" json:"booking,omitempty"`
}

func (p *PaymentEntry) IsDeposit() bool {
	return p.Status == PaymentPaid && p.Note == DepositNote
}

// IsOverdue reports whether a pending entry is past its due date on the given day.
func (p *PaymentEntry) IsOverdue(today time.Time) bool {
	if p.Status != PaymentPending {
		return false
	}
	y, m, d := today.Date()
	return p.DueDate.Before(time.Date(y, m, d, 0, 0, 0, 0, p.DueDate.Location()))
}
