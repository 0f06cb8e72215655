package dto

import (
	"time"

	"github.com/Eursukkul/rental-backoffice/internal/format"
	"github.com/Eursukkul/rental-backoffice/internal/models"
	"github.com/Eursukkul/rental-backoffice/internal/service"
)

const dateLayout = "2006-01-02"

type PaymentResponse struct {
	ID              uint                 `json:"id"`
	BookingID       uint                 `json:"booking_id"`
	DueDate         string               `json:"due_date"`
	Amount          float64              `json:"amount"`
	AmountFormatted string               `json:"amount_formatted"`
	Status          models.PaymentStatus `json:"status"`
	PaidDate        *string              `json:"paid_date,omitempty"`
	Note            string               `json:"note"`
	Overdue         bool                 `json:"overdue"`
}

type LedgerResponse struct {
	BookingID uint              `json:"booking_id"`
	Entries   []PaymentResponse `json:"entries"`
	Paid      float64           `json:"paid"`
	Pending   float64           `json:"pending"`
}

type ScheduleResponse struct {
	BookingID uint                         `json:"booking_id"`
	Entries   []PaymentResponse            `json:"entries"`
	Skipped   []service.SkippedInstallment `json:"skipped"`
}

type ContractTextResponse struct {
	BookingID uint     `json:"booking_id"`
	Text      string   `json:"text"`
	Missing   []string `json:"missing"`
	Complete  bool     `json:"complete"`
}

type ArtifactResponse struct {
	BookingID uint   `json:"booking_id,omitempty"`
	Path      string `json:"path"`
}

type SettingResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToPaymentResponse(e *models.PaymentEntry, today time.Time) PaymentResponse {
	resp := PaymentResponse{
		ID:              e.ID,
		BookingID:       e.BookingID,
		DueDate:         e.DueDate.Format(dateLayout),
		Amount:          e.Amount,
		AmountFormatted: format.Money(e.Amount),
		Status:          e.Status,
		Note:            e.Note,
		Overdue:         e.IsOverdue(today),
	}
	if e.PaidDate != nil {
		paid := e.PaidDate.Format(dateLayout)
		resp.PaidDate = &paid
	}
	return resp
}

func ToLedgerResponse(bookingID uint, entries []models.PaymentEntry, today time.Time) LedgerResponse {
	resp := LedgerResponse{BookingID: bookingID, Entries: make([]PaymentResponse, len(entries))}
	for i := range entries {
		resp.Entries[i] = ToPaymentResponse(&entries[i], today)
		if entries[i].Status == models.PaymentPaid {
			resp.Paid += entries[i].Amount
		} else {
			resp.Pending += entries[i].Amount
		}
	}
	return resp
}

func ToScheduleResponse(bookingID uint, res *service.ScheduleResult, today time.Time) ScheduleResponse {
	resp := ScheduleResponse{
		BookingID: bookingID,
		Entries:   make([]PaymentResponse, len(res.Entries)),
		Skipped:   res.Skipped,
	}
	if resp.Skipped == nil {
		resp.Skipped = []service.SkippedInstallment{}
	}
	for i := range res.Entries {
		resp.Entries[i] = ToPaymentResponse(&res.Entries[i], today)
	}
	return resp
}
