package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Eursukkul/rental-backoffice/config"
	"github.com/Eursukkul/rental-backoffice/internal/document"
	"github.com/Eursukkul/rental-backoffice/internal/models"
	"github.com/Eursukkul/rental-backoffice/internal/repository"
	"github.com/Eursukkul/rental-backoffice/internal/storage"
	"gorm.io/gorm"
)

const (
	FormatPDF  = "pdf"
	FormatXLSX = "xlsx"
)

// File is a generated download.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

type DocumentService interface {
	Receipt(ctx context.Context, bookingID uint) (*File, error)
	Receivables(ctx context.Context, format string) (*File, error)
}

type documentService struct {
	bookingRepo repository.BookingRepository
	paymentRepo repository.PaymentRepository
	store       storage.ArtifactStore
	property    config.Property
	now         func() time.Time
}

func NewDocumentService(bookingRepo repository.BookingRepository, paymentRepo repository.PaymentRepository, store storage.ArtifactStore, property config.Property) DocumentService {
	if property.LandlordName == "" {
		property.LandlordName = config.DefaultLandlordName
	}
	if property.PropertyName == "" {
		property.PropertyName = config.DefaultPropertyName
	}
	return &documentService{
		bookingRepo: bookingRepo,
		paymentRepo: paymentRepo,
		store:       store,
		property:    property,
		now:         time.Now,
	}
}

// Receipt issues a receipt for what the guest has paid so far, or for the
// booking total when no payment is recorded. The PDF is also kept in the store.
func (s *documentService) Receipt(ctx context.Context, bookingID uint) (*File, error) {
	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	entries, err := s.paymentRepo.FindByBooking(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}

	var paid []models.PaymentEntry
	var amount float64
	for _, e := range entries {
		if e.Status == models.PaymentPaid {
			paid = append(paid, e)
			amount += e.Amount
		}
	}
	if len(paid) == 0 && booking.TotalPrice != nil {
		amount = *booking.TotalPrice
	}

	now := s.now()
	number := fmt.Sprintf("%d-%s", booking.ID, now.Format("20060102"))
	data := document.ReceiptData{
		Number:        number,
		IssuedAt:      now,
		LandlordName:  s.property.LandlordName,
		PropertyName:  s.property.PropertyName,
		CheckIn:       booking.CheckIn,
		CheckOut:      booking.CheckOut,
		Amount:        amount,
		PaymentMethod: booking.PaymentMethod,
		Payments:      paid,
		Note:          booking.Note,
		Verification:  document.ReceiptVerification(number, booking.ID, amount, now),
	}
	if booking.Guest != nil {
		data.TenantName = booking.Guest.Name
		data.TenantCPF = booking.Guest.CPF
	}
	if sig, ok := loadSignature(ctx, s.store, storage.LandlordSignatureKey); ok {
		data.LandlordSignature = sig.Image
	}
	if sig, ok := loadSignature(ctx, s.store, storage.TenantSignatureKey(bookingID)); ok {
		data.TenantSignature = sig.Image
	}

	res, err := document.Receipt(data)
	if err != nil {
		return nil, fmt.Errorf("draw receipt %d: %w", bookingID, err)
	}
	if err := s.store.Put(ctx, storage.ReceiptKey(bookingID), res.PDF); err != nil {
		return nil, fmt.Errorf("store receipt %d: %w", bookingID, err)
	}

	return &File{
		Name:        fmt.Sprintf("receipt_%d.pdf", bookingID),
		ContentType: "application/pdf",
		Data:        res.PDF,
	}, nil
}

func (s *documentService) Receivables(ctx context.Context, format string) (*File, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatPDF
	}
	if format != FormatPDF && format != FormatXLSX {
		return nil, ErrInvalidFormat
	}

	entries, err := s.paymentRepo.FindByStatus(ctx, models.PaymentPending)
	if err != nil {
		return nil, fmt.Errorf("load receivables: %w", err)
	}
	now := s.now()
	report := document.BuildReceivables(entries, now)
	stamp := now.Format("20060102")

	if format == FormatXLSX {
		data, err := document.ReceivablesXLSX(report)
		if err != nil {
			return nil, err
		}
		return &File{
			Name:        "receivables_" + stamp + ".xlsx",
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        data,
		}, nil
	}

	data, err := document.ReceivablesPDF(report)
	if err != nil {
		return nil, err
	}
	return &File{Name: "receivables_" + stamp + ".pdf", ContentType: "application/pdf", Data: data}, nil
}
