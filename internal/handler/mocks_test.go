package handler

import (
	"context"
	"time"

	"github.com/Eursukkul/rental-backoffice/internal/contract"
	"github.com/Eursukkul/rental-backoffice/internal/middleware"
	"github.com/Eursukkul/rental-backoffice/internal/models"
	"github.com/Eursukkul/rental-backoffice/internal/service"
	"github.com/labstack/echo/v4"
)

// --- Mock PaymentService ---

type mockPaymentService struct {
	listFn    func(ctx context.Context, bookingID uint) ([]models.PaymentEntry, error)
	rebuildFn func(ctx context.Context, bookingID uint, form service.FormValues) (*service.ScheduleResult, error)
	addFn     func(ctx context.Context, bookingID uint, entry *models.PaymentEntry) error
	markFn    func(ctx context.Context, paymentID uint, paidDate *time.Time) (*models.PaymentEntry, error)
	deleteFn  func(ctx context.Context, paymentID uint) error
}

func (m *mockPaymentService) ListPayments(ctx context.Context, bookingID uint) ([]models.PaymentEntry, error) {
	return m.listFn(ctx, bookingID)
}
func (m *mockPaymentService) RebuildSchedule(ctx context.Context, bookingID uint, form service.FormValues) (*service.ScheduleResult, error) {
	return m.rebuildFn(ctx, bookingID, form)
}
func (m *mockPaymentService) AddPayment(ctx context.Context, bookingID uint, entry *models.PaymentEntry) error {
	return m.addFn(ctx, bookingID, entry)
}
func (m *mockPaymentService) MarkPaid(ctx context.Context, paymentID uint, paidDate *time.Time) (*models.PaymentEntry, error) {
	return m.markFn(ctx, paymentID, paidDate)
}
func (m *mockPaymentService) DeletePayment(ctx context.Context, paymentID uint) error {
	return m.deleteFn(ctx, paymentID)
}

// --- Mock ContractService ---

type mockContractService struct {
	renderFn   func(ctx context.Context, bookingID uint) (*contract.Rendered, error)
	generateFn func(ctx context.Context, bookingID uint) (string, error)
	openFn     func(ctx context.Context, bookingID uint) (string, error)
}

func (m *mockContractService) RenderText(ctx context.Context, bookingID uint) (*contract.Rendered, error) {
	return m.renderFn(ctx, bookingID)
}
func (m *mockContractService) GeneratePDF(ctx context.Context, bookingID uint) (string, error) {
	return m.generateFn(ctx, bookingID)
}
func (m *mockContractService) OpenPDF(ctx context.Context, bookingID uint) (string, error) {
	return m.openFn(ctx, bookingID)
}

// --- Mock SignatureService ---

type mockSignatureService struct {
	tenantFn   func(ctx context.Context, bookingID uint, data []byte) (string, error)
	landlordFn func(ctx context.Context, data []byte) (string, error)
}

func (m *mockSignatureService) UploadTenant(ctx context.Context, bookingID uint, data []byte) (string, error) {
	return m.tenantFn(ctx, bookingID, data)
}
func (m *mockSignatureService) UploadLandlord(ctx context.Context, data []byte) (string, error) {
	return m.landlordFn(ctx, data)
}

// --- Mock DocumentService ---

type mockDocumentService struct {
	receiptFn     func(ctx context.Context, bookingID uint) (*service.File, error)
	receivablesFn func(ctx context.Context, format string) (*service.File, error)
}

func (m *mockDocumentService) Receipt(ctx context.Context, bookingID uint) (*service.File, error) {
	return m.receiptFn(ctx, bookingID)
}
func (m *mockDocumentService) Receivables(ctx context.Context, format string) (*service.File, error) {
	return m.receivablesFn(ctx, format)
}

// --- Mock SettingsService ---

type mockSettingsService struct {
	values map[string]string
}

func (m *mockSettingsService) Get(ctx context.Context, key string) (string, error) {
	v, ok := m.values[key]
	if !ok {
		return "", service.ErrInvalidSetting
	}
	return v, nil
}
func (m *mockSettingsService) Set(ctx context.Context, key, value string) error {
	if _, ok := m.values[key]; !ok {
		return service.ErrInvalidSetting
	}
	m.values[key] = value
	return nil
}
func (m *mockSettingsService) All(ctx context.Context) (map[string]string, error) {
	return m.values, nil
}

// --- Mock NotificationService ---

type mockNotificationService struct {
	sendFn func(ctx context.Context, bookingID uint, kind string) (*service.Message, error)
}

func (m *mockNotificationService) Send(ctx context.Context, bookingID uint, kind string) (*service.Message, error) {
	return m.sendFn(ctx, bookingID, kind)
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Validator = middleware.NewRequestValidator()
	return e
}
