package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/Eursukkul/rental-backoffice/internal/contract"
	"github.com/Eursukkul/rental-backoffice/internal/document"
	"github.com/Eursukkul/rental-backoffice/internal/models"
	"github.com/Eursukkul/rental-backoffice/internal/repository"
	"github.com/Eursukkul/rental-backoffice/internal/storage"
	"github.com/Eursukkul/rental-backoffice/pkg/rabbitmq"
	"gorm.io/gorm"
)

type ContractService interface {
	RenderText(ctx context.Context, bookingID uint) (*contract.Rendered, error)
	GeneratePDF(ctx context.Context, bookingID uint) (string, error)
	// OpenPDF returns the path of the last generated contract.
	OpenPDF(ctx context.Context, bookingID uint) (string, error)
}

// ContractGenerated is published after a contract PDF is written.
type ContractGenerated struct {
	BookingID uint     `json:"booking_id"`
	Path      string   `json:"path"`
	Missing   []string `json:"missing,omitempty"`
}

type contractService struct {
	bookingRepo repository.BookingRepository
	paymentRepo repository.PaymentRepository
	settings    SettingsService
	renderer    *contract.Renderer
	store       storage.ArtifactStore
	layout      document.LayoutOptions
	publisher   Publisher
}

func NewContractService(
	bookingRepo repository.BookingRepository,
	paymentRepo repository.PaymentRepository,
	settings SettingsService,
	renderer *contract.Renderer,
	store storage.ArtifactStore,
	rulesMarker string,
	publisher Publisher,
) ContractService {
	return &contractService{
		bookingRepo: bookingRepo,
		paymentRepo: paymentRepo,
		settings:    settings,
		renderer:    renderer,
		store:       store,
		layout:      document.LayoutOptions{Spec: document.DefaultPageSpec(), RulesMarker: rulesMarker},
		publisher:   publisher,
	}
}

func (s *contractService) load(ctx context.Context, bookingID uint) (*models.Booking, []models.PaymentEntry, error) {
	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("find booking %d: %w", bookingID, err)
	}
	entries, err := s.paymentRepo.FindByBooking(ctx, bookingID)
	if err != nil {
		return nil, nil, fmt.Errorf("load ledger: %w", err)
	}
	return booking, entries, nil
}

func (s *contractService) RenderText(ctx context.Context, bookingID uint) (*contract.Rendered, error) {
	booking, entries, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	tmpl, err := s.settings.Get(ctx, SettingContractTemplate)
	if err != nil {
		return nil, err
	}

	rendered := s.renderer.Render(booking, entries, tmpl)
	if !rendered.Complete() {
		log.Printf("[ContractService] booking %d: template references unknown placeholders %v", bookingID, rendered.Missing)
	}
	return &rendered, nil
}

func (s *contractService) GeneratePDF(ctx context.Context, bookingID uint) (string, error) {
	rendered, err := s.RenderText(ctx, bookingID)
	if err != nil {
		return "", err
	}

	sigs := document.Signatures{}
	if sig, ok := loadSignature(ctx, s.store, storage.LandlordSignatureKey); ok {
		sigs[contract.LandlordSignatureMarker] = sig
	}
	if sig, ok := loadSignature(ctx, s.store, storage.TenantSignatureKey(bookingID)); ok {
		sigs[contract.TenantSignatureMarker] = sig
	}

	doc := document.Layout(rendered.Text, sigs, s.layout)
	pdf, err := document.Compose(doc)
	if err != nil {
		return "", fmt.Errorf("compose contract %d: %w", bookingID, err)
	}

	key := storage.ContractKey(bookingID)
	if err := s.store.Put(ctx, key, pdf); err != nil {
		return "", fmt.Errorf("store contract %d: %w", bookingID, err)
	}
	path := s.store.Path(key)
	log.Printf("[ContractService] booking %d: %d page(s) written to %s", bookingID, len(doc.Pages), path)

	publish(ctx, s.publisher, rabbitmq.RoutingContractGenerated, ContractGenerated{
		BookingID: bookingID,
		Path:      path,
		Missing:   rendered.Missing,
	})
	return path, nil
}

func (s *contractService) OpenPDF(ctx context.Context, bookingID uint) (string, error) {
	key := storage.ContractKey(bookingID)
	ok, err := s.store.Exists(ctx, key)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrContractNotFound
	}
	return s.store.Path(key), nil
}
