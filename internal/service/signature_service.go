package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Eursukkul/rental-backoffice/internal/document"
	"github.com/Eursukkul/rental-backoffice/internal/repository"
	"github.com/Eursukkul/rental-backoffice/internal/storage"
	"gorm.io/gorm"
)

type SignatureService interface {
	UploadTenant(ctx context.Context, bookingID uint, data []byte) (string, error)
	UploadLandlord(ctx context.Context, data []byte) (string, error)
}

type signatureService struct {
	bookingRepo repository.BookingRepository
	store       storage.ArtifactStore
}

func NewSignatureService(bookingRepo repository.BookingRepository, store storage.ArtifactStore) SignatureService {
	return &signatureService{bookingRepo: bookingRepo, store: store}
}

func (s *signatureService) UploadTenant(ctx context.Context, bookingID uint, data []byte) (string, error) {
	_, err := s.bookingRepo.FindByID(ctx, bookingID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrBookingNotFound
	}
	if err != nil {
		return "", err
	}
	return s.put(ctx, storage.TenantSignatureKey(bookingID), data)
}

func (s *signatureService) UploadLandlord(ctx context.Context, data []byte) (string, error) {
	return s.put(ctx, storage.LandlordSignatureKey, data)
}

func (s *signatureService) put(ctx context.Context, key string, data []byte) (string, error) {
	img, err := document.NormalizeSignature(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if err := s.store.Put(ctx, key, img); err != nil {
		return "", err
	}
	log.Printf("[SignatureService] stored %s (%d bytes)", key, len(img))
	return s.store.Path(key), nil
}

// loadSignature reads a stored signature. A missing or unreadable image is
// reported as absent so documents are still produced without it.
func loadSignature(ctx context.Context, store storage.ArtifactStore, key string) (document.Signature, bool) {
	data, err := store.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return document.Signature{}, false
	}
	if err != nil {
		log.Printf("[Signature] read %s: %v", key, err)
		return document.Signature{}, false
	}

	img, err := document.NormalizeSignature(data)
	if err != nil {
		log.Printf("[Signature] %s is not a usable image: %v", key, err)
		return document.Signature{}, false
	}

	var signedAt time.Time
	if info, err := store.Stat(ctx, key); err == nil {
		signedAt = info.ModTime
	}
	return document.Signature{Image: img, SignedAt: signedAt}, true
}
