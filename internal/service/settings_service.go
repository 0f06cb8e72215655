package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Eursukkul/rental-backoffice/internal/contract"
	"github.com/Eursukkul/rental-backoffice/internal/repository"
	"github.com/Eursukkul/rental-backoffice/pkg/cache"
)

const (
	SettingContractTemplate     = "contract_template"
	SettingWhatsAppConfirmation = "whatsapp_confirmation"
	SettingWhatsAppReminder     = "whatsapp_reminder"
	SettingWhatsAppContract     = "whatsapp_contract"
)

const settingsCacheTTL = 10 * time.Minute

const (
	defaultConfirmationMessage = `Hello {tenant_name}! Your booking at {property_name} is confirmed: check-in {checkin}, check-out {checkout} ({nights} nights). Total: {total_price}.`
	defaultReminderMessage     = `Hello {tenant_name}, see you soon at {property_name} on {checkin}. Gate code: {gate_code}. Wi-Fi: {wifi_name} / {wifi_password}.`
	defaultContractMessage     = `Hello {tenant_name}, your rental agreement for {property_name} ({checkin} to {checkout}) is ready. Payment: {payment_summary}. PIX key: {pix_key}.`
)

// DefaultSettings are the values seeded at startup and returned for keys that
// were never stored.
func DefaultSettings() map[string]string {
	return map[string]string{
		SettingContractTemplate:     contract.DefaultTemplate,
		SettingWhatsAppConfirmation: defaultConfirmationMessage,
		SettingWhatsAppReminder:     defaultReminderMessage,
		SettingWhatsAppContract:     defaultContractMessage,
	}
}

type SettingsService interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	All(ctx context.Context) (map[string]string, error)
}

type settingsService struct {
	repo     repository.SettingRepository
	cache    cache.Cache
	defaults map[string]string
}

// NewSettingsService reads through c when it is non-nil.
func NewSettingsService(repo repository.SettingRepository, c cache.Cache) SettingsService {
	return &settingsService{repo: repo, cache: c, defaults: DefaultSettings()}
}

func (s *settingsService) Get(ctx context.Context, key string) (string, error) {
	fallback, known := s.defaults[key]
	if !known {
		return "", ErrInvalidSetting
	}

	if s.cache != nil {
		v, err := s.cache.Get(ctx, key)
		if err == nil {
			return v, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			log.Printf("[SettingsService] cache read %s: %v", key, err)
		}
	}

	value, ok, err := s.repo.Get(ctx, key)
	if err != nil {
		return "", fmt.Errorf("read setting %s: %w", key, err)
	}
	if !ok {
		value = fallback
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, value, settingsCacheTTL); err != nil {
			log.Printf("[SettingsService] cache write %s: %v", key, err)
		}
	}
	return value, nil
}

func (s *settingsService) Set(ctx context.Context, key, value string) error {
	if _, known := s.defaults[key]; !known {
		return ErrInvalidSetting
	}
	if err := s.repo.Set(ctx, key, value); err != nil {
		return fmt.Errorf("write setting %s: %w", key, err)
	}
	if s.cache != nil {
		if err := s.cache.Delete(ctx, key); err != nil {
			log.Printf("[SettingsService] cache invalidate %s: %v", key, err)
		}
	}
	return nil
}

// All returns every known key, stored values overriding defaults.
func (s *settingsService) All(ctx context.Context) (map[string]string, error) {
	out := make(map[string]string, len(s.defaults))
	for k, v := range s.defaults {
		out[k] = v
	}
	stored, err := s.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	for _, st := range stored {
		out[st.Key] = st.Value
	}
	return out, nil
}
