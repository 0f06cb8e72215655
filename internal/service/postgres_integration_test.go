//go:build integration

package service

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/Eursukkul/rental-backoffice/internal/models"
	"github.com/Eursukkul/rental-backoffice/internal/repository"
	"github.com/Eursukkul/rental-backoffice/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func setupPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		getEnv("TEST_DB_HOST", "localhost"),
		getEnv("TEST_DB_PORT", "5434"),
		getEnv("TEST_DB_USER", "postgres"),
		getEnv("TEST_DB_PASSWORD", "postgres"),
		getEnv("TEST_DB_NAME", "rental_test_db"),
	)
	db, err := database.Open("postgres", dsn)
	require.NoError(t, err)

	db.Exec("DROP TABLE IF EXISTS payment_entries, bookings, guests, settings")
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		db.Exec("DROP TABLE IF EXISTS payment_entries, bookings, guests, settings")
	})
	return db
}

func TestPostgres_RebuildSchedule(t *testing.T) {
	db := setupPostgres(t)
	booking := seedBooking(t, db)
	svc := NewPaymentService(repository.NewBookingRepository(db), repository.NewPaymentRepository(db), nil)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		res, err := svc.RebuildSchedule(ctx, booking.ID, scenarioForm())
		require.NoError(t, err)
		assert.Len(t, res.Entries, 2)
	}

	ledger, err := svc.ListPayments(ctx, booking.ID)
	require.NoError(t, err)
	require.Len(t, ledger, 2)
	assert.Equal(t, models.PaymentPaid, ledger[0].Status)
	assert.Equal(t, 500.0, ledger[0].Amount)
	assert.Equal(t, models.PaymentPending, ledger[1].Status)
	assert.Equal(t, 750.0, ledger[1].Amount)
}

func TestPostgres_SettingsSeedAndOverride(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()
	require.NoError(t, database.SeedSettings(ctx, db, DefaultSettings()))

	svc := NewSettingsService(repository.NewSettingRepository(db), nil)
	require.NoError(t, svc.Set(ctx, SettingWhatsAppReminder, "See you {tenant_name}"))
	require.NoError(t, database.SeedSettings(ctx, db, DefaultSettings()))

	v, err := svc.Get(ctx, SettingWhatsAppReminder)
	require.NoError(t, err)
	assert.Equal(t, "See you {tenant_name}", v)
}
