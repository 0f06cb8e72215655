package service

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/Eursukkul/rental-backoffice/config"
	"github.com/Eursukkul/rental-backoffice/internal/contract"
	"github.com/Eursukkul/rental-backoffice/internal/repository"
	"github.com/Eursukkul/rental-backoffice/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type contractFixture struct {
	db        *gorm.DB
	store     *storage.FileStore
	settings  SettingsService
	contracts ContractService
	sigs      SignatureService
	pub       *fakePublisher
}

func newContractFixture(t *testing.T) *contractFixture {
	db := setupTestDB(t)
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)

	bookingRepo := repository.NewBookingRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	settings := NewSettingsService(repository.NewSettingRepository(db), nil)
	renderer := contract.NewRenderer(contract.NewResolver(config.Property{LandlordName: "Carlos Lima"}))
	pub := &fakePublisher{}

	return &contractFixture{
		db:        db,
		store:     store,
		settings:  settings,
		contracts: NewContractService(bookingRepo, paymentRepo, settings, renderer, store, config.DefaultRulesMarker, pub),
		sigs:      NewSignatureService(bookingRepo, store),
		pub:       pub,
	}
}

func TestContractService_RenderText(t *testing.T) {
	f := newContractFixture(t)
	booking := seedBooking(t, f.db)

	out, err := f.contracts.RenderText(context.Background(), booking.ID)
	require.NoError(t, err)
	assert.True(t, out.Complete())
	assert.Contains(t, out.Text, "Maria Souza")
	assert.Contains(t, out.Text, "Carlos Lima")
	assert.Contains(t, out.Text, "João, Ana")
	assert.Contains(t, out.Text, contract.TenantSignatureMarker)
}

func TestContractService_RenderTextWithBrokenTemplate(t *testing.T) {
	f := newContractFixture(t)
	booking := seedBooking(t, f.db)
	ctx := context.Background()
	require.NoError(t, f.settings.Set(ctx, SettingContractTemplate, "Tenant {tenant_name}, fee {late_fee}"))

	out, err := f.contracts.RenderText(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"late_fee"}, out.Missing)
	assert.Contains(t, out.Text, "{late_fee}")
	assert.Contains(t, out.Text, "[Template error: missing placeholder(s): {late_fee}]")
}

func TestContractService_GeneratePDF(t *testing.T) {
	f := newContractFixture(t)
	booking := seedBooking(t, f.db)
	ctx := context.Background()

	_, err := f.contracts.OpenPDF(ctx, booking.ID)
	assert.ErrorIs(t, err, ErrContractNotFound)

	_, err = f.sigs.UploadLandlord(ctx, testPNG(t, 300, 100))
	require.NoError(t, err)
	_, err = f.sigs.UploadTenant(ctx, booking.ID, testPNG(t, 300, 100))
	require.NoError(t, err)

	path, err := f.contracts.GeneratePDF(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, f.store.Path(storage.ContractKey(booking.ID)), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))

	opened, err := f.contracts.OpenPDF(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, path, opened)
	assert.Equal(t, []string{"contract.generated"}, f.pub.keys())

	// Regenerating overwrites the same artifact.
	again, err := f.contracts.GeneratePDF(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, path, again)
}

func TestContractService_GeneratePDFWithoutSignatures(t *testing.T) {
	f := newContractFixture(t)
	booking := seedBooking(t, f.db)

	path, err := f.contracts.GeneratePDF(context.Background(), booking.ID)
	require.NoError(t, err)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestContractService_BookingNotFound(t *testing.T) {
	f := newContractFixture(t)

	_, err := f.contracts.RenderText(context.Background(), 404)
	assert.ErrorIs(t, err, ErrBookingNotFound)
	_, err = f.contracts.GeneratePDF(context.Background(), 404)
	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.Empty(t, f.pub.keys())
}

func TestSignatureService_RejectsNonImages(t *testing.T) {
	f := newContractFixture(t)
	booking := seedBooking(t, f.db)

	_, err := f.sigs.UploadTenant(context.Background(), booking.ID, []byte("not an image"))
	assert.ErrorIs(t, err, ErrInvalidImage)

	_, err = f.sigs.UploadTenant(context.Background(), 999, testPNG(t, 10, 10))
	assert.ErrorIs(t, err, ErrBookingNotFound)

	ok, err := f.store.Exists(context.Background(), storage.TenantSignatureKey(booking.ID))
	require.NoError(t, err)
	assert.False(t, ok)
}
