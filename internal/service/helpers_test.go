package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"
	"time"

	"github.com/Eursukkul/rental-backoffice/internal/models"
	"github.com/Eursukkul/rental-backoffice/pkg/cache"
	"github.com/Eursukkul/rental-backoffice/pkg/database"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open("sqlite", ":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func float(v float64) *float64 { return &v }

func seedBooking(t *testing.T, db *gorm.DB) *models.Booking {
	t.Helper()
	guest := &models.Guest{
		Name:       "Maria Souza",
		Phone:      "(81) 99999-0000",
		CPF:        "123.456.789-00",
		Companions: "João\r\n\r\nAna",
	}
	require.NoError(t, db.Create(guest).Error)
	booking := &models.Booking{
		GuestID:       guest.ID,
		CheckIn:       day(2024, 1, 10),
		CheckOut:      day(2024, 1, 15),
		Status:        models.StatusConfirmed,
		TotalPrice:    float(2000),
		PaymentMethod: "PIX",
	}
	require.NoError(t, db.Create(booking).Error)
	return booking
}

// --- fakes ---

type published struct {
	key     string
	payload any
}

type fakePublisher struct {
	mu   sync.Mutex
	msgs []published
}

func (p *fakePublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.msgs = append(p.msgs, published{key: routingKey, payload: payload})
	return nil
}

func (p *fakePublisher) keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.msgs))
	for i, m := range p.msgs {
		out[i] = m.key
	}
	return out
}

type memoryCache struct {
	data    map[string]string
	deletes int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string]string{}}
}

func (c *memoryCache) Get(ctx context.Context, key string) (string, error) {
	v, ok := c.data[key]
	if !ok {
		return "", cache.ErrMiss
	}
	return v, nil
}

func (c *memoryCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	c.data[key] = value
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, key string) error {
	c.deletes++
	delete(c.data, key)
	return nil
}

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.Black)
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}
