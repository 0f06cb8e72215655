package repository

import (
	"context"

	"github.com/Eursukkul/rental-backoffice/internal/models"
	"gorm.io/gorm"
)

type PaymentRepository interface {
	DeleteByBooking(ctx context.Context, tx *gorm.DB, bookingID uint) error
	Create(ctx context.Context, tx *gorm.DB, entry *models.PaymentEntry) error
	Update(ctx context.Context, tx *gorm.DB, entry *models.PaymentEntry) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	FindByID(ctx context.Context, id uint) (*models.PaymentEntry, error)
	FindByBooking(ctx context.Context, bookingID uint) ([]models.PaymentEntry, error)
	FindByStatus(ctx context.Context, status models.PaymentStatus) ([]models.PaymentEntry, error)
	GetDB() *gorm.DB
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *paymentRepository) DeleteByBooking(ctx context.Context, tx *gorm.DB, bookingID uint) error {
	return tx.WithContext(ctx).Where("booking_id = ?", bookingID).Delete(&models.PaymentEntry{}).Error
}

func (r *paymentRepository) Create(ctx context.Context, tx *gorm.DB, entry *models.PaymentEntry) error {
	return tx.WithContext(ctx).Create(entry).Error
}

func (r *paymentRepository) Update(ctx context.Context, tx *gorm.DB, entry *models.PaymentEntry) error {
	return tx.WithContext(ctx).Save(entry).Error
}

func (r *paymentRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	res := tx.WithContext(ctx).Delete(&models.PaymentEntry{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *paymentRepository) FindByID(ctx context.Context, id uint) (*models.PaymentEntry, error) {
	var entry models.PaymentEntry
	if err := r.db.WithContext(ctx).First(&entry, id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindByBooking returns the ledger ordered by due date.
func (r *paymentRepository) FindByBooking(ctx context.Context, bookingID uint) ([]models.PaymentEntry, error) {
	var entries []models.PaymentEntry
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("due_date ASC, id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// FindByStatus returns entries across bookings with booking and guest preloaded.
func (r *paymentRepository) FindByStatus(ctx context.Context, status models.PaymentStatus) ([]models.PaymentEntry, error) {
	var entries []models.PaymentEntry
	err := r.db.WithContext(ctx).
		Preload("Booking.Guest").
		Where("status = ?", status).
		Order("due_date ASC, id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
