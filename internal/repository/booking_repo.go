package repository

import (
	"context"

	"github.com/Eursukkul/rental-backoffice/internal/models"
	"gorm.io/gorm"
)

type BookingRepository interface {
	// FindByID loads the booking with its guest; gorm.ErrRecordNotFound when absent.
	FindByID(ctx context.Context, id uint) (*models.Booking, error)
	GetDB() *gorm.DB
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *bookingRepository) FindByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).Preload("Guest").First(&booking, id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}
