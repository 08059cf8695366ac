package repository

import (
	"context"
	"time"

	"dancehub/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingRow struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	CourseID      int64     `gorm:"column:course_id;index"`
	StudentName   string    `gorm:"column:student_name"`
	Price         string    `gorm:"column:price"`
	PaymentStatus string    `gorm:"column:payment_status"`
	PayoutStatus  string    `gorm:"column:payout_status"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

func (bookingRow) TableName() string { return "bookings" }

func toDomainBooking(m bookingRow) domain.Booking {
	return domain.Booking{
		ID:            m.ID,
		CourseID:      m.CourseID,
		StudentName:   m.StudentName,
		Price:         m.Price,
		PaymentStatus: domain.PaymentStatus(m.PaymentStatus),
		PayoutStatus:  domain.PayoutStatus(m.PayoutStatus),
		CreatedAt:     m.CreatedAt,
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := bookingRow{
		ID:            b.ID,
		CourseID:      b.CourseID,
		StudentName:   b.StudentName,
		Price:         b.Price,
		PaymentStatus: string(b.PaymentStatus),
		PayoutStatus:  string(b.PayoutStatus),
		CreatedAt:     b.CreatedAt,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	b.ID = m.ID
	return nil
}

// GetAll returns the full booking collection. Filtering by course happens
// in memory in the aggregator; course counts per subject stay in the low
// hundreds.
func (r *BookingRepository) GetAll(ctx context.Context) ([]domain.Booking, error) {
	var rows []bookingRow
	tx := r.db.WithContext(ctx).Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainBooking(m))
	}
	return out, nil
}
