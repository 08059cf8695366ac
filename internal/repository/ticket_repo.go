package repository

import (
	"context"
	"time"

	"dancehub/internal/domain"

	"gorm.io/gorm"
)

type TicketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

type ticketRow struct {
	ID              int64     `gorm:"column:id;primaryKey"`
	SellerID        int64     `gorm:"column:seller_id;index"`
	DiscountedPrice string    `gorm:"column:discounted_price"`
	FestivalName    string    `gorm:"column:festival_name"`
	Status          string    `gorm:"column:status"`
	CreatedAt       time.Time `gorm:"column:created_at"`
}

func (ticketRow) TableName() string { return "tickets" }

func toDomainTicket(m ticketRow) domain.Ticket {
	return domain.Ticket{
		ID:              m.ID,
		SellerID:        m.SellerID,
		DiscountedPrice: m.DiscountedPrice,
		FestivalName:    m.FestivalName,
		Status:          m.Status,
		CreatedAt:       m.CreatedAt,
	}
}

func (r *TicketRepository) Create(ctx context.Context, t *domain.Ticket) error {
	m := ticketRow{
		ID:              t.ID,
		SellerID:        t.SellerID,
		DiscountedPrice: t.DiscountedPrice,
		FestivalName:    t.FestivalName,
		Status:          t.Status,
		CreatedAt:       t.CreatedAt,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	t.ID = m.ID
	return nil
}

// GetBySellerID filters server-side; sellers are first-class, unlike
// course membership.
func (r *TicketRepository) GetBySellerID(ctx context.Context, sellerID int64) ([]domain.Ticket, error) {
	var rows []ticketRow
	tx := r.db.WithContext(ctx).Where("seller_id = ?", sellerID).Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Ticket, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainTicket(m))
	}
	return out, nil
}
