package repository

import (
	"context"
	"strings"
	"time"

	"dancehub/internal/domain"

	"gorm.io/gorm"
)

type SchoolRepository struct {
	db *gorm.DB
}

func NewSchoolRepository(db *gorm.DB) *SchoolRepository {
	return &SchoolRepository{db: db}
}

type schoolRow struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	UserID      int64     `gorm:"column:user_id;index"`
	DisplayName string    `gorm:"column:display_name"`
	Email       string    `gorm:"column:email"`
	Address     *string   `gorm:"column:address"`
	IBAN        *string   `gorm:"column:iban"`
	PaymentInfo *string   `gorm:"column:payment_info"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (schoolRow) TableName() string { return "schools" }

func toDomainSchool(m schoolRow) *domain.School {
	var address, iban, payment string
	if m.Address != nil {
		address = *m.Address
	}
	if m.IBAN != nil {
		iban = *m.IBAN
	}
	if m.PaymentInfo != nil {
		payment = *m.PaymentInfo
	}

	return &domain.School{
		ID:          m.ID,
		UserID:      m.UserID,
		DisplayName: m.DisplayName,
		Email:       m.Email,
		Address:     address,
		IBAN:        iban,
		PaymentInfo: payment,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toSchoolRow(s *domain.School) schoolRow {
	var address, iban, payment *string
	if s.Address != "" {
		v := s.Address
		address = &v
	}
	if s.IBAN != "" {
		v := s.IBAN
		iban = &v
	}
	if s.PaymentInfo != "" {
		v := s.PaymentInfo
		payment = &v
	}

	return schoolRow{
		ID:          s.ID,
		UserID:      s.UserID,
		DisplayName: s.DisplayName,
		Email:       strings.TrimSpace(strings.ToLower(s.Email)),
		Address:     address,
		IBAN:        iban,
		PaymentInfo: payment,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func (r *SchoolRepository) Create(ctx context.Context, s *domain.School) error {
	m := toSchoolRow(s)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*s = *toDomainSchool(m)
	return nil
}

func (r *SchoolRepository) GetByID(ctx context.Context, id int64) (*domain.School, error) {
	var m schoolRow
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainSchool(m), nil
}

func (r *SchoolRepository) GetByUserID(ctx context.Context, userID int64) (*domain.School, error) {
	var m schoolRow
	tx := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainSchool(m), nil
}

func SchoolDeleteOp(id int64) BatchOp {
	return BatchOp{Table: "schools", ID: id, Op: OpDelete}
}
