package repository

import (
	"context"
	"strings"
	"time"

	"dancehub/internal/domain"

	"gorm.io/gorm"
)

type IdentityRepository struct {
	db *gorm.DB
}

func NewIdentityRepository(db *gorm.DB) *IdentityRepository {
	return &IdentityRepository{db: db}
}

type identityRow struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	UserID       int64     `gorm:"column:user_id;uniqueIndex"`
	Email        string    `gorm:"column:email;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (identityRow) TableName() string { return "identities" }

func toDomainIdentity(m identityRow) *domain.Identity {
	return &domain.Identity{
		ID:           m.ID,
		UserID:       m.UserID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
	}
}

func (r *IdentityRepository) Create(ctx context.Context, ident *domain.Identity) error {
	m := identityRow{
		UserID:       ident.UserID,
		Email:        strings.TrimSpace(strings.ToLower(ident.Email)),
		PasswordHash: ident.PasswordHash,
		CreatedAt:    ident.CreatedAt,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*ident = *toDomainIdentity(m)
	return nil
}

func (r *IdentityRepository) GetByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	var m identityRow
	tx := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainIdentity(m), nil
}

func (r *IdentityRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Identity, error) {
	var m identityRow
	tx := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainIdentity(m), nil
}

// DeleteByUserID removes the credential record. Deliberately not part of
// any batch: the deletion cascade must confirm the profile batch committed
// before credentials go away.
func (r *IdentityRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&identityRow{}).Error
}
