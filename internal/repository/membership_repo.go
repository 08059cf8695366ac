package repository

import (
	"context"
	"time"

	"dancehub/internal/domain"

	"gorm.io/gorm"
)

type MembershipRepository struct {
	db *gorm.DB
}

func NewMembershipRepository(db *gorm.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

// The composite unique index turns a concurrent duplicate link into a
// unique-violation at commit instead of a race both callers win.
type membershipRow struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	UserID    int64     `gorm:"column:user_id;uniqueIndex:idx_user_school"`
	SchoolID  int64     `gorm:"column:school_id;uniqueIndex:idx_user_school"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (membershipRow) TableName() string { return "memberships" }

func (r *MembershipRepository) GetByUserID(ctx context.Context, userID int64) ([]domain.Membership, error) {
	var rows []membershipRow
	tx := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Membership, 0, len(rows))
	for _, m := range rows {
		out = append(out, domain.Membership{
			ID:        m.ID,
			UserID:    m.UserID,
			SchoolID:  m.SchoolID,
			CreatedAt: m.CreatedAt,
		})
	}
	return out, nil
}

func MembershipInsertOp(userID, schoolID int64) BatchOp {
	return BatchOp{
		Table: "memberships",
		Op:    OpSet,
		Row: &membershipRow{
			UserID:    userID,
			SchoolID:  schoolID,
			CreatedAt: time.Now(),
		},
	}
}

func MembershipDeleteOp(userID, schoolID int64) BatchOp {
	return BatchOp{
		Table: "memberships",
		Op:    OpDelete,
		Where: map[string]any{"user_id": userID, "school_id": schoolID},
	}
}

func MembershipDeleteAllOp(userID int64) BatchOp {
	return BatchOp{
		Table: "memberships",
		Op:    OpDelete,
		Where: map[string]any{"user_id": userID},
	}
}
