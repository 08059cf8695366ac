package repository

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"dancehub/internal/domain"

	"gorm.io/gorm"
)

type InstructorRepository struct {
	db *gorm.DB
}

func NewInstructorRepository(db *gorm.DB) *InstructorRepository {
	return &InstructorRepository{db: db}
}

type instructorRow struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	UserID      int64     `gorm:"column:user_id;index"`
	DisplayName string    `gorm:"column:display_name"`
	Email       string    `gorm:"column:email"`
	Specialties string    `gorm:"column:specialties"`
	Bio         *string   `gorm:"column:bio"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (instructorRow) TableName() string { return "instructors" }

func toDomainInstructor(m instructorRow) *domain.Instructor {
	var specialties []string
	if m.Specialties != "" {
		_ = json.Unmarshal([]byte(m.Specialties), &specialties)
	}
	var bio string
	if m.Bio != nil {
		bio = *m.Bio
	}

	return &domain.Instructor{
		ID:          m.ID,
		UserID:      m.UserID,
		DisplayName: m.DisplayName,
		Email:       m.Email,
		Specialties: specialties,
		Bio:         bio,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toInstructorRow(i *domain.Instructor) instructorRow {
	var bio *string
	if i.Bio != "" {
		v := i.Bio
		bio = &v
	}

	return instructorRow{
		ID:          i.ID,
		UserID:      i.UserID,
		DisplayName: i.DisplayName,
		Email:       strings.TrimSpace(strings.ToLower(i.Email)),
		Specialties: encodeJSON(i.Specialties),
		Bio:         bio,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

func (r *InstructorRepository) Create(ctx context.Context, i *domain.Instructor) error {
	m := toInstructorRow(i)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*i = *toDomainInstructor(m)
	return nil
}

func (r *InstructorRepository) GetByUserID(ctx context.Context, userID int64) ([]domain.Instructor, error) {
	var rows []instructorRow
	tx := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Instructor, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainInstructor(m))
	}
	return out, nil
}

// InstructorProfileOp stages the instructor-record side of a profile
// dual-write.
func InstructorProfileOp(i *domain.Instructor) BatchOp {
	return BatchOp{
		Table: "instructors",
		ID:    i.ID,
		Op:    OpUpdate,
		Fields: map[string]any{
			"display_name": i.DisplayName,
			"email":        strings.TrimSpace(strings.ToLower(i.Email)),
			"specialties":  encodeJSON(i.Specialties),
			"bio":          i.Bio,
			"updated_at":   time.Now(),
		},
	}
}

// InstructorDeleteByUserOp stages removal of every instructor record
// belonging to a user.
func InstructorDeleteByUserOp(userID int64) BatchOp {
	return BatchOp{
		Table: "instructors",
		Op:    OpDelete,
		Where: map[string]any{"user_id": userID},
	}
}
