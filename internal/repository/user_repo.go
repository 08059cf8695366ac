package repository

import (
	"context"
	"strings"
	"time"

	"dancehub/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userRow struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	DisplayName string    `gorm:"column:display_name"`
	Email       string    `gorm:"column:email;uniqueIndex"`
	Phone       *string   `gorm:"column:phone"`
	PhotoURL    *string   `gorm:"column:photo_url"`
	Roles       string    `gorm:"column:roles"`
	Level       *string   `gorm:"column:level"`
	SchoolID    *int64    `gorm:"column:school_id"`
	SchoolIDs   string    `gorm:"column:school_ids"`
	InstrID     *int64    `gorm:"column:instructor_id"`
	CourseIDs   string    `gorm:"column:course_ids"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (userRow) TableName() string { return "users" }

func toDomainUser(m userRow) *domain.User {
	var phone, photo, level string
	if m.Phone != nil {
		phone = *m.Phone
	}
	if m.PhotoURL != nil {
		photo = *m.PhotoURL
	}
	if m.Level != nil {
		level = *m.Level
	}

	return &domain.User{
		ID:           m.ID,
		DisplayName:  m.DisplayName,
		Email:        m.Email,
		Phone:        phone,
		PhotoURL:     photo,
		Roles:        domain.NormalizeRoles(m.Roles),
		Level:        domain.Level(level),
		SchoolID:     m.SchoolID,
		SchoolIDs:    decodeIDs(m.SchoolIDs),
		InstructorID: m.InstrID,
		CourseIDs:    decodeIDs(m.CourseIDs),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toUserRow(u *domain.User) userRow {
	email := strings.TrimSpace(strings.ToLower(u.Email))

	var phone, photo, level *string
	if u.Phone != "" {
		v := u.Phone
		phone = &v
	}
	if u.PhotoURL != "" {
		v := u.PhotoURL
		photo = &v
	}
	if u.Level != "" {
		v := string(u.Level)
		level = &v
	}

	return userRow{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		Email:       email,
		Phone:       phone,
		PhotoURL:    photo,
		Roles:       domain.DenormalizeRoles(u.Roles),
		Level:       level,
		SchoolID:    u.SchoolID,
		SchoolIDs:   encodeIDs(u.SchoolIDs),
		InstrID:     u.InstructorID,
		CourseIDs:   encodeIDs(u.CourseIDs),
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	m := toUserRow(u)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*u = *toDomainUser(m)
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m userRow
	tx := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var m userRow
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	m := toUserRow(u)
	return r.db.WithContext(ctx).Save(&m).Error
}

// UserReconcileOp stages the relational-field rewrite for one user: roles,
// the school set with its scalar mirror, the instructor pointer and the
// course set, in a single update.
func UserReconcileOp(u *domain.User) BatchOp {
	return BatchOp{
		Table: "users",
		ID:    u.ID,
		Op:    OpUpdate,
		Fields: map[string]any{
			"roles":         domain.DenormalizeRoles(u.Roles),
			"school_id":     u.SchoolID,
			"school_ids":    encodeIDs(u.SchoolIDs),
			"instructor_id": u.InstructorID,
			"course_ids":    encodeIDs(u.CourseIDs),
			"updated_at":    time.Now(),
		},
	}
}

// UserProfileOp stages a profile-field update (dual-write side A).
func UserProfileOp(u *domain.User) BatchOp {
	return BatchOp{
		Table: "users",
		ID:    u.ID,
		Op:    OpUpdate,
		Fields: map[string]any{
			"display_name": u.DisplayName,
			"email":        strings.TrimSpace(strings.ToLower(u.Email)),
			"phone":        u.Phone,
			"photo_url":    u.PhotoURL,
			"level":        string(u.Level),
			"updated_at":   time.Now(),
		},
	}
}

func UserDeleteOp(id int64) BatchOp {
	return BatchOp{Table: "users", ID: id, Op: OpDelete}
}
