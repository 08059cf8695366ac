package profile

import (
	"context"
	"errors"

	"dancehub/internal/domain"
	"dancehub/internal/repository"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("not_found")

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type InstructorRepository interface {
	GetByUserID(ctx context.Context, userID int64) ([]domain.Instructor, error)
}

type SchoolRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.School, error)
}

// Service performs profile dual-writes: the User record and its projection
// records (Instructor, School) change together in one batch, never apart.
type Service struct {
	users       UserRepository
	instructors InstructorRepository
	schools     SchoolRepository
	batch       repository.BatchWriter
}

func NewService(users UserRepository, instructors InstructorRepository, schools SchoolRepository, batch repository.BatchWriter) *Service {
	return &Service{users: users, instructors: instructors, schools: schools, batch: batch}
}

type UpdateInstructorRequest struct {
	DisplayName string   `json:"display_name" validate:"required"`
	Email       string   `json:"email" validate:"required,email"`
	Phone       string   `json:"phone,omitempty"`
	PhotoURL    string   `json:"photo_url,omitempty"`
	Level       string   `json:"level,omitempty"`
	Specialties []string `json:"specialties"`
	Bio         string   `json:"bio,omitempty"`
}

func (s *Service) UpdateInstructorProfile(ctx context.Context, userID int64, req UpdateInstructorRequest) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	user.DisplayName = req.DisplayName
	user.Email = req.Email
	user.Phone = req.Phone
	user.PhotoURL = req.PhotoURL
	user.Level = domain.Level(req.Level)

	ops := []repository.BatchOp{repository.UserProfileOp(user)}

	records, err := s.instructors.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	for i := range records {
		rec := &records[i]
		rec.DisplayName = req.DisplayName
		rec.Email = req.Email
		rec.Specialties = req.Specialties
		rec.Bio = req.Bio
		ops = append(ops, repository.InstructorProfileOp(rec))
	}

	return s.batch.BatchWrite(ctx, ops)
}

type UpdateSchoolRequest struct {
	DisplayName string `json:"display_name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Address     string `json:"address,omitempty"`
	IBAN        string `json:"iban,omitempty"`
	PaymentInfo string `json:"payment_info,omitempty"`
}

func (s *Service) UpdateSchoolProfile(ctx context.Context, userID int64, req UpdateSchoolRequest) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	user.DisplayName = req.DisplayName
	user.Email = req.Email

	ops := []repository.BatchOp{repository.UserProfileOp(user)}

	school, err := s.schools.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if school != nil {
		school.DisplayName = req.DisplayName
		school.Email = req.Email
		school.Address = req.Address
		school.IBAN = req.IBAN
		school.PaymentInfo = req.PaymentInfo
		ops = append(ops, schoolProfileOp(school))
	}

	return s.batch.BatchWrite(ctx, ops)
}

func schoolProfileOp(school *domain.School) repository.BatchOp {
	return repository.BatchOp{
		Table: "schools",
		ID:    school.ID,
		Op:    repository.OpUpdate,
		Fields: map[string]any{
			"display_name": school.DisplayName,
			"email":        school.Email,
			"address":      school.Address,
			"iban":         school.IBAN,
			"payment_info": school.PaymentInfo,
		},
	}
}
