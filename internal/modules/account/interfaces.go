package account

import (
	"context"

	"dancehub/internal/domain"
)

// IdentityProvider is the credential side of the platform, consumed only
// here. Reauthenticate must return auth.ErrInvalidCredential semantics via
// the boolean-free error contract: nil means verified.
type IdentityProvider interface {
	Reauthenticate(ctx context.Context, userID int64, password string) error
	DeleteIdentity(ctx context.Context, userID int64) error
}

type CourseRepository interface {
	GetAll(ctx context.Context) ([]domain.Course, error)
	GetByInstructorID(ctx context.Context, instructorID int64) ([]domain.Course, error)
}

type InstructorRepository interface {
	GetByUserID(ctx context.Context, userID int64) ([]domain.Instructor, error)
}

type EventPublisher interface {
	Publish(event string, payload any)
}
