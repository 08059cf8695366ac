package membership

import (
	"context"

	"dancehub/internal/domain"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type CourseRepository interface {
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Course, error)
}

// MembershipRepository reads the user/school join journal.
type MembershipRepository interface {
	GetByUserID(ctx context.Context, userID int64) ([]domain.Membership, error)
}

// EventPublisher receives reconciliation events for the admin live feed.
// A nil publisher disables the feed.
type EventPublisher interface {
	Publish(event string, payload any)
}
