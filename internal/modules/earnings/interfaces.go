package earnings

import (
	"context"

	"dancehub/internal/domain"
)

type CourseRepository interface {
	GetBySchoolID(ctx context.Context, schoolID int64) ([]domain.Course, error)
	GetByInstructorID(ctx context.Context, instructorID int64) ([]domain.Course, error)
}

type BookingRepository interface {
	GetAll(ctx context.Context) ([]domain.Booking, error)
}

type TicketRepository interface {
	GetBySellerID(ctx context.Context, sellerID int64) ([]domain.Ticket, error)
}
