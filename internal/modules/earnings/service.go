package earnings

import (
	"context"
	"fmt"
	"sort"
	"time"

	"dancehub/internal/domain"
)

var ErrUnknownKind = fmt.Errorf("unknown subject kind")

// Service merges course bookings and festival ticket sales into one
// normalized ledger for a school or instructor. Strictly read-only; the
// only errors it returns are store I/O failures.
type Service struct {
	courses  CourseRepository
	bookings BookingRepository
	tickets  TicketRepository

	// injectable clock for the calendar-month fold
	now func() time.Time
}

func NewService(courses CourseRepository, bookings BookingRepository, tickets TicketRepository) *Service {
	return &Service{
		courses:  courses,
		bookings: bookings,
		tickets:  tickets,
		now:      time.Now,
	}
}

func (s *Service) ComputeEarnings(ctx context.Context, subjectID int64, kind Kind) (*Report, error) {
	courses, err := s.subjectCourses(ctx, subjectID, kind)
	if err != nil {
		return nil, fmt.Errorf("fetch courses: %w", err)
	}

	courseIDs := make(map[int64]struct{}, len(courses))
	courseNames := make(map[int64]string, len(courses))
	for _, c := range courses {
		courseIDs[c.ID] = struct{}{}
		courseNames[c.ID] = c.Name
	}

	// Bookings reference courses by lesson id only, so the whole
	// collection is fetched and filtered here. Fine while course counts
	// per subject stay in the low hundreds.
	allBookings, err := s.bookings.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch bookings: %w", err)
	}

	tickets, err := s.tickets.GetBySellerID(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("fetch tickets: %w", err)
	}

	now := s.now()
	txs := make([]Transaction, 0, len(allBookings)+len(tickets))
	for _, b := range allBookings {
		if _, ok := courseIDs[b.CourseID]; !ok {
			continue
		}
		txs = append(txs, normalizeBooking(b, courseNames, now))
	}
	for _, t := range tickets {
		txs = append(txs, normalizeTicket(t, now))
	}

	summary := fold(txs, now)

	sort.Slice(txs, func(i, j int) bool {
		return txs[i].Date.After(txs[j].Date)
	})

	return &Report{Summary: summary, Transactions: txs}, nil
}

func (s *Service) subjectCourses(ctx context.Context, subjectID int64, kind Kind) ([]domain.Course, error) {
	switch kind {
	case KindSchool:
		return s.courses.GetBySchoolID(ctx, subjectID)
	case KindInstructor:
		return s.courses.GetByInstructorID(ctx, subjectID)
	}
	return nil, ErrUnknownKind
}

// fold walks the merged ledger once. Cancelled entries count nowhere.
// Tickets only ever reach the gross totals: ticket payouts are treated as
// instantaneous, so they carry no pending/paid split.
func fold(txs []Transaction, now time.Time) Summary {
	var sum Summary
	for _, tx := range txs {
		if tx.Status == StatusCancelled {
			continue
		}

		sum.TotalGross += tx.Amount

		if tx.Date.Year() == now.Year() && tx.Date.Month() == now.Month() {
			sum.MonthlyGross += tx.Amount
		}

		if tx.Type != TypeCourse {
			continue
		}
		switch tx.Status {
		case StatusPending:
			sum.PendingAmount += tx.Amount
		case StatusPaid:
			sum.PaidAmount += tx.Amount
		}
	}
	return sum
}
