package account

import (
	"context"
	"errors"
	"fmt"

	"dancehub/internal/domain"
	"dancehub/internal/repository"

	"dancehub/internal/modules/auth"
)

// Service runs the account deletion cascade. The order is fixed:
// reauthenticate, commit the role-specific cleanup batch, then delete the
// identity. Identity deletion comes last because the cleanup batch still
// needs an authenticated session to pass store security rules; reversing
// the order would strand the cleanup.
type Service struct {
	idp         IdentityProvider
	courses     CourseRepository
	instructors InstructorRepository
	batch       repository.BatchWriter
	events      EventPublisher
	loggerf     func(format string, args ...interface{})
}

func NewService(
	idp IdentityProvider,
	courses CourseRepository,
	instructors InstructorRepository,
	batch repository.BatchWriter,
	events EventPublisher,
	loggerf func(format string, args ...interface{}),
) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{
		idp:         idp,
		courses:     courses,
		instructors: instructors,
		batch:       batch,
		events:      events,
		loggerf:     loggerf,
	}
}

// DeleteAccount removes the calling user's own account. If the cleanup
// batch fails the account stays fully usable; if only the final identity
// deletion fails the inconsistency is surfaced, never silently retried.
func (s *Service) DeleteAccount(ctx context.Context, userID int64, role domain.Role, password string, schoolID *int64) error {
	if err := s.idp.Reauthenticate(ctx, userID, password); err != nil {
		if errors.Is(err, auth.ErrInvalidCredential) {
			return ErrInvalidCredential
		}
		return err
	}

	ops, err := s.cleanupOps(ctx, userID, role, schoolID)
	if err != nil {
		return fmt.Errorf("prepare cleanup: %w", err)
	}

	if err := s.batch.BatchWrite(ctx, ops); err != nil {
		return fmt.Errorf("cleanup batch: %w", err)
	}

	if err := s.idp.DeleteIdentity(ctx, userID); err != nil {
		s.loggerf("level=error msg=identity orphaned after account cleanup user_id=%d role=%s err=%v", userID, role, err)
		return ErrIdentityOrphaned
	}

	s.publish("account.deleted", map[string]any{"user_id": userID, "role": role})
	return nil
}

func (s *Service) cleanupOps(ctx context.Context, userID int64, role domain.Role, schoolID *int64) ([]repository.BatchOp, error) {
	ops := []repository.BatchOp{
		repository.UserDeleteOp(userID),
		repository.MembershipDeleteAllOp(userID),
	}

	switch role {
	case domain.RoleStudent:
		rosterOps, err := s.rosterRemovals(ctx, userID)
		if err != nil {
			return nil, err
		}
		ops = append(ops, rosterOps...)

	case domain.RoleInstructor:
		ops = append(ops, repository.InstructorDeleteByUserOp(userID))

		// courses are orphaned from the instructor, not deleted; they
		// reference the instructor record, so resolve those first
		records, err := s.instructors.GetByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
		for _, rec := range records {
			courses, err := s.courses.GetByInstructorID(ctx, rec.ID)
			if err != nil {
				return nil, err
			}
			for _, c := range courses {
				ops = append(ops, repository.CourseInstructorOp(c.ID, 0))
			}
		}

	case domain.RoleSchool:
		// courses and students of the school are left in place; orphaned
		// school references are tolerated
		if schoolID != nil {
			ops = append(ops, repository.SchoolDeleteOp(*schoolID))
		}

	default:
		return nil, ErrValidation
	}

	return ops, nil
}

// rosterRemovals pulls the user out of every course roster. Student
// membership lives inside a JSON column, so the scan happens here.
func (s *Service) rosterRemovals(ctx context.Context, userID int64) ([]repository.BatchOp, error) {
	courses, err := s.courses.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	var ops []repository.BatchOp
	for i := range courses {
		c := &courses[i]
		if !domain.ContainsID(c.StudentIDs, userID) {
			continue
		}
		c.StudentIDs = domain.RemoveID(c.StudentIDs, userID)
		c.CurrentParticipants = len(c.StudentIDs)
		ops = append(ops, repository.CourseRosterOp(c))
	}
	return ops, nil
}

func (s *Service) publish(event string, payload any) {
	if s.events != nil {
		s.events.Publish(event, payload)
	}
}
