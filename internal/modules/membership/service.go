package membership

import (
	"context"
	"errors"

	"dancehub/internal/domain"
	"dancehub/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Service keeps the many-to-many relations between users, schools,
// instructors and courses consistent. Every operation reads the affected
// records, computes the full new state and commits it as one atomic batch;
// partial writes never happen.
type Service struct {
	users       UserRepository
	courses     CourseRepository
	memberships MembershipRepository
	batch       repository.BatchWriter
	events      EventPublisher
}

func NewService(users UserRepository, courses CourseRepository, memberships MembershipRepository, batch repository.BatchWriter, events EventPublisher) *Service {
	return &Service{users: users, courses: courses, memberships: memberships, batch: batch, events: events}
}

// LinkExistingUser attaches an already-registered account to a tenant as a
// student. Additive only: other school memberships and existing course
// enrollments survive untouched. Re-linking an existing membership fails
// with ErrAlreadyMember.
func (s *Service) LinkExistingUser(ctx context.Context, email string, tenant TenantRef, courseIDs []int64) error {
	if tenant.SchoolID == nil && tenant.InstructorID == nil {
		return ErrValidation
	}
	if tenant.SchoolID != nil && *tenant.SchoolID <= 0 {
		return ErrValidation
	}
	if tenant.InstructorID != nil && *tenant.InstructorID <= 0 {
		return ErrValidation
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if tenant.SchoolID != nil && user.MemberOfSchool(*tenant.SchoolID) {
		return ErrAlreadyMember
	}

	user.Roles = domain.UnionRoles(user.Roles, domain.RoleStudent)

	// Fold the legacy scalar into the set before mutating, so pre-migration
	// records come out of this operation fully normalized.
	schoolSet := user.SchoolIDs
	if user.SchoolID != nil {
		schoolSet = domain.UnionIDs(schoolSet, *user.SchoolID)
	}

	var ops []repository.BatchOp

	if tenant.SchoolID != nil {
		t := *tenant.SchoolID
		user.SchoolIDs = domain.UnionIDs(schoolSet, t)
		if user.SchoolID == nil {
			user.SchoolID = &t
		}
		ops = append(ops, repository.MembershipInsertOp(user.ID, t))
	} else {
		user.SchoolIDs = schoolSet
	}

	if tenant.InstructorID != nil && user.InstructorID == nil {
		user.InstructorID = tenant.InstructorID
	}

	requested := domain.UnionIDs(nil, courseIDs...)
	added := missingIDs(user.CourseIDs, requested)
	user.CourseIDs = domain.UnionIDs(user.CourseIDs, requested...)

	courseOps, err := s.enrollOps(ctx, user.ID, added)
	if err != nil {
		return err
	}

	ops = append(ops, repository.UserReconcileOp(user))
	ops = append(ops, courseOps...)

	if err := s.batch.BatchWrite(ctx, ops); err != nil {
		if isDuplicateKey(err) {
			// two concurrent links raced past the read; the journal's
			// unique index decided the loser
			return ErrAlreadyMember
		}
		return err
	}

	s.publish("member.linked", map[string]any{"user_id": user.ID, "tenant": tenant})
	return nil
}

// DetachFromTenant removes one school membership without touching the
// account, its roles, courses or other tenants. Idempotent: detaching an
// absent membership is a no-op.
func (s *Service) DetachFromTenant(ctx context.Context, userID, schoolID int64) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if !user.MemberOfSchool(schoolID) {
		return nil
	}

	schoolSet := user.SchoolIDs
	if user.SchoolID != nil {
		schoolSet = domain.UnionIDs(schoolSet, *user.SchoolID)
	}
	user.SchoolIDs = domain.RemoveID(schoolSet, schoolID)

	// The scalar mirror is nulled only when it pointed at the detached
	// tenant; otherwise it still names a remaining membership.
	if user.SchoolID != nil && *user.SchoolID == schoolID {
		user.SchoolID = nil
	}

	ops := []repository.BatchOp{
		repository.UserReconcileOp(user),
		repository.MembershipDeleteOp(userID, schoolID),
	}
	if err := s.batch.BatchWrite(ctx, ops); err != nil {
		return err
	}

	s.publish("member.detached", map[string]any{"user_id": userID, "school_id": schoolID})
	return nil
}

// AssignCourses replaces the user's course list wholesale. Unlike linking,
// this is a full re-assignment: courses missing from the new list are
// dropped, on both sides of the relation.
func (s *Service) AssignCourses(ctx context.Context, userID int64, courseIDs []int64) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	desired := domain.UnionIDs(nil, courseIDs...)
	added := missingIDs(user.CourseIDs, desired)
	removed := missingIDs(desired, user.CourseIDs)

	enroll, err := s.enrollOps(ctx, user.ID, added)
	if err != nil {
		return err
	}
	unenroll, err := s.unenrollOps(ctx, user.ID, removed)
	if err != nil {
		return err
	}

	user.CourseIDs = desired

	ops := []repository.BatchOp{repository.UserReconcileOp(user)}
	ops = append(ops, enroll...)
	ops = append(ops, unenroll...)

	if err := s.batch.BatchWrite(ctx, ops); err != nil {
		return err
	}

	s.publish("member.courses_assigned", map[string]any{"user_id": userID, "course_ids": desired})
	return nil
}

// enrollOps stages the course-side half of an enrollment: the student set
// and the participant count, kept in lockstep with the user side so the
// relation never goes one-sided.
func (s *Service) enrollOps(ctx context.Context, userID int64, courseIDs []int64) ([]repository.BatchOp, error) {
	if len(courseIDs) == 0 {
		return nil, nil
	}
	courses, err := s.courses.GetByIDs(ctx, courseIDs)
	if err != nil {
		return nil, err
	}
	if len(courses) != len(courseIDs) {
		return nil, ErrNotFound
	}

	ops := make([]repository.BatchOp, 0, len(courses))
	for i := range courses {
		c := &courses[i]
		if domain.ContainsID(c.StudentIDs, userID) {
			continue
		}
		c.StudentIDs = domain.UnionIDs(c.StudentIDs, userID)
		c.CurrentParticipants = len(c.StudentIDs)
		ops = append(ops, repository.CourseRosterOp(c))
	}
	return ops, nil
}

func (s *Service) unenrollOps(ctx context.Context, userID int64, courseIDs []int64) ([]repository.BatchOp, error) {
	if len(courseIDs) == 0 {
		return nil, nil
	}
	courses, err := s.courses.GetByIDs(ctx, courseIDs)
	if err != nil {
		return nil, err
	}

	ops := make([]repository.BatchOp, 0, len(courses))
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

// Memberships lists a user's school memberships from the join journal.
func (s *Service) Memberships(ctx context.Context, userID int64) ([]domain.Membership, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.memberships.GetByUserID(ctx, userID)
}

func (s *Service) publish(event string, payload any) {
	if s.events != nil {
		s.events.Publish(event, payload)
	}
}

// missingIDs returns the ids in want that have does not contain.
func missingIDs(have, want []int64) []int64 {
	var out []int64
	for _, id := range want {
		if !domain.ContainsID(have, id) {
			out = append(out, id)
		}
	}
	return out
}

func isDuplicateKey(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

