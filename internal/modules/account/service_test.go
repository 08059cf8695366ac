package account

import (
	"context"
	"errors"
	"testing"

	"dancehub/internal/domain"
	"dancehub/internal/modules/auth"
	"dancehub/internal/repository"
)

type mockIdentityProvider struct {
	reauthErr      error
	deleteErr      error
	deleteCalls    int
	deletedUserIDs []int64
}

func (m *mockIdentityProvider) Reauthenticate(ctx context.Context, userID int64, password string) error {
	return m.reauthErr
}

func (m *mockIdentityProvider) DeleteIdentity(ctx context.Context, userID int64) error {
	m.deleteCalls++
	m.deletedUserIDs = append(m.deletedUserIDs, userID)
	return m.deleteErr
}

type mockCourseRepo struct {
	all          []domain.Course
	byInstructor []domain.Course
	err          error
}

func (m *mockCourseRepo) GetAll(ctx context.Context) ([]domain.Course, error) {
	return m.all, m.err
}

func (m *mockCourseRepo) GetByInstructorID(ctx context.Context, instructorID int64) ([]domain.Course, error) {
	return m.byInstructor, m.err
}

type mockInstructorRepo struct {
	records []domain.Instructor
}

func (m *mockInstructorRepo) GetByUserID(ctx context.Context, userID int64) ([]domain.Instructor, error) {
	return m.records, nil
}

type mockBatch struct {
	ops       []repository.BatchOp
	err       error
	committed int
}

func (m *mockBatch) BatchWrite(ctx context.Context, ops []repository.BatchOp) error {
	if m.err != nil {
		return m.err
	}
	m.committed++
	m.ops = ops
	return nil
}

func newTestService(idp *mockIdentityProvider, courses *mockCourseRepo, batch *mockBatch) *Service {
	return NewService(idp, courses, &mockInstructorRepo{}, batch, nil, func(string, ...interface{}) {})
}

func TestDeleteAccount_WrongPasswordStopsEverything(t *testing.T) {
	idp := &mockIdentityProvider{reauthErr: auth.ErrInvalidCredential}
	batch := &mockBatch{}
	svc := newTestService(idp, &mockCourseRepo{}, batch)

	err := svc.DeleteAccount(context.Background(), 7, domain.RoleStudent, "wrong", nil)
	if !errors.Is(err, ErrInvalidCredential) {
		t.Fatalf("expected ErrInvalidCredential, got %v", err)
	}
	if batch.committed != 0 {
		t.Fatal("cleanup batch ran despite failed reauthentication")
	}
	if idp.deleteCalls != 0 {
		t.Fatal("identity deleted despite failed reauthentication")
	}
}

func TestDeleteAccount_BatchFailureLeavesIdentityIntact(t *testing.T) {
	idp := &mockIdentityProvider{}
	batch := &mockBatch{err: errors.New("store unavailable")}
	svc := newTestService(idp, &mockCourseRepo{}, batch)

	err := svc.DeleteAccount(context.Background(), 7, domain.RoleStudent, "pw", nil)
	if err == nil {
		t.Fatal("expected error from failed batch")
	}
	if idp.deleteCalls != 0 {
		t.Fatal("identity must not be deleted when the cleanup batch fails")
	}
}

func TestDeleteAccount_IdentityFailureIsSurfacedNotRetried(t *testing.T) {
	idp := &mockIdentityProvider{deleteErr: errors.New("provider down")}
	batch := &mockBatch{}
	svc := newTestService(idp, &mockCourseRepo{}, batch)

	err := svc.DeleteAccount(context.Background(), 7, domain.RoleStudent, "pw", nil)
	if !errors.Is(err, ErrIdentityOrphaned) {
		t.Fatalf("expected ErrIdentityOrphaned, got %v", err)
	}
	if batch.committed != 1 {
		t.Fatal("cleanup batch should have committed before identity deletion")
	}
	if idp.deleteCalls != 1 {
		t.Fatalf("expected exactly one identity deletion attempt, got %d", idp.deleteCalls)
	}
}

func TestDeleteAccount_StudentPulledFromRosters(t *testing.T) {
	idp := &mockIdentityProvider{}
	courses := &mockCourseRepo{all: []domain.Course{
		{ID: 1, StudentIDs: []int64{7, 8}, CurrentParticipants: 2},
		{ID: 2, StudentIDs: []int64{8}, CurrentParticipants: 1},
		{ID: 3, StudentIDs: []int64{7}, CurrentParticipants: 1},
	}}
	batch := &mockBatch{}
	svc := newTestService(idp, courses, batch)

	if err := svc.DeleteAccount(context.Background(), 7, domain.RoleStudent, "pw", nil); err != nil {
		t.Fatal(err)
	}

	var userDeleted bool
	var rosterUpdates []int64
	for _, op := range batch.ops {
		switch {
		case op.Table == "users" && op.Op == repository.OpDelete:
			userDeleted = true
		case op.Table == "courses" && op.Op == repository.OpUpdate:
			rosterUpdates = append(rosterUpdates, op.ID)
			if n := op.Fields["current_participants"].(int); n < 0 {
				t.Fatalf("participant count went negative on course %d", op.ID)
			}
		}
	}
	if !userDeleted {
		t.Fatal("user record not deleted")
	}
	if len(rosterUpdates) != 2 {
		t.Fatalf("expected updates for courses 1 and 3, got %v", rosterUpdates)
	}
	if idp.deleteCalls != 1 || idp.deletedUserIDs[0] != 7 {
		t.Fatal("identity deletion missing or wrong user")
	}
}

func TestDeleteAccount_InstructorOrphansCourses(t *testing.T) {
	idp := &mockIdentityProvider{}
	courses := &mockCourseRepo{byInstructor: []domain.Course{{ID: 4, InstructorID: 21}}}
	instructors := &mockInstructorRepo{records: []domain.Instructor{{ID: 21, UserID: 7}}}
	batch := &mockBatch{}
	svc := NewService(idp, courses, instructors, batch, nil, func(string, ...interface{}) {})

	if err := svc.DeleteAccount(context.Background(), 7, domain.RoleInstructor, "pw", nil); err != nil {
		t.Fatal(err)
	}

	var instructorRecordsDeleted, courseCleared, courseDeleted bool
	for _, op := range batch.ops {
		switch {
		case op.Table == "instructors" && op.Op == repository.OpDelete:
			instructorRecordsDeleted = true
		case op.Table == "courses" && op.Op == repository.OpUpdate && op.ID == 4:
			courseCleared = true
		case op.Table == "courses" && op.Op == repository.OpDelete:
			courseDeleted = true
		}
	}
	if !instructorRecordsDeleted {
		t.Fatal("instructor records not deleted")
	}
	if !courseCleared {
		t.Fatal("course instructor pointer not cleared")
	}
	if courseDeleted {
		t.Fatal("courses must be orphaned, not deleted")
	}
}

func TestDeleteAccount_SchoolDeletesOnlyNamedSchool(t *testing.T) {
	idp := &mockIdentityProvider{}
	batch := &mockBatch{}
	svc := newTestService(idp, &mockCourseRepo{}, batch)

	schoolID := int64(3)
	if err := svc.DeleteAccount(context.Background(), 7, domain.RoleSchool, "pw", &schoolID); err != nil {
		t.Fatal(err)
	}

	var schoolDeleted bool
	for _, op := range batch.ops {
		if op.Table == "schools" && op.Op == repository.OpDelete && op.ID == 3 {
			schoolDeleted = true
		}
		if op.Table == "courses" {
			t.Fatal("school deletion must not touch courses")
		}
	}
	if !schoolDeleted {
		t.Fatal("school record not deleted")
	}
}

func TestDeleteAccount_UnsupportedRole(t *testing.T) {
	svc := newTestService(&mockIdentityProvider{}, &mockCourseRepo{}, &mockBatch{})

	err := svc.DeleteAccount(context.Background(), 7, domain.Role("ghost"), "pw", nil)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
