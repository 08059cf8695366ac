package profile

import (
	"context"
	"testing"

	"dancehub/internal/domain"
	"dancehub/internal/repository"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	user *domain.User
	err  error
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return f.user, f.err
}

type fakeInstructorRepo struct {
	records []domain.Instructor
}

func (f *fakeInstructorRepo) GetByUserID(ctx context.Context, userID int64) ([]domain.Instructor, error) {
	return f.records, nil
}

type fakeSchoolRepo struct {
	school *domain.School
	err    error
}

func (f *fakeSchoolRepo) GetByUserID(ctx context.Context, userID int64) (*domain.School, error) {
	if f.school == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.school, f.err
}

type captureBatch struct {
	ops []repository.BatchOp
}

func (c *captureBatch) BatchWrite(ctx context.Context, ops []repository.BatchOp) error {
	c.ops = ops
	return nil
}

func TestUpdateInstructorProfile_DualWrite(t *testing.T) {
	batch := &captureBatch{}
	svc := NewService(
		&fakeUserRepo{user: &domain.User{ID: 7, Email: "old@x.y"}},
		&fakeInstructorRepo{records: []domain.Instructor{{ID: 2, UserID: 7}}},
		&fakeSchoolRepo{},
		batch,
	)

	err := svc.UpdateInstructorProfile(context.Background(), 7, UpdateInstructorRequest{
		DisplayName: "Deniz Kaya",
		Email:       "deniz@dancehub.app",
		Specialties: []string{"tango"},
		Bio:         "eğitmen",
	})
	assert.NoError(t, err)
	assert.Len(t, batch.ops, 2)

	var tables []string
	for _, op := range batch.ops {
		tables = append(tables, op.Table)
		assert.Equal(t, repository.OpUpdate, op.Op)
	}
	assert.ElementsMatch(t, []string{"users", "instructors"}, tables)

	for _, op := range batch.ops {
		assert.Equal(t, "Deniz Kaya", op.Fields["display_name"])
		assert.Equal(t, "deniz@dancehub.app", op.Fields["email"])
	}
}

func TestUpdateInstructorProfile_UserMissing(t *testing.T) {
	svc := NewService(
		&fakeUserRepo{err: gorm.ErrRecordNotFound},
		&fakeInstructorRepo{},
		&fakeSchoolRepo{},
		&captureBatch{},
	)

	err := svc.UpdateInstructorProfile(context.Background(), 9, UpdateInstructorRequest{
		DisplayName: "X", Email: "x@y.z",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateSchoolProfile_DualWrite(t *testing.T) {
	batch := &captureBatch{}
	svc := NewService(
		&fakeUserRepo{user: &domain.User{ID: 7}},
		&fakeInstructorRepo{},
		&fakeSchoolRepo{school: &domain.School{ID: 3, UserID: 7}},
		batch,
	)

	err := svc.UpdateSchoolProfile(context.Background(), 7, UpdateSchoolRequest{
		DisplayName: "Tango Esquina",
		Email:       "okul@dancehub.app",
		IBAN:        "TR00",
	})
	assert.NoError(t, err)
	assert.Len(t, batch.ops, 2)

	var schoolOp *repository.BatchOp
	for i := range batch.ops {
		if batch.ops[i].Table == "schools" {
			schoolOp = &batch.ops[i]
		}
	}
	assert.NotNil(t, schoolOp)
	assert.Equal(t, int64(3), schoolOp.ID)
	assert.Equal(t, "TR00", schoolOp.Fields["iban"])
}

func TestUpdateSchoolProfile_NoSchoolRecordStillUpdatesUser(t *testing.T) {
	batch := &captureBatch{}
	svc := NewService(
		&fakeUserRepo{user: &domain.User{ID: 7}},
		&fakeInstructorRepo{},
		&fakeSchoolRepo{},
		batch,
	)

	err := svc.UpdateSchoolProfile(context.Background(), 7, UpdateSchoolRequest{
		DisplayName: "X", Email: "x@y.z",
	})
	assert.NoError(t, err)
	assert.Len(t, batch.ops, 1)
	assert.Equal(t, "users", batch.ops[0].Table)
}
