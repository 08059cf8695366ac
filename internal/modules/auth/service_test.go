package auth

import (
	"context"
	"testing"
	"time"

	"dancehub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if u != nil {
		u.ID = 42 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockIdentityRepository struct {
	mock.Mock
}

func (m *MockIdentityRepository) Create(ctx context.Context, ident *domain.Identity) error {
	args := m.Called(ctx, ident)
	return args.Error(0)
}

func (m *MockIdentityRepository) GetByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Identity), args.Error(1)
}

func (m *MockIdentityRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Identity, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Identity), args.Error(1)
}

func (m *MockIdentityRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type fakeJWT struct{}

func (fakeJWT) GenerateToken(userID int64, role string) (string, error) { return "token", nil }

func hash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(h)
}

func TestRegister_CreatesUserAndIdentity(t *testing.T) {
	users := new(MockUserRepository)
	identities := new(MockIdentityRepository)
	svc := NewService(users, identities, fakeJWT{})

	identities.On("GetByEmail", mock.Anything, "new@dancehub.app").Return(nil, gorm.ErrRecordNotFound)
	users.On("Create", mock.Anything, mock.Anything).Return(nil)
	identities.On("Create", mock.Anything, mock.Anything).Return(nil)

	user, err := svc.Register(context.Background(), RegisterRequest{
		Email:       "New@dancehub.app",
		Password:    "secret123",
		DisplayName: "Yeni Üye",
		Role:        "student",
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(42), user.ID)
	assert.Equal(t, "new@dancehub.app", user.Email)
	assert.Equal(t, []domain.Role{domain.RoleStudent}, user.Roles)

	identities.AssertCalled(t, "Create", mock.Anything, mock.MatchedBy(func(ident *domain.Identity) bool {
		return ident.UserID == 42 && ident.PasswordHash != "secret123"
	}))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	users := new(MockUserRepository)
	identities := new(MockIdentityRepository)
	svc := NewService(users, identities, fakeJWT{})

	identities.On("GetByEmail", mock.Anything, mock.Anything).Return(&domain.Identity{ID: 1}, nil)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email: "taken@dancehub.app", Password: "secret123", DisplayName: "X", Role: "student",
	})
	assert.ErrorIs(t, err, ErrEmailExists)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogin_Success(t *testing.T) {
	users := new(MockUserRepository)
	identities := new(MockIdentityRepository)
	svc := NewService(users, identities, fakeJWT{})

	identities.On("GetByEmail", mock.Anything, "a@b.c").
		Return(&domain.Identity{UserID: 7, PasswordHash: hash(t, "secret123")}, nil)
	users.On("GetByID", mock.Anything, int64(7)).
		Return(&domain.User{ID: 7, Roles: []domain.Role{domain.RoleSchool}}, nil)

	result, err := svc.Login(context.Background(), LoginRequest{Email: "a@b.c", Password: "secret123"})
	assert.NoError(t, err)
	assert.Equal(t, "token", result.AccessToken)
	assert.Equal(t, int64(7), result.User.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	users := new(MockUserRepository)
	identities := new(MockIdentityRepository)
	svc := NewService(users, identities, fakeJWT{})

	identities.On("GetByEmail", mock.Anything, mock.Anything).
		Return(&domain.Identity{UserID: 7, PasswordHash: hash(t, "secret123")}, nil)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "a@b.c", Password: "nope"})
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestLogin_UnknownEmail(t *testing.T) {
	users := new(MockUserRepository)
	identities := new(MockIdentityRepository)
	svc := NewService(users, identities, fakeJWT{})

	identities.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "ghost@b.c", Password: "x"})
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestReauthenticate(t *testing.T) {
	identities := new(MockIdentityRepository)
	svc := NewService(new(MockUserRepository), identities, fakeJWT{})

	stored := &domain.Identity{UserID: 7, PasswordHash: hash(t, "secret123"), CreatedAt: time.Now()}
	identities.On("GetByUserID", mock.Anything, int64(7)).Return(stored, nil)

	assert.NoError(t, svc.Reauthenticate(context.Background(), 7, "secret123"))
	assert.ErrorIs(t, svc.Reauthenticate(context.Background(), 7, "wrong"), ErrInvalidCredential)
}

func TestReauthenticate_MissingIdentity(t *testing.T) {
	identities := new(MockIdentityRepository)
	svc := NewService(new(MockUserRepository), identities, fakeJWT{})

	identities.On("GetByUserID", mock.Anything, mock.Anything).Return(nil, gorm.ErrRecordNotFound)

	assert.ErrorIs(t, svc.Reauthenticate(context.Background(), 9, "x"), ErrInvalidCredential)
}
