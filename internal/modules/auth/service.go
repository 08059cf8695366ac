package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"dancehub/internal/domain"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type jwtService interface {
	GenerateToken(userID int64, role string) (string, error)
}

// Service owns registration, login and the identity-provider operations
// (Reauthenticate, DeleteIdentity) that the account deletion cascade
// consumes. Credentials live in their own table, separate from profiles.
type Service struct {
	users      UserRepository
	identities IdentityRepository
	jwt        jwtService
}

func NewService(users UserRepository, identities IdentityRepository, jwt jwtService) *Service {
	return &Service{users: users, identities: identities, jwt: jwt}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if _, err := s.identities.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		DisplayName: req.DisplayName,
		Email:       email,
		Phone:       req.Phone,
		Roles:       []domain.Role{domain.Role(req.Role)},
		Level:       domain.Level(req.Level),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	ident := &domain.Identity{
		UserID:       user.ID,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := s.identities.Create(ctx, ident); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	ident, err := s.identities.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredential
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(ident.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredential
	}

	user, err := s.users.GetByID(ctx, ident.UserID)
	if err != nil {
		return nil, err
	}

	token, err := s.jwt.GenerateToken(user.ID, string(primaryRole(user.Roles)))
	if err != nil {
		return nil, err
	}

	return &LoginResult{User: user, AccessToken: token}, nil
}

// Reauthenticate verifies the password of an already-authenticated user.
// Destructive flows call this immediately before mutating anything.
func (s *Service) Reauthenticate(ctx context.Context, userID int64, password string) error {
	ident, err := s.identities.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidCredential
		}
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(ident.PasswordHash), []byte(password)) != nil {
		return ErrInvalidCredential
	}
	return nil
}

// DeleteIdentity removes the credential record. Callers are responsible
// for ordering: profile data first, identity last.
func (s *Service) DeleteIdentity(ctx context.Context, userID int64) error {
	return s.identities.DeleteByUserID(ctx, userID)
}

// The token carries a single role claim; the first role in the set is the
// one the account was created with.
func primaryRole(roles []domain.Role) domain.Role {
	if len(roles) == 0 {
		return domain.RoleStudent
	}
	return roles[0]
}
