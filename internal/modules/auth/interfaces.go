package auth

import (
	"context"

	"dancehub/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type IdentityRepository interface {
	Create(ctx context.Context, ident *domain.Identity) error
	GetByEmail(ctx context.Context, email string) (*domain.Identity, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Identity, error)
	DeleteByUserID(ctx context.Context, userID int64) error
}
