package admin

import "context"

type Repository interface {
	Create(ctx context.Context, email, passwordHash, fullName string) (*Admin, error)
	GetByEmail(ctx context.Context, email string) (*Admin, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}
