package admin

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("admin not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, email, passwordHash, fullName string) (*Admin, error) {
	query := `
		INSERT INTO admins (email, password_hash, full_name)
		VALUES ($1, $2, $3)
		RETURNING id, email, password_hash, full_name, created_at
	`

	var a Admin
	err := r.db.GetContext(ctx, &a, query, email, passwordHash, fullName)
	if err != nil {
		return nil, err
	}

	return &a, nil
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*Admin, error) {
	query := `
		SELECT id, email, password_hash, full_name, created_at
		FROM admins
		WHERE email = $1
	`

	var a Admin
	err := r.db.GetContext(ctx, &a, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &a, nil
}

func (r *repository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM admins WHERE email = $1)`, email)
	return exists, err
}
