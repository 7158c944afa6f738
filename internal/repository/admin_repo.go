package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"labcatalog-api/internal/model"
	"labcatalog-api/pkg/apierror"
)

type AdminRepository struct {
	pool *pgxpool.Pool
}

func NewAdminRepository(pool *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{pool: pool}
}

func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (model.Admin, error) {
	var a model.Admin
	err := r.pool.QueryRow(ctx,
		`SELECT id, email, password_hash, name, created_at, last_login
		 FROM admins WHERE lower(email) = lower($1)`, email).
		Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Name, &a.CreatedAt, &a.LastLogin)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Admin{}, apierror.New(apierror.KindNotFound, fmt.Sprintf("admin %s not found", email))
	}
	if err != nil {
		return model.Admin{}, apierror.Wrap(apierror.KindDatabase, fmt.Errorf("find admin by email: %w", err))
	}
	return a, nil
}

func (r *AdminRepository) UpdateLastLogin(ctx context.Context, id int32) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE admins SET last_login = NOW() WHERE id = $1`, id)
	if err != nil {
		return apierror.Wrap(apierror.KindDatabase, fmt.Errorf("update last login: %w", err))
	}
	return nil
}
