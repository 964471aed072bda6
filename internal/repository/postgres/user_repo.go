package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"urswat-backend/internal/domain"
	"urswat-backend/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (name, email, phone, password, role)
              VALUES ($1, $2, $3, $4, $5)
              RETURNING id, role, created_at`

	role := user.Role
	if role == "" {
		role = domain.RoleUser
	}

	err := r.db.QueryRow(ctx, query, user.Name, user.Email, user.Phone, user.Password, role).
		Scan(&user.ID, &user.Role, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperror.Conflict("Email already registered")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT id, name, email, phone, password, role, created_at
              FROM users WHERE email = $1`

	var u domain.User
	err := r.db.QueryRow(ctx, query, email).
		Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Password, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.Internal(err)
	}
	return &u, nil
}

func (r *userRepo) List(ctx context.Context) ([]domain.User, error) {
	query := `SELECT id, name, email, phone, password, role, created_at
              FROM users ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Password, &u.Role, &u.CreatedAt); err != nil {
			return nil, apperror.Internal(err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Internal(err)
	}
	return users, nil
}

func (r *userRepo) Update(ctx context.Context, id int64, patch *domain.UserPatch) (*domain.User, error) {
	cols := []string{}
	args := []interface{}{}
	appendSet(&cols, &args, "name", patch.Name)
	appendSet(&cols, &args, "email", patch.Email)
	appendSet(&cols, &args, "phone", patch.Phone)
	appendSet(&cols, &args, "password", patch.Password)
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d
              RETURNING id, name, email, phone, password, role, created_at`,
		strings.Join(cols, ", "), len(args))

	var u domain.User
	err := r.db.QueryRow(ctx, query, args...).
		Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Password, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, apperror.Conflict("Email already registered")
		}
		return nil, apperror.Internal(err)
	}
	return &u, nil
}

func (r *userRepo) Delete(ctx context.Context, id int64) (*domain.User, error) {
	query := `DELETE FROM users WHERE id = $1
              RETURNING id, name, email, phone, password, role, created_at`

	var u domain.User
	err := r.db.QueryRow(ctx, query, id).
		Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Password, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.Internal(err)
	}
	return &u, nil
}
