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

// PostgreSQL error codes
const (
	pgUniqueViolation = "23505"
)

type talentRepo struct {
	db *pgxpool.Pool
}

func NewTalentRepository(db *pgxpool.Pool) domain.TalentRepository {
	return &talentRepo{db: db}
}

func (r *talentRepo) Create(ctx context.Context, talent *domain.Talent) error {
	query := `INSERT INTO talents (full_name, email, phone, cv_path)
              VALUES ($1, $2, $3, $4)
              RETURNING id, status, created_at`

	err := r.db.QueryRow(ctx, query, talent.FullName, talent.Email, talent.Phone, talent.CVPath).
		Scan(&talent.ID, &talent.Status, &talent.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperror.Conflict("Email already registered")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (r *talentRepo) List(ctx context.Context) ([]domain.Talent, error) {
	query := `SELECT id, full_name, email, phone, cv_path, status, created_at
              FROM talents ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	defer rows.Close()

	talents := []domain.Talent{}
	for rows.Next() {
		var t domain.Talent
		if err := rows.Scan(&t.ID, &t.FullName, &t.Email, &t.Phone, &t.CVPath, &t.Status, &t.CreatedAt); err != nil {
			return nil, apperror.Internal(err)
		}
		talents = append(talents, t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Internal(err)
	}
	return talents, nil
}

func (r *talentRepo) Update(ctx context.Context, id int64, patch *domain.TalentPatch) (*domain.Talent, error) {
	cols := []string{}
	args := []interface{}{}
	appendSet(&cols, &args, "full_name", patch.FullName)
	appendSet(&cols, &args, "email", patch.Email)
	appendSet(&cols, &args, "phone", patch.Phone)
	appendSet(&cols, &args, "status", patch.Status)
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE talents SET %s WHERE id = $%d
              RETURNING id, full_name, email, phone, cv_path, status, created_at`,
		strings.Join(cols, ", "), len(args))

	var t domain.Talent
	err := r.db.QueryRow(ctx, query, args...).
		Scan(&t.ID, &t.FullName, &t.Email, &t.Phone, &t.CVPath, &t.Status, &t.CreatedAt)
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
	return &t, nil
}

func (r *talentRepo) Delete(ctx context.Context, id int64) (*domain.Talent, error) {
	query := `DELETE FROM talents WHERE id = $1
              RETURNING id, full_name, email, phone, cv_path, status, created_at`

	var t domain.Talent
	err := r.db.QueryRow(ctx, query, id).
		Scan(&t.ID, &t.FullName, &t.Email, &t.Phone, &t.CVPath, &t.Status, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.Internal(err)
	}
	return &t, nil
}
