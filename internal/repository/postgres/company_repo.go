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

type companyRepo struct {
	db *pgxpool.Pool
}

func NewCompanyRepository(db *pgxpool.Pool) domain.CompanyRepository {
	return &companyRepo{db: db}
}

func (r *companyRepo) Create(ctx context.Context, company *domain.Company) error {
	query := `INSERT INTO companies (company_name, contact_person, email, phone, industry, requirements)
              VALUES ($1, $2, $3, $4, $5, $6)
              RETURNING id, status, created_at`

	err := r.db.QueryRow(ctx, query,
		company.CompanyName, company.ContactPerson, company.Email,
		company.Phone, company.Industry, company.Requirements).
		Scan(&company.ID, &company.Status, &company.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperror.Conflict("Email already registered")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (r *companyRepo) List(ctx context.Context) ([]domain.Company, error) {
	query := `SELECT id, company_name, contact_person, email, phone, industry, requirements, status, created_at
              FROM companies ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	defer rows.Close()

	companies := []domain.Company{}
	for rows.Next() {
		var c domain.Company
		if err := rows.Scan(&c.ID, &c.CompanyName, &c.ContactPerson, &c.Email, &c.Phone,
			&c.Industry, &c.Requirements, &c.Status, &c.CreatedAt); err != nil {
			return nil, apperror.Internal(err)
		}
		companies = append(companies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Internal(err)
	}
	return companies, nil
}

func (r *companyRepo) Update(ctx context.Context, id int64, patch *domain.CompanyPatch) (*domain.Company, error) {
	cols := []string{}
	args := []interface{}{}
	appendSet(&cols, &args, "company_name", patch.CompanyName)
	appendSet(&cols, &args, "contact_person", patch.ContactPerson)
	appendSet(&cols, &args, "email", patch.Email)
	appendSet(&cols, &args, "phone", patch.Phone)
	appendSet(&cols, &args, "industry", patch.Industry)
	appendSet(&cols, &args, "requirements", patch.Requirements)
	appendSet(&cols, &args, "status", patch.Status)
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE companies SET %s WHERE id = $%d
              RETURNING id, company_name, contact_person, email, phone, industry, requirements, status, created_at`,
		strings.Join(cols, ", "), len(args))

	var c domain.Company
	err := r.db.QueryRow(ctx, query, args...).
		Scan(&c.ID, &c.CompanyName, &c.ContactPerson, &c.Email, &c.Phone,
			&c.Industry, &c.Requirements, &c.Status, &c.CreatedAt)
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
	return &c, nil
}

func (r *companyRepo) Delete(ctx context.Context, id int64) (*domain.Company, error) {
	query := `DELETE FROM companies WHERE id = $1
              RETURNING id, company_name, contact_person, email, phone, industry, requirements, status, created_at`

	var c domain.Company
	err := r.db.QueryRow(ctx, query, id).
		Scan(&c.ID, &c.CompanyName, &c.ContactPerson, &c.Email, &c.Phone,
			&c.Industry, &c.Requirements, &c.Status, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.Internal(err)
	}
	return &c, nil
}
