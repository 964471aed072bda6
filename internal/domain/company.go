package domain

import (
	"context"
	"time"
)

type Company struct {
	ID            int64     `json:"id"`
	CompanyName   string    `json:"companyName" validate:"required"`
	ContactPerson string    `json:"contactPerson" validate:"required"`
	Email         string    `json:"email" validate:"required,email"`
	Phone         string    `json:"phone" validate:"required"`
	Industry      *string   `json:"industry"`
	Requirements  *string   `json:"requirements"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

// CompanyPatch carries a partial update. Nil fields are left untouched.
type CompanyPatch struct {
	CompanyName   *string
	ContactPerson *string
	Email         *string
	Phone         *string
	Industry      *string
	Requirements  *string
	Status        *string
}

func (p *CompanyPatch) Empty() bool {
	return p.CompanyName == nil && p.ContactPerson == nil && p.Email == nil &&
		p.Phone == nil && p.Industry == nil && p.Requirements == nil && p.Status == nil
}

type CompanyRepository interface {
	Create(ctx context.Context, company *Company) error
	List(ctx context.Context) ([]Company, error)
	Update(ctx context.Context, id int64, patch *CompanyPatch) (*Company, error)
	Delete(ctx context.Context, id int64) (*Company, error)
}

type CompanyUsecase interface {
	Register(ctx context.Context, company *Company) (*Company, error)
	List(ctx context.Context) ([]Company, error)
	Update(ctx context.Context, id int64, patch *CompanyPatch) (*Company, error)
	Delete(ctx context.Context, id int64) (*Company, error)
}
