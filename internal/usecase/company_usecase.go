package usecase

import (
	"context"

	"urswat-backend/internal/domain"
	"urswat-backend/pkg/apperror"
	"urswat-backend/pkg/logger"

	"github.com/go-playground/validator/v10"
)

type companyUsecase struct {
	repo     domain.CompanyRepository
	mailer   domain.WelcomeMailer
	validate *validator.Validate
}

func NewCompanyUsecase(repo domain.CompanyRepository, mailer domain.WelcomeMailer, validate *validator.Validate) domain.CompanyUsecase {
	return &companyUsecase{
		repo:     repo,
		mailer:   mailer,
		validate: validate,
	}
}

func (u *companyUsecase) Register(ctx context.Context, company *domain.Company) (*domain.Company, error) {
	if err := u.validate.Struct(company); err != nil {
		return nil, apperror.BadRequest(err.Error())
	}

	if err := u.repo.Create(ctx, company); err != nil {
		return nil, err
	}

	u.dispatchWelcome(company.CompanyName, company.ContactPerson, company.Email)

	return company, nil
}

func (u *companyUsecase) List(ctx context.Context) ([]domain.Company, error) {
	return u.repo.List(ctx)
}

func (u *companyUsecase) Update(ctx context.Context, id int64, patch *domain.CompanyPatch) (*domain.Company, error) {
	if patch.Empty() {
		return nil, apperror.BadRequest("No fields to update")
	}
	if patch.Status != nil && !domain.ValidStatus(*patch.Status) {
		return nil, apperror.BadRequest("Invalid status")
	}
	if patch.Email != nil {
		if err := u.validate.Var(*patch.Email, "email"); err != nil {
			return nil, apperror.BadRequest("Invalid email")
		}
	}

	company, err := u.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, apperror.NotFound("Company not found")
	}
	return company, nil
}

func (u *companyUsecase) Delete(ctx context.Context, id int64) (*domain.Company, error) {
	company, err := u.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, apperror.NotFound("Company not found")
	}
	return company, nil
}

func (u *companyUsecase) dispatchWelcome(companyName, contactPerson, email string) {
	if !u.mailer.IsConfigured() {
		logger.Log.Warn("email sender not configured, skipping company welcome", "email", email)
		return
	}
	go func() {
		if err := u.mailer.SendCompanyWelcome(companyName, contactPerson, email); err != nil {
			logger.Log.Error("failed to send company welcome email", "email", email, "error", err)
		}
	}()
}
