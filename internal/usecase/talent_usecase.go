package usecase

import (
	"context"

	"urswat-backend/internal/domain"
	"urswat-backend/pkg/apperror"
	"urswat-backend/pkg/logger"

	"github.com/go-playground/validator/v10"
)

type talentUsecase struct {
	repo     domain.TalentRepository
	cvStore  domain.CVStore
	mailer   domain.WelcomeMailer
	validate *validator.Validate
}

func NewTalentUsecase(repo domain.TalentRepository, cvStore domain.CVStore, mailer domain.WelcomeMailer, validate *validator.Validate) domain.TalentUsecase {
	return &talentUsecase{
		repo:     repo,
		cvStore:  cvStore,
		mailer:   mailer,
		validate: validate,
	}
}

// Register stores the CV (when present), inserts the record, and kicks off
// the welcome email. The response never waits on the email outcome.
func (u *talentUsecase) Register(ctx context.Context, talent *domain.Talent, cv *domain.CVUpload) (*domain.Talent, error) {
	if err := u.validate.Struct(talent); err != nil {
		return nil, apperror.BadRequest(err.Error())
	}

	if cv != nil {
		name, err := u.cvStore.Save(ctx, cv)
		if err != nil {
			return nil, err
		}
		talent.CVPath = &name
	}

	if err := u.repo.Create(ctx, talent); err != nil {
		return nil, err
	}

	u.dispatchWelcome(talent.FullName, talent.Email)

	return u.withPublicCV(talent), nil
}

func (u *talentUsecase) List(ctx context.Context) ([]domain.Talent, error) {
	talents, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range talents {
		u.withPublicCV(&talents[i])
	}
	return talents, nil
}

func (u *talentUsecase) Update(ctx context.Context, id int64, patch *domain.TalentPatch) (*domain.Talent, error) {
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

	talent, err := u.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if talent == nil {
		return nil, apperror.NotFound("Talent not found")
	}
	return u.withPublicCV(talent), nil
}

func (u *talentUsecase) Delete(ctx context.Context, id int64) (*domain.Talent, error) {
	// The CV file stays on disk: the filesystem is the source of truth and
	// there is no orphan cleanup.
	talent, err := u.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if talent == nil {
		return nil, apperror.NotFound("Talent not found")
	}
	return u.withPublicCV(talent), nil
}

// withPublicCV substitutes the stored filename with its public URL so the
// internal name never leaves the API.
func (u *talentUsecase) withPublicCV(t *domain.Talent) *domain.Talent {
	if t.CVPath != nil {
		url := u.cvStore.PublicURL(*t.CVPath)
		t.CVPath = &url
	}
	return t
}

func (u *talentUsecase) dispatchWelcome(fullName, email string) {
	if !u.mailer.IsConfigured() {
		logger.Log.Warn("email sender not configured, skipping talent welcome", "email", email)
		return
	}
	go func() {
		if err := u.mailer.SendTalentWelcome(fullName, email); err != nil {
			logger.Log.Error("failed to send talent welcome email", "email", email, "error", err)
		}
	}()
}
