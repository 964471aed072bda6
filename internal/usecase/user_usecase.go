package usecase

import (
	"context"

	"urswat-backend/internal/domain"
	"urswat-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

type userUsecase struct {
	repo     domain.UserRepository
	validate *validator.Validate
}

func NewUserUsecase(repo domain.UserRepository, validate *validator.Validate) domain.UserUsecase {
	return &userUsecase{
		repo:     repo,
		validate: validate,
	}
}

func (u *userUsecase) List(ctx context.Context) ([]domain.User, error) {
	users, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	// Hashes never leave the usecase layer even though the JSON tag
	// already hides them.
	for i := range users {
		users[i].Password = ""
	}
	return users, nil
}

func (u *userUsecase) Update(ctx context.Context, id int64, update *domain.UserUpdate) (*domain.User, error) {
	if update.Empty() {
		return nil, apperror.BadRequest("No fields to update")
	}
	if update.Email != nil {
		if err := u.validate.Var(*update.Email, "email"); err != nil {
			return nil, apperror.BadRequest("Invalid email")
		}
	}

	patch := &domain.UserPatch{
		Name:  update.Name,
		Email: update.Email,
		Phone: update.Phone,
	}
	if update.Password != nil && *update.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*update.Password), bcryptCost)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		hashed := string(hash)
		patch.Password = &hashed
	}
	if patch.Empty() {
		return nil, apperror.BadRequest("No fields to update")
	}

	user, err := u.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}

	user.Password = ""
	return user, nil
}

func (u *userUsecase) Delete(ctx context.Context, id int64) (*domain.User, error) {
	user, err := u.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}

	user.Password = ""
	return user, nil
}
