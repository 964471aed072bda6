package usecase

import (
	"context"

	"urswat-backend/internal/domain"
	"urswat-backend/pkg/apperror"
	"urswat-backend/pkg/auth"
	"urswat-backend/pkg/logger"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

type authUsecase struct {
	repo     domain.UserRepository
	tokens   *auth.TokenManager
	validate *validator.Validate
}

func NewAuthUsecase(repo domain.UserRepository, tokens *auth.TokenManager, validate *validator.Validate) domain.AuthUsecase {
	return &authUsecase{
		repo:     repo,
		tokens:   tokens,
		validate: validate,
	}
}

func (u *authUsecase) Register(ctx context.Context, name, email, phone, password string) (*domain.User, error) {
	if password == "" {
		return nil, apperror.BadRequest("Password is required")
	}

	user := &domain.User{
		Name:  name,
		Email: email,
		Phone: phone,
		Role:  domain.RoleUser,
	}
	if err := u.validate.Struct(user); err != nil {
		return nil, apperror.BadRequest(err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	user.Password = string(hash)

	if err := u.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (u *authUsecase) Login(ctx context.Context, email, password string) (string, error) {
	user, err := u.repo.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", apperror.BadRequest("User not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", apperror.BadRequest("Invalid password")
	}

	token, err := u.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return "", apperror.Internal(err)
	}
	return token, nil
}

// EnsureAdmin seeds the bootstrap admin account once. A user row with the
// configured email, whatever its role, blocks re-seeding.
func (u *authUsecase) EnsureAdmin(ctx context.Context, email, password string) error {
	existing, err := u.repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		logger.Log.Info("admin user already exists", "email", email)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return apperror.Internal(err)
	}

	admin := &domain.User{
		Name:     "Admin User",
		Email:    email,
		Phone:    "admin",
		Password: string(hash),
		Role:     domain.RoleAdmin,
	}
	if err := u.repo.Create(ctx, admin); err != nil {
		return err
	}

	logger.Log.Info("admin user created", "email", email)
	return nil
}
