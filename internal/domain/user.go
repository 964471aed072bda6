package domain

import (
	"context"
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name" validate:"required"`
	Email     string    `json:"email" validate:"required,email"`
	Phone     string    `json:"phone" validate:"required"`
	Password  string    `json:"-"` // bcrypt hash, never serialized
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserPatch carries a partial update. Password, when present, is the
// already hashed value, never plaintext.
type UserPatch struct {
	Name     *string
	Email    *string
	Phone    *string
	Password *string
}

func (p *UserPatch) Empty() bool {
	return p.Name == nil && p.Email == nil && p.Phone == nil && p.Password == nil
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, id int64, patch *UserPatch) (*User, error)
	Delete(ctx context.Context, id int64) (*User, error)
}

type AuthUsecase interface {
	Register(ctx context.Context, name, email, phone, password string) (*User, error)
	Login(ctx context.Context, email, password string) (string, error)
	EnsureAdmin(ctx context.Context, email, password string) error
}

// UserUpdate is the inbound partial update; Password here is plaintext and
// gets hashed before it reaches the repository.
type UserUpdate struct {
	Name     *string
	Email    *string
	Phone    *string
	Password *string
}

func (u *UserUpdate) Empty() bool {
	return u.Name == nil && u.Email == nil && u.Phone == nil && u.Password == nil
}

type UserUsecase interface {
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, id int64, update *UserUpdate) (*User, error)
	Delete(ctx context.Context, id int64) (*User, error)
}
