package domain

import (
	"context"
	"io"
	"time"
)

type Talent struct {
	ID        int64     `json:"id"`
	FullName  string    `json:"fullName" validate:"required"`
	Email     string    `json:"email" validate:"required,email"`
	Phone     string    `json:"phone" validate:"required"`
	CVPath    *string   `json:"cvPath"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// TalentPatch carries a partial update. Nil fields are left untouched.
type TalentPatch struct {
	FullName *string
	Email    *string
	Phone    *string
	Status   *string
}

func (p *TalentPatch) Empty() bool {
	return p.FullName == nil && p.Email == nil && p.Phone == nil && p.Status == nil
}

// CVUpload describes an incoming CV file before it is persisted.
type CVUpload struct {
	Reader      io.Reader
	Size        int64
	Filename    string
	ContentType string
}

// CVStore persists uploaded CV files and maps stored names to public URLs.
// The filesystem is the source of truth: there is no database row per file
// and no cleanup when the owning talent is deleted.
type CVStore interface {
	Save(ctx context.Context, file *CVUpload) (string, error)
	PublicURL(name string) string
}

type TalentRepository interface {
	Create(ctx context.Context, talent *Talent) error
	List(ctx context.Context) ([]Talent, error)
	Update(ctx context.Context, id int64, patch *TalentPatch) (*Talent, error)
	Delete(ctx context.Context, id int64) (*Talent, error)
}

type TalentUsecase interface {
	Register(ctx context.Context, talent *Talent, cv *CVUpload) (*Talent, error)
	List(ctx context.Context) ([]Talent, error)
	Update(ctx context.Context, id int64, patch *TalentPatch) (*Talent, error)
	Delete(ctx context.Context, id int64) (*Talent, error)
}
