package repository

import (
	"context"

	"github.com/msydorenko/contacts-api/internal/domain/entity"
)

// ContactFilter narrows a contact listing. Favorite is a strict equality
// match when set.
type ContactFilter struct {
	Favorite *bool
	Limit    int
	Offset   int
}

// ContactRepository defines owner-scoped persistence for contacts. Every
// method takes the owner id alongside the contact id; a row that exists but
// belongs to another owner behaves exactly like a missing row (nil, nil).
type ContactRepository interface {
	List(ctx context.Context, owner string, f ContactFilter) ([]entity.Contact, error)
	GetByID(ctx context.Context, id, owner string) (*entity.Contact, error)
	Create(ctx context.Context, c *entity.Contact) error
	Update(ctx context.Context, c *entity.Contact) (*entity.Contact, error)
	SetFavorite(ctx context.Context, id, owner string, favorite bool) (*entity.Contact, error)
	// Delete removes the contact and returns its pre-delete snapshot.
	Delete(ctx context.Context, id, owner string) (*entity.Contact, error)
}
