package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/msydorenko/contacts-api/internal/domain/entity"
	"github.com/msydorenko/contacts-api/internal/domain/repository"
)

// ErrContactNotFound covers both a genuinely absent contact and one owned by
// another user; callers cannot tell the cases apart.
var ErrContactNotFound = errors.New("contact not found")

const (
	defaultPage  = 1
	defaultLimit = 20
)

// ContactService implements owner-scoped contact CRUD.
type ContactService struct {
	Contacts repository.ContactRepository
	Logger   *logrus.Logger
}

// ContactInput carries the writable contact fields.
type ContactInput struct {
	Name     string
	Email    string
	Phone    string
	Favorite bool
}

// List returns one page of the owner's contacts. Pages are 1-indexed;
// non-positive page or limit fall back to the defaults.
func (s *ContactService) List(ctx context.Context, owner string, page, limit int, favorite *bool) ([]entity.Contact, error) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	return s.Contacts.List(ctx, owner, repository.ContactFilter{
		Favorite: favorite,
		Limit:    limit,
		Offset:   (page - 1) * limit,
	})
}

func (s *ContactService) Get(ctx context.Context, id, owner string) (*entity.Contact, error) {
	c, err := s.Contacts.GetByID(ctx, id, owner)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrContactNotFound
	}
	return c, nil
}

func (s *ContactService) Create(ctx context.Context, owner string, in ContactInput) (*entity.Contact, error) {
	c := &entity.Contact{
		Name:     in.Name,
		Email:    in.Email,
		Phone:    in.Phone,
		Favorite: in.Favorite,
		Owner:    owner,
	}
	if err := s.Contacts.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Update replaces the contact's writable fields.
func (s *ContactService) Update(ctx context.Context, id, owner string, in ContactInput) (*entity.Contact, error) {
	updated, err := s.Contacts.Update(ctx, &entity.Contact{
		ID:       id,
		Name:     in.Name,
		Email:    in.Email,
		Phone:    in.Phone,
		Favorite: in.Favorite,
		Owner:    owner,
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrContactNotFound
	}
	return updated, nil
}

func (s *ContactService) SetFavorite(ctx context.Context, id, owner string, favorite bool) (*entity.Contact, error) {
	c, err := s.Contacts.SetFavorite(ctx, id, owner, favorite)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrContactNotFound
	}
	return c, nil
}

// Delete removes the contact and returns its pre-delete snapshot.
func (s *ContactService) Delete(ctx context.Context, id, owner string) (*entity.Contact, error) {
	c, err := s.Contacts.Delete(ctx, id, owner)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrContactNotFound
	}
	return c, nil
}
