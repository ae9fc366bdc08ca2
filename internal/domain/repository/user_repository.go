package repository

import (
	"context"
	"errors"

	"github.com/msydorenko/contacts-api/internal/domain/entity"
)

// ErrDuplicateEmail is returned by Create when the email column's unique
// constraint rejects the insert. The service layer checks availability first;
// this covers the race between check and insert.
var ErrDuplicateEmail = errors.New("email already in use")

// UserRepository defines persistence for user records. Lookups return
// (nil, nil) when no row matches; errors are reserved for storage failures.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// UpdateToken stores the single live session token; nil clears it.
	UpdateToken(ctx context.Context, id string, token *string) error
	// VerifyByToken flips the verify flag and clears the verification token
	// in one statement. Returns false when no user holds that token.
	VerifyByToken(ctx context.Context, token string) (bool, error)
	// UpdateVerificationToken backfills a token for an unverified user that
	// has none outstanding. Resends re-use the existing token instead.
	UpdateVerificationToken(ctx context.Context, id, token string) error
	UpdateSubscription(ctx context.Context, id, subscription string) (*entity.User, error)
	UpdateAvatar(ctx context.Context, id, avatarURL string) (*entity.User, error)
}
