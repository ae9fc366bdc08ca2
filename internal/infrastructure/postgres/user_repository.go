package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/msydorenko/contacts-api/internal/domain/entity"
	"github.com/msydorenko/contacts-api/internal/domain/repository"
)

const uniqueViolation = "23505"

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, email, password, subscription, token, avatar_url, verify, verification_token, created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	err := row.Scan(&u.ID, &u.Email, &u.Password, &u.Subscription, &u.Token,
		&u.AvatarURL, &u.Verify, &u.VerificationToken, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, password, subscription, avatar_url, verification_token)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, u.Email, u.Password, u.Subscription, u.AvatarURL, u.VerificationToken)

	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return repository.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE email = $1
	`, email))
}

func (r *UserRepository) UpdateToken(ctx context.Context, id string, token *string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET token = $1, updated_at = now()
		WHERE id = $2
	`, token, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *UserRepository) VerifyByToken(ctx context.Context, token string) (bool, error) {
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET verify = true, verification_token = NULL, updated_at = now()
		WHERE verification_token = $1
	`, token)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

func (r *UserRepository) UpdateVerificationToken(ctx context.Context, id, token string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET verification_token = $1, updated_at = now()
		WHERE id = $2 AND verify = false
	`, token, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *UserRepository) UpdateSubscription(ctx context.Context, id, subscription string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `
		UPDATE users
		SET subscription = $1, updated_at = now()
		WHERE id = $2
		RETURNING `+userColumns+`
	`, subscription, id))
}

func (r *UserRepository) UpdateAvatar(ctx context.Context, id, avatarURL string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `
		UPDATE users
		SET avatar_url = $1, updated_at = now()
		WHERE id = $2
		RETURNING `+userColumns+`
	`, avatarURL, id))
}

var _ repository.UserRepository = (*UserRepository)(nil)
