package postgres

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/msydorenko/contacts-api/internal/domain/entity"
	"github.com/msydorenko/contacts-api/internal/domain/repository"
)

type ContactRepository struct {
	pool *pgxpool.Pool
}

func NewContactRepository(pool *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{pool: pool}
}

const contactColumns = `id, name, email, phone, favorite, owner, created_at, updated_at`

func scanContact(row pgx.Row) (*entity.Contact, error) {
	c := &entity.Contact{}
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Favorite, &c.Owner, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

func (r *ContactRepository) List(ctx context.Context, owner string, f repository.ContactFilter) ([]entity.Contact, error) {
	query := `
		SELECT ` + contactColumns + `
		FROM contacts
		WHERE owner = $1`
	args := []any{owner}
	if f.Favorite != nil {
		query += ` AND favorite = $2`
		args = append(args, *f.Favorite)
	}
	query += ` ORDER BY created_at, id`
	if f.Limit > 0 {
		args = append(args, f.Limit, f.Offset)
		query += ` LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contacts := make([]entity.Contact, 0)
	for rows.Next() {
		var c entity.Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Favorite, &c.Owner, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

func (r *ContactRepository) GetByID(ctx context.Context, id, owner string) (*entity.Contact, error) {
	return scanContact(r.pool.QueryRow(ctx, `
		SELECT `+contactColumns+`
		FROM contacts
		WHERE id = $1 AND owner = $2
	`, id, owner))
}

func (r *ContactRepository) Create(ctx context.Context, c *entity.Contact) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO contacts (name, email, phone, favorite, owner)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, c.Name, c.Email, c.Phone, c.Favorite, c.Owner)
	return row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *ContactRepository) Update(ctx context.Context, c *entity.Contact) (*entity.Contact, error) {
	return scanContact(r.pool.QueryRow(ctx, `
		UPDATE contacts
		SET name = $1, email = $2, phone = $3, favorite = $4, updated_at = now()
		WHERE id = $5 AND owner = $6
		RETURNING `+contactColumns+`
	`, c.Name, c.Email, c.Phone, c.Favorite, c.ID, c.Owner))
}

func (r *ContactRepository) SetFavorite(ctx context.Context, id, owner string, favorite bool) (*entity.Contact, error) {
	return scanContact(r.pool.QueryRow(ctx, `
		UPDATE contacts
		SET favorite = $1, updated_at = now()
		WHERE id = $2 AND owner = $3
		RETURNING `+contactColumns+`
	`, favorite, id, owner))
}

func (r *ContactRepository) Delete(ctx context.Context, id, owner string) (*entity.Contact, error) {
	return scanContact(r.pool.QueryRow(ctx, `
		DELETE FROM contacts
		WHERE id = $1 AND owner = $2
		RETURNING `+contactColumns+`
	`, id, owner))
}

var _ repository.ContactRepository = (*ContactRepository)(nil)
