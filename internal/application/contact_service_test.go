package application

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msydorenko/contacts-api/internal/domain/entity"
	"github.com/msydorenko/contacts-api/internal/domain/repository"
)

// memContactRepo is an in-memory owner-scoped ContactRepository.
type memContactRepo struct {
	contacts map[string]*entity.Contact
}

func newMemContactRepo() *memContactRepo {
	return &memContactRepo{contacts: map[string]*entity.Contact{}}
}

func (m *memContactRepo) List(_ context.Context, owner string, f repository.ContactFilter) ([]entity.Contact, error) {
	matched := make([]entity.Contact, 0)
	for _, c := range m.contacts {
		if c.Owner != owner {
			continue
		}
		if f.Favorite != nil && c.Favorite != *f.Favorite {
			continue
		}
		matched = append(matched, *c)
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID < matched[j].ID
		}
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})
	if f.Offset >= len(matched) {
		return []entity.Contact{}, nil
	}
	matched = matched[f.Offset:]
	if f.Limit > 0 && len(matched) > f.Limit {
		matched = matched[:f.Limit]
	}
	return matched, nil
}

func (m *memContactRepo) GetByID(_ context.Context, id, owner string) (*entity.Contact, error) {
	if c, ok := m.contacts[id]; ok && c.Owner == owner {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (m *memContactRepo) Create(_ context.Context, c *entity.Contact) error {
	c.ID = uuid.NewString()
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	cp := *c
	m.contacts[c.ID] = &cp
	return nil
}

func (m *memContactRepo) Update(_ context.Context, in *entity.Contact) (*entity.Contact, error) {
	c, ok := m.contacts[in.ID]
	if !ok || c.Owner != in.Owner {
		return nil, nil
	}
	c.Name, c.Email, c.Phone, c.Favorite = in.Name, in.Email, in.Phone, in.Favorite
	cp := *c
	return &cp, nil
}

func (m *memContactRepo) SetFavorite(_ context.Context, id, owner string, favorite bool) (*entity.Contact, error) {
	c, ok := m.contacts[id]
	if !ok || c.Owner != owner {
		return nil, nil
	}
	c.Favorite = favorite
	cp := *c
	return &cp, nil
}

func (m *memContactRepo) Delete(_ context.Context, id, owner string) (*entity.Contact, error) {
	c, ok := m.contacts[id]
	if !ok || c.Owner != owner {
		return nil, nil
	}
	delete(m.contacts, id)
	return c, nil
}

var _ repository.ContactRepository = (*memContactRepo)(nil)

func seedContacts(t *testing.T, svc *ContactService, owner string, n int) []entity.Contact {
	t.Helper()
	out := make([]entity.Contact, 0, n)
	for i := 0; i < n; i++ {
		c, err := svc.Create(context.Background(), owner, ContactInput{
			Name:     "Contact",
			Email:    "c@example.com",
			Phone:    "(000) 000-0000",
			Favorite: i%5 == 0,
		})
		require.NoError(t, err)
		out = append(out, *c)
	}
	return out
}

func TestContactList_Pagination(t *testing.T) {
	svc := &ContactService{Contacts: newMemContactRepo()}
	ctx := context.Background()
	seedContacts(t, svc, "owner-a", 25)

	page1, err := svc.List(ctx, "owner-a", 1, 20, nil)
	require.NoError(t, err)
	assert.Len(t, page1, 20)

	page2, err := svc.List(ctx, "owner-a", 2, 20, nil)
	require.NoError(t, err)
	assert.Len(t, page2, 5)

	// defaults: page=1, limit=20
	defaulted, err := svc.List(ctx, "owner-a", 0, 0, nil)
	require.NoError(t, err)
	assert.Len(t, defaulted, 20)
}

func TestContactList_FavoriteFilter(t *testing.T) {
	svc := &ContactService{Contacts: newMemContactRepo()}
	ctx := context.Background()
	seedContacts(t, svc, "owner-a", 25) // 5 favorites (every 5th)

	fav := true
	favorites, err := svc.List(ctx, "owner-a", 1, 20, &fav)
	require.NoError(t, err)
	require.Len(t, favorites, 5)
	for _, c := range favorites {
		assert.True(t, c.Favorite)
	}
}

func TestContactOwnershipScoping(t *testing.T) {
	svc := &ContactService{Contacts: newMemContactRepo()}
	ctx := context.Background()

	created, err := svc.Create(ctx, "owner-a", ContactInput{Name: "Allen", Email: "a@e.com", Phone: "1"})
	require.NoError(t, err)

	// another owner's access behaves exactly like a missing contact
	_, err = svc.Get(ctx, created.ID, "owner-b")
	assert.ErrorIs(t, err, ErrContactNotFound)
	_, err = svc.Update(ctx, created.ID, "owner-b", ContactInput{Name: "X", Email: "x@e.com", Phone: "2"})
	assert.ErrorIs(t, err, ErrContactNotFound)
	_, err = svc.SetFavorite(ctx, created.ID, "owner-b", true)
	assert.ErrorIs(t, err, ErrContactNotFound)
	_, err = svc.Delete(ctx, created.ID, "owner-b")
	assert.ErrorIs(t, err, ErrContactNotFound)

	list, err := svc.List(ctx, "owner-b", 1, 20, nil)
	require.NoError(t, err)
	assert.Empty(t, list)

	// the owner still sees it untouched
	got, err := svc.Get(ctx, created.ID, "owner-a")
	require.NoError(t, err)
	assert.Equal(t, "Allen", got.Name)
}

func TestContactUpdateAndFavorite(t *testing.T) {
	svc := &ContactService{Contacts: newMemContactRepo()}
	ctx := context.Background()

	created, err := svc.Create(ctx, "owner-a", ContactInput{Name: "Allen", Email: "a@e.com", Phone: "1"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, "owner-a", ContactInput{Name: "Chaim", Email: "c@e.com", Phone: "2", Favorite: true})
	require.NoError(t, err)
	assert.Equal(t, "Chaim", updated.Name)
	assert.True(t, updated.Favorite)

	flagged, err := svc.SetFavorite(ctx, created.ID, "owner-a", false)
	require.NoError(t, err)
	assert.False(t, flagged.Favorite)
	assert.Equal(t, "Chaim", flagged.Name, "favorite update leaves other fields alone")
}

func TestContactDelete_ReturnsSnapshot(t *testing.T) {
	svc := &ContactService{Contacts: newMemContactRepo()}
	ctx := context.Background()

	created, err := svc.Create(ctx, "owner-a", ContactInput{Name: "Allen", Email: "a@e.com", Phone: "1"})
	require.NoError(t, err)

	snapshot, err := svc.Delete(ctx, created.ID, "owner-a")
	require.NoError(t, err)
	assert.Equal(t, created.ID, snapshot.ID)
	assert.Equal(t, "Allen", snapshot.Name)

	_, err = svc.Get(ctx, created.ID, "owner-a")
	assert.ErrorIs(t, err, ErrContactNotFound)
	_, err = svc.Delete(ctx, created.ID, "owner-a")
	assert.ErrorIs(t, err, ErrContactNotFound)
}
