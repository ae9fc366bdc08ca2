package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msydorenko/contacts-api/internal/domain/entity"
	"github.com/msydorenko/contacts-api/pkg/helpers"
)

// fakeUserRepo resolves a single user for middleware tests.
type fakeUserRepo struct {
	user *entity.User
	err  error
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.user != nil && f.user.ID == id {
		return f.user, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) Create(context.Context, *entity.User) error { return nil }
func (f *fakeUserRepo) GetByEmail(context.Context, string) (*entity.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) UpdateToken(context.Context, string, *string) error { return nil }
func (f *fakeUserRepo) VerifyByToken(context.Context, string) (bool, error) {
	return false, nil
}
func (f *fakeUserRepo) UpdateVerificationToken(context.Context, string, string) error { return nil }
func (f *fakeUserRepo) UpdateSubscription(context.Context, string, string) (*entity.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) UpdateAvatar(context.Context, string, string) (*entity.User, error) {
	return nil, nil
}

func protectedRouter(repo *fakeUserRepo, jwt *helpers.JWTManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", Auth(repo, jwt), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(CtxUserIDKey))
	})
	return r
}

func doRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAuth_AcceptsValidBearerToken(t *testing.T) {
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	token, _, err := jwt.Generate("user-1")
	require.NoError(t, err)

	repo := &fakeUserRepo{user: &entity.User{ID: "user-1", Token: &token}}
	rec := doRequest(protectedRouter(repo, jwt), "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", rec.Body.String())
}

func TestAuth_Rejections(t *testing.T) {
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	token, _, err := jwt.Generate("user-1")
	require.NoError(t, err)
	// different TTL guarantees a different signature for the same user
	otherToken, _, err := helpers.NewJWTManager("test-secret", 2*time.Hour).Generate("user-1")
	require.NoError(t, err)
	require.NotEqual(t, token, otherToken)

	foreign, _, err := helpers.NewJWTManager("other-secret", time.Hour).Generate("user-1")
	require.NoError(t, err)
	expired, _, err := helpers.NewJWTManager("test-secret", -time.Hour).Generate("user-1")
	require.NoError(t, err)

	tests := []struct {
		name   string
		repo   *fakeUserRepo
		header string
	}{
		{"missing header", &fakeUserRepo{}, ""},
		{"wrong scheme", &fakeUserRepo{}, "Basic " + token},
		{"lowercase scheme", &fakeUserRepo{}, "bearer " + token},
		{"scheme without token", &fakeUserRepo{}, "Bearer"},
		{"malformed token", &fakeUserRepo{}, "Bearer not.a.jwt"},
		{"foreign signature", &fakeUserRepo{}, "Bearer " + foreign},
		{"expired token", &fakeUserRepo{}, "Bearer " + expired},
		{"user no longer exists", &fakeUserRepo{}, "Bearer " + token},
		{"stored token cleared by logout", &fakeUserRepo{user: &entity.User{ID: "user-1"}}, "Bearer " + token},
		{"stored token rotated by re-login", &fakeUserRepo{user: &entity.User{ID: "user-1", Token: &otherToken}}, "Bearer " + token},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(protectedRouter(tt.repo, jwt), tt.header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			// every rejection shares one generic body
			assert.Contains(t, rec.Body.String(), "Not authorized")
		})
	}
}
