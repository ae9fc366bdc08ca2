package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/msydorenko/contacts-api/internal/domain/repository"
	"github.com/msydorenko/contacts-api/pkg/helpers"
	"github.com/msydorenko/contacts-api/pkg/response"
)

// CtxUserIDKey is the Gin context key holding the authenticated user id.
const CtxUserIDKey = "userID"

const notAuthorized = "Not authorized"

// Auth resolves the identity behind an `Authorization: Bearer <token>`
// header. The signature check alone is not enough: the presented token must
// also equal the token stored on the user row, which is what revokes old
// tokens on logout and re-login. Every rejection path returns the same
// generic 401 so callers learn nothing about which check failed.
func Auth(users repository.UserRepository, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.AbortError(c, http.StatusUnauthorized, notAuthorized)
			return
		}
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || scheme != "Bearer" || token == "" {
			response.AbortError(c, http.StatusUnauthorized, notAuthorized)
			return
		}

		claims, err := jwt.Parse(token)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, notAuthorized)
			return
		}

		u, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil || u == nil {
			response.AbortError(c, http.StatusUnauthorized, notAuthorized)
			return
		}
		if u.Token == nil || *u.Token != token {
			response.AbortError(c, http.StatusUnauthorized, notAuthorized)
			return
		}

		c.Set(CtxUserIDKey, u.ID)
		c.Next()
	}
}
